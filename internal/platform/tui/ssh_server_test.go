package tui

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aether-knight/internal/core"
	"github.com/vovakirdan/aether-knight/internal/storage"
)

func TestOneSessionPerUser(t *testing.T) {
	s := &SSHServer{logger: log.New(io.Discard), active: make(map[string]bool)}

	if !s.claim("ann") {
		t.Fatal("first session should be accepted")
	}
	if s.claim("ann") {
		t.Error("second session of the same user should be rejected")
	}
	if !s.claim("bob") {
		t.Error("other users are independent")
	}

	s.release("ann")
	if !s.claim("ann") {
		t.Error("user should be able to reconnect after leaving")
	}
}

func TestSessionSavesAreNamespaced(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "aether.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	s := &SSHServer{store: store, logger: log.New(io.Discard), active: make(map[string]bool)}
	ann := s.sessionOptions(core.DefaultConfig(), "ann")
	bob := s.sessionOptions(core.DefaultConfig(), "bob")

	if err := ann.Saves.Set("aether/active_slot", "2"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if _, ok, _ := bob.Saves.Get("aether/active_slot"); ok {
		t.Error("users must not see each other's saves")
	}
	if v, ok, _ := store.Get("user/ann/aether/active_slot"); !ok || v != "2" {
		t.Errorf("raw key = %q, %v", v, ok)
	}
	if ann.Scores != store || ann.Player != "ann" {
		t.Error("scores go to the shared store under the SSH user name")
	}
}

func TestUserPrefix(t *testing.T) {
	if UserPrefix("") != "user/anonymous/" || UserPrefix("kai") != "user/kai/" {
		t.Errorf("unexpected prefixes %q %q", UserPrefix(""), UserPrefix("kai"))
	}
}
