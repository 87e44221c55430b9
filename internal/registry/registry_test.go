package registry

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aether-knight/internal/core"
	"github.com/vovakirdan/aether-knight/internal/storage"
)

type stubGame struct {
	kv     storage.KV
	logger *log.Logger
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }
func (g *stubGame) AttachStore(kv storage.KV) { g.kv = kv }
func (g *stubGame) AttachLogger(l *log.Logger) { g.logger = l }

func TestRegisterCreateList(t *testing.T) {
	Register("zz_stub", "a stub", func() Game { return &stubGame{} })

	if !Exists("zz_stub") {
		t.Fatal("registered game should exist")
	}

	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Stub" {
		t.Errorf("Title() = %q", g.Title())
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz_stub" && info.Title == "Stub" && info.Summary == "a stub" {
			found = true
		}
	}
	if !found {
		t.Error("List() should include the registered game")
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() should fail for unknown IDs")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", "", func() Game { return &stubGame{} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("zz_dup", "", func() Game { return &stubGame{} })
}

func TestAttach(t *testing.T) {
	g := &stubGame{}
	kv := storage.NewMemoryKV()
	logger := log.New(io.Discard)

	Attach(g, kv, logger)

	if g.kv != storage.KV(kv) {
		t.Error("store not attached")
	}
	if g.logger != logger {
		t.Error("logger not attached")
	}
}
