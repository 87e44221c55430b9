package storage

import (
	"fmt"
	"strings"

	"github.com/quasilyte/gdata"
)

// GdataKV stores keys as gdata items: files in the user's app data folder
// on desktop and localStorage entries on wasm builds.
type GdataKV struct {
	m *gdata.Manager
}

// OpenGdata opens the gdata manager for the given application name.
func OpenGdata(appName string) (*GdataKV, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open gdata for %s: %w", appName, err)
	}
	return &GdataKV{m: m}, nil
}

// gdata item keys double as file names, so path separators are flattened.
func gdataItemKey(key string) string {
	return strings.NewReplacer("/", "__", "\\", "__", ":", "_").Replace(key)
}

// Get implements KV. An empty item counts as absent.
func (g *GdataKV) Get(key string) (string, bool, error) {
	data, err := g.m.LoadItem(gdataItemKey(key))
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read key %s: %w", key, err)
	}
	if len(data) == 0 {
		return "", false, nil
	}
	return string(data), true, nil
}

// Set implements KV.
func (g *GdataKV) Set(key, value string) error {
	if err := g.m.SaveItem(gdataItemKey(key), []byte(value)); err != nil {
		return fmt.Errorf("storage: cannot write key %s: %w", key, err)
	}
	return nil
}

// Delete implements KV by saving an empty item.
func (g *GdataKV) Delete(key string) error {
	if err := g.m.SaveItem(gdataItemKey(key), nil); err != nil {
		return fmt.Errorf("storage: cannot delete key %s: %w", key, err)
	}
	return nil
}

var _ KV = (*GdataKV)(nil)
