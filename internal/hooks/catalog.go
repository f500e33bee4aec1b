// Package hooks holds the static catalog of persuasion hooks and the shared
// call-to-action, postscript and brand pools used by the template engine.
//
// The catalog is decoded once from an embedded YAML document and is never
// mutated afterwards, so it is safe for any number of concurrent readers.
package hooks

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Hook is one named persuasion archetype.
type Hook struct {
	Key         string   `yaml:"key"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Subjects    []string `yaml:"subjects"`
	Openers     []string `yaml:"openers"`
	// FrameFlip is the canned insight sentence placed after the opener.
	// Empty means the composer uses its generic sentence.
	FrameFlip string `yaml:"frame_flip"`
}

type catalog struct {
	Hooks       []Hook   `yaml:"hooks"`
	CTAs        []string `yaml:"ctas"`
	Postscripts []string `yaml:"postscripts"`
	Brands      []string `yaml:"brands"`
}

var (
	defaultCatalog catalog
	byKey          map[string]Hook
)

func init() {
	c, err := parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("hooks: invalid embedded catalog: %v", err))
	}
	defaultCatalog = c
	byKey = make(map[string]Hook, len(c.Hooks))
	for _, h := range c.Hooks {
		byKey[h.Key] = h
	}
}

func parse(data []byte) (catalog, error) {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return catalog{}, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return catalog{}, err
	}
	return c, nil
}

func (c catalog) validate() error {
	if len(c.Hooks) == 0 {
		return fmt.Errorf("catalog has no hooks")
	}
	seen := make(map[string]bool, len(c.Hooks))
	for i, h := range c.Hooks {
		if h.Key == "" {
			return fmt.Errorf("hook %d has no key", i)
		}
		if seen[h.Key] {
			return fmt.Errorf("duplicate hook key %q", h.Key)
		}
		seen[h.Key] = true
		if h.Name == "" {
			return fmt.Errorf("hook %q has no name", h.Key)
		}
		if len(h.Subjects) == 0 || len(h.Openers) == 0 {
			return fmt.Errorf("hook %q needs at least one subject and one opener", h.Key)
		}
	}
	if len(c.CTAs) == 0 {
		return fmt.Errorf("catalog has no calls to action")
	}
	if len(c.Postscripts) == 0 {
		return fmt.Errorf("catalog has no postscripts")
	}
	if len(c.Brands) < 2 {
		return fmt.Errorf("catalog needs at least two brands, got %d", len(c.Brands))
	}
	return nil
}

// Keys returns every hook key in catalog order.
func Keys() []string {
	keys := make([]string, len(defaultCatalog.Hooks))
	for i, h := range defaultCatalog.Hooks {
		keys[i] = h.Key
	}
	return keys
}

// Get looks up a hook by key. The boolean is false for unknown keys.
func Get(key string) (Hook, bool) {
	h, ok := byKey[key]
	return h, ok
}

// All returns the hooks in catalog order.
func All() []Hook {
	return append([]Hook(nil), defaultCatalog.Hooks...)
}

func Size() int { return len(defaultCatalog.Hooks) }

func CTAs() []string { return append([]string(nil), defaultCatalog.CTAs...) }

func Postscripts() []string { return append([]string(nil), defaultCatalog.Postscripts...) }

// Brands is the short list of recognizable names used for status
// signaling placeholders.
func Brands() []string { return append([]string(nil), defaultCatalog.Brands...) }
