package keypad

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed layouts/*.yaml
var builtin embed.FS

var registry = map[string]func() (*Layout, error){}

func init() {
	entries, err := builtin.ReadDir("layouts")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		file := path.Join("layouts", e.Name())
		Register(strings.TrimSuffix(e.Name(), ".yaml"), func() (*Layout, error) {
			data, err := builtin.ReadFile(file)
			if err != nil {
				return nil, err
			}
			return Parse(data)
		})
	}
}

// Register adds a layout constructor to the registry.
func Register(name string, constructor func() (*Layout, error)) {
	registry[name] = constructor
}

// Get returns a layout by name.
func Get(name string) (*Layout, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown layout: %s (available: %v)", name, Names())
	}
	return ctor()
}

// Names returns all registered layout names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
