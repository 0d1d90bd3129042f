package app

import (
	"fmt"

	"hancompose/internal/layout"
)

// ResolveLayout loads a layout by name and merges the custom keypairs file,
// if any.
func ResolveLayout(name, keypairPath string) (*layout.Layout, error) {
	loaded, err := layout.Load(name)
	if err != nil {
		return nil, err
	}
	if keypairPath == "" {
		return loaded, nil
	}
	pairs, err := layout.LoadCustomPairs(keypairPath)
	if err != nil {
		return nil, err
	}
	if err := layout.ApplyCustomPairs(loaded, pairs); err != nil {
		return nil, fmt.Errorf("load layout %s: %w", loaded.Name(), err)
	}
	return loaded, nil
}
