// Package confkit holds the small helpers shared by the config loaders: split
// config sections and .env discovery.
package confkit

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolvePath expands environment variables in file and joins it onto base
// unless the result is already absolute.
func ResolvePath(base, file string) string {
	file = os.ExpandEnv(file)
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, file)
}

// Section is a config block kept in its own file and referenced from the main
// config by path.
type Section[T any] struct {
	File  string `json:",optional"`
	Value *T     `json:"-"`
}

// Hydrate resolves File against base and loads it. An empty File is a no-op.
func (s *Section[T]) Hydrate(base string, loader func(string) (*T, error)) error {
	if s.File == "" {
		return nil
	}
	p := ResolvePath(base, s.File)
	v, err := loader(p)
	if err != nil {
		return err
	}
	s.File, s.Value = p, v
	return nil
}

// Loaded reports whether the section holds a value.
func (s Section[T]) Loaded() bool {
	return s.Value != nil
}

// Require returns an error naming the section when it was never loaded.
func (s Section[T]) Require(name string) error {
	if s.Loaded() {
		return nil
	}
	if s.File == "" {
		return fmt.Errorf("config: %s section is required", name)
	}
	return fmt.Errorf("config: %s section %s was not loaded", name, s.File)
}
