// Package confkit holds the small pieces of configuration plumbing shared
// by the service config: split-file section hydration and .env bootstrap.
package confkit

import (
	"os"
	"path/filepath"
)

// ResolvePath expands environment variables in file and resolves it against
// base when relative.
func ResolvePath(base, file string) string {
	file = os.ExpandEnv(file)
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, file)
}

// Section is a config subsection kept in its own file next to the main
// yaml. File names the sidecar; Value holds the loaded result after
// Hydrate.
type Section[T any] struct {
	File  string `json:",optional"`
	Value *T     `json:"-"`
}

// Hydrate resolves File against base and loads it through loader. A section
// with no File stays empty; the caller decides whether that is an error.
// After a successful load File holds the resolved absolute path.
func (s *Section[T]) Hydrate(base string, loader func(string) (*T, error)) error {
	if s.File == "" {
		return nil
	}
	path := ResolvePath(base, s.File)
	value, err := loader(path)
	if err != nil {
		return err
	}
	s.File, s.Value = path, value
	return nil
}
