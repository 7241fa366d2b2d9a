// Package seed fills the reference tables from a YAML file at startup.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"orchestra-platform/internal/repository"
)

type File struct {
	Sections    []string `yaml:"sections"`
	Instruments []string `yaml:"instruments"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, name := range append(append([]string{}, f.Sections...), f.Instruments...) {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("seed entry %d: name is required", i)
		}
	}
	return &f, nil
}

// Apply inserts the names that are not already present and reports how many it added.
func Apply(ctx context.Context, store *repository.Store, f *File) (int, error) {
	added := 0
	for _, t := range []struct {
		repo  *repository.Lookups
		names []string
	}{
		{store.Sections, f.Sections},
		{store.Instruments, f.Instruments},
	} {
		for _, name := range t.names {
			_, err := t.repo.GetByName(ctx, name)
			if err == nil {
				continue
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return added, err
			}
			if _, err := t.repo.Create(ctx, name); err != nil {
				return added, fmt.Errorf("seed %q: %w", name, err)
			}
			added++
		}
	}
	return added, nil
}
