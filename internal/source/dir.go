package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	apperrors "github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const maxParallelReads = 8

// Dir loads every regular file in a directory whose name matches Pattern.
// Documents are ordered by file name; files are read concurrently.
type Dir struct {
	Path    string
	Pattern string
}

func (d Dir) Load(ctx context.Context) ([]string, error) {
	pattern := d.Pattern
	if pattern == "" {
		pattern = "*"
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitUsage, "bad file pattern %q", pattern)
	}
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitUsage, "corpus directory %s does not exist", d.Path)
		}
		return nil, fmt.Errorf("reading corpus directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match(pattern, entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	docs := make([]string, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(d.Path, name))
			if err != nil {
				return fmt.Errorf("reading document %s: %w", name, err)
			}
			docs[i] = string(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
