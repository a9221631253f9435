// Package archive visits feed files packed into zip archives.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// WalkFunc is called for every regular entry visited by Walk. Returning an
// error stops the walk and the error is returned by Walk.
type WalkFunc func(archive string, file *zip.File) error

// Walk visits regular entries of archive whose names start with prefix, in
// natural name order, so "feed2.xml" comes before "feed10.xml". Archives with
// absolute or parent-relative entry names are rejected before anything is
// visited. Walk stops early when ctx is done.
func Walk(ctx context.Context, archive, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	files := make([]*zip.File, 0, len(r.File))
	for _, f := range r.File {
		if !isSafePath(f.Name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", f.Name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(f.Name, prefix) {
			continue
		}
		files = append(files, f)
	}
	slices.SortStableFunc(files, func(a, b *zip.File) int {
		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		}
		return 0
	})

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	return !slices.Contains(strings.Split(strings.ReplaceAll(name, `\`, "/"), "/"), "..")
}
