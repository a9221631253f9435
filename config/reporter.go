package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/multierr"

	"onixp/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty reporter.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	r := &Report{entries: make(map[string]entry)}

	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	r.file = f
	return r, nil
}

type entry struct {
	original string
	actual   string
	stamp    time.Time
	data     []byte
}

// Report accumulates everything necessary to prepare debug archive: input
// feeds, produced dumps, logs and effective configuration.
// NOTE: presently not to be used concurrently!
type Report struct {
	entries map[string]entry
	// temporary copies owned by report, removed on Close
	copies []string
	file   *os.File
}

// Close writes the archive and removes temporary copies. Nil report is a no-op,
// this means no report has been requested.
func (r *Report) Close() (err error) {
	if r == nil || r.file == nil {
		return nil
	}
	defer func() {
		err = multierr.Append(err, r.file.Close())
		for _, dir := range r.copies {
			err = multierr.Append(err, os.RemoveAll(dir))
		}
	}()
	return r.finalize()
}

// Name returns absolute name of the archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store remembers file or directory to be put in the archive on Close.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if old, exists := r.entries[name]; exists && old.original != path {
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.original, path))
	}

	e := entry{original: path, actual: path}
	if p, err := filepath.Abs(path); err == nil {
		e.actual = p
	}
	r.entries[name] = e
}

// StoreData puts data in the archive as a file under requested name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	if _, exists := r.entries[name]; exists {
		panic(fmt.Sprintf("Attempt to overwrite data in the report for [%s]", name))
	}
	r.entries[name] = entry{data: data, stamp: time.Now()}
}

// StoreCopy copies file or directory as it is at the time of the call. Names
// are versioned with timestamps, so the same name may be stored repeatedly.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		return nil
	}

	e := entry{stamp: time.Now(), original: path}

	src, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if _, exists := r.entries[name]; exists {
		name = fmt.Sprintf("%s-%d", name, e.stamp.UnixNano())
	}

	dir, err := os.MkdirTemp("", misc.GetAppName()+"-r-")
	if err != nil {
		return err
	}
	r.copies = append(r.copies, dir)

	switch {
	case info.Mode().IsRegular():
		if e.actual, err = copyFile(dir, src, info.ModTime()); err != nil {
			return err
		}
	case info.Mode().IsDir():
		if err := copyDir(dir, src); err != nil {
			return err
		}
		e.actual = dir
	default:
		return fmt.Errorf("unable to copy %s: not a regular file or directory", path)
	}

	r.entries[name] = e
	return nil
}

func copyFile(dir, src string, modTime time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, filepath.Base(src))

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return dst, os.Chtimes(dst, modTime, modTime)
}

// walkRegular calls fn for every regular file under root with its slash
// separated path relative to root. Links, sockets and such are ignored.
func walkRegular(root string, fn func(path, rel string, info fs.FileInfo) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return fn(path, filepath.ToSlash(rel), info)
	})
}

func copyDir(dir, src string) error {
	return walkRegular(src, func(path, rel string, info fs.FileInfo) error {
		_, err := copyFile(filepath.Dir(filepath.Join(dir, filepath.FromSlash(rel))), path, info.ModTime())
		return err
	})
}

// finalize writes MANIFEST followed by every stored entry in the same order.
func (r *Report) finalize() error {
	arc := zip.NewWriter(r.file)

	names, manifest := prepareManifest(r.entries)
	if err := saveFile(arc, "MANIFEST", time.Now(), manifest); err != nil {
		return multierr.Append(err, arc.Close())
	}
	for _, name := range names {
		if err := r.saveEntry(arc, name, r.entries[name]); err != nil {
			return multierr.Append(err, arc.Close())
		}
	}
	return arc.Close()
}

func (r *Report) saveEntry(arc *zip.Writer, name string, e entry) error {
	if len(e.data) > 0 {
		return saveFile(arc, name, e.stamp, bytes.NewReader(e.data))
	}

	info, err := os.Stat(e.actual)
	if err != nil {
		// absent files are ignored
		return nil
	}
	switch {
	case info.Mode().IsRegular():
		f, err := os.Open(e.actual)
		if err != nil {
			return err
		}
		defer f.Close()
		return saveFile(arc, name, info.ModTime(), f)
	case info.Mode().IsDir():
		return walkRegular(e.actual, func(path, rel string, info fs.FileInfo) error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			return saveFile(arc, name+"/"+rel, info.ModTime(), f)
		})
	}
	return nil
}

func prepareManifest(entries map[string]entry) ([]string, *bytes.Buffer) {
	now := time.Now()

	buf := new(bytes.Buffer)
	names := slices.Sorted(maps.Keys(entries))
	for _, name := range names {
		e := entries[name]
		if e.stamp.IsZero() {
			e.stamp = now
		}
		fmt.Fprintf(buf, "%s\t%s\t%s : %s\n", e.stamp.UTC().Format(time.UnixDate), name, e.original, e.actual)
	}
	return names, buf
}

func saveFile(dst *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
