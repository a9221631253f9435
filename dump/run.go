// Package dump implements "dump" command: it finds ONIX feeds in files,
// directories and zip archives and writes a summary of every product.
package dump

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/encoding/ianaindex"

	"onixp/archive"
	"onixp/config"
	"onixp/export"
	"onixp/feed"
	"onixp/state"
)

// where summaries go when requested on standard output
var stdout io.Writer = os.Stdout

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("dump")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format := env.Cfg.Output.Format
	if name := cmd.String("format"); len(name) > 0 {
		if format, err = config.ParseOutputFmt(name); err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Stringer("format", env.Cfg.Output.Format), zap.Error(err))
			format = env.Cfg.Output.Format
		}
	}

	env.Overwrite, env.Stdout, env.Release = cmd.Bool("overwrite"), cmd.Bool("stdout"), cmd.String("release")
	if env.Stdout {
		// console log shares stdout with summaries, keep only errors which go
		// to stderr
		log = log.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel))
	}

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, format, log)
}

// process figures out what source is: directory, archive (possibly with path
// inside of it) or single feed file.
func process(ctx context.Context, src, dst string, format config.OutputFmt, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, format, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		packed, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if packed {
			storeSource(ctx, head, log)
			pathIn := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := processArchive(ctx, head, pathIn, "", dst, format, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		found, enc, err := isFeedFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if found && len(tail) == 0 {
			storeSource(ctx, head, log)
			file, err := os.Open(head)
			if err != nil {
				return err
			}
			defer file.Close()
			return processFeed(ctx, selectReader(file, enc), filepath.Base(head), dst, format, log)
		}
		return fmt.Errorf("input was not recognized as ONIX feed (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding feeds and archives, failures of
// individual files are logged and do not stop the walk.
func processDir(ctx context.Context, dir, dst string, format config.OutputFmt, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		packed, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if packed {
			count++
			if err := processArchive(ctx, path, "", filepath.Dir(rel), dst, format, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		found, enc, err := isFeedFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !found {
			log.Debug("Skipping file, not recognized as feed or archive", zap.String("file", path))
			return nil
		}

		count++

		file, err := os.Open(path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}
		defer file.Close()

		if err := processFeed(ctx, selectReader(file, enc), rel, dst, format, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
}

// processArchive visits feeds under pathIn inside archive.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, format config.OutputFmt, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	cp := state.EnvFromContext(ctx).CodePage

	return archive.Walk(ctx, path, pathIn, func(archive string, f *zip.File) error {
		found, enc, err := isFeedInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", archive), zap.String("path", f.Name), zap.Error(err))
			return nil
		}
		if !found {
			log.Debug("Skipping file, not recognized as feed", zap.String("archive", archive), zap.String("file", f.Name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", archive), zap.String("file", f.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		pathInArchive := f.Name
		if cp != nil && f.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(pathInArchive); err == nil {
				pathInArchive = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", pathInArchive), zap.Error(err))
			}
		}
		if err := processFeed(ctx, selectReader(r, enc), filepath.Join(pathOut, filepath.FromSlash(pathInArchive)), dst, format, log); err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", archive), zap.String("file", f.Name), zap.Error(err))
		}
		return nil
	})
}

// processFeed reads single ONIX message and writes summary of every product
// in it. "src" is path of the feed relative to the original source, it
// decides where in "dst" summaries are placed. Problems with individual
// products are logged, only unreadable message is an error.
func processFeed(ctx context.Context, r io.Reader, src, dst string, format config.OutputFmt, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var written, failed int

	log.Info("Feed processing starting", zap.String("from", src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Feed processing ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("feed processing panic: %v", r)
		} else {
			log.Info("Feed processing completed", zap.Duration("elapsed", time.Since(start)), zap.Int("written", written), zap.Int("failed", failed))
		}
	}(time.Now())

	opts := feed.Options{
		DefaultRelease:  env.Cfg.Parser.DefaultRelease,
		RenameShortTags: env.Cfg.Parser.RenameShortTags,
		MaxIdentifiers:  env.Cfg.Parser.MaxIdentifiers,
	}
	if rel, ok := env.ForcedRelease(); ok {
		opts.ForceRelease = rel
	}

	msg, err := feed.Read(r, opts, log)
	if err != nil {
		return fmt.Errorf("unable to read ONIX feed (%s): %w", src, err)
	}
	failed = len(multierr.Errors(msg.Err()))

	outDir := filepath.Join(dst, filepath.Dir(src))
	for i, p := range msg.Products() {
		if err := ctx.Err(); err != nil {
			return err
		}

		s, err := export.Summarize(p, export.Options{
			StrictMainDescription: env.Cfg.Parser.StrictMainDescription,
			ListUnsupported:       env.Cfg.Output.ListUnsupported,
		})
		if err != nil {
			failed++
			log.Error("Unable to summarize product", zap.Int("index", i+1), zap.Error(err))
			continue
		}

		if env.Stdout {
			if err := writeStdout(s, format, written > 0); err != nil {
				return err
			}
			written++
			continue
		}

		outputName, err := writeSummary(s, outDir, format, env, log)
		if err != nil {
			failed++
			log.Error("Unable to write product summary", zap.String("id", s.ID), zap.Error(err))
			continue
		}
		written++

		// Store result for debugging
		if rel, err := filepath.Rel(dst, outputName); err == nil {
			env.Rpt.Store(filepath.ToSlash(filepath.Join("result", rel)), outputName)
		}
	}
	return nil
}

func writeStdout(s *export.Summary, format config.OutputFmt, separate bool) error {
	if separate && format == config.OutputFmtYAML {
		if _, err := io.WriteString(stdout, "---\n"); err != nil {
			return err
		}
	}
	return s.Write(stdout, format)
}

func writeSummary(s *export.Summary, outDir string, format config.OutputFmt, env *state.LocalEnv, log *zap.Logger) (string, error) {
	name, err := export.FileName(env.Cfg.Output.NameTemplate, s, format, env.Cfg.Output.Transliterate)
	if err != nil {
		log.Warn("Unable to prepare output filename, using product id", zap.Error(err))
		name = config.CleanFileName(s.ID) + format.Ext()
	}
	outputName := filepath.Join(outDir, name)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return "", fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return "", err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return "", fmt.Errorf("unable to create output directory: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := s.Write(buf, format); err != nil {
		return "", err
	}
	if err := os.WriteFile(outputName, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("unable to write output file: %w", err)
	}
	return outputName, nil
}

// storeSource keeps copy of the input in debug report.
func storeSource(ctx context.Context, path string, log *zap.Logger) {
	env := state.EnvFromContext(ctx)
	if err := env.Rpt.StoreCopy(filepath.Join("source", filepath.Base(path)), path); err != nil {
		log.Warn("Unable to store source in report", zap.String("file", path), zap.Error(err))
	}
}
