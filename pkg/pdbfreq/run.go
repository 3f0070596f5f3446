// Package pdbfreq is the top level of the pdbfreq program. It finds the
// input files, scans them in parallel, builds the aggregate and writes
// the reports.
package pdbfreq

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"

	"github.com/andrew-torda/pdbfreq/brokenio"
	"github.com/andrew-torda/pdbfreq/pkg/config"
	"github.com/andrew-torda/pdbfreq/pkg/freq"
	"github.com/andrew-torda/pdbfreq/pkg/report"
	"github.com/andrew-torda/pdbfreq/pkg/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNotFileOrDir is returned for an input path we cannot use.
var ErrNotFileOrDir = errors.New("not file or directory")

// Targets returns the files to read. A plain file is taken as it is.
// From a directory we take the entries whose names end in the
// extension, sorted by name.
func Targets(path string, cfg *config.Config) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", ErrNotFileOrDir, path)
	}
	switch {
	case fi.Mode().IsRegular():
		return []string{path}, nil
	case !fi.IsDir():
		return nil, fmt.Errorf("%w (%s)", ErrNotFileOrDir, path)
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", path, err)
	}
	var fnames []string
	for _, e := range entries {
		if !e.IsDir() && cfg.Matches(e.Name()) {
			fnames = append(fnames, filepath.Join(path, e.Name()))
		}
	}
	return fnames, nil
}

// opener returns the normal file opener, or one that breaks files
// now and then if broken_io is set. Each file gets its own seed, so
// a run can be repeated.
func opener(cfg *config.Config) freq.Opener {
	if cfg.BrokenIO <= 0 {
		return freq.OpenFile
	}
	return func(fname string) (io.ReadCloser, error) {
		rdr, err := freq.OpenFile(fname)
		if err != nil {
			return nil, err
		}
		h := fnv.New64a()
		h.Write([]byte(fname))
		b := brokenio.NewReader(rdr, int64(h.Sum64()))
		b.SetProbFail(cfg.BrokenIO)
		return b, nil
	}
}

// ScanAll scans files with up to cfg.Workers at a time. A file that
// cannot be read is logged and left out. Results come back in the order
// of fnames, with the skipped ones removed, along with the number
// skipped. The only error is from ctx.
func ScanAll(ctx context.Context, fnames []string, cfg *config.Config, open freq.Opener,
	log *zap.Logger) ([]*freq.FileStats, int, error) {
	results := make([]*freq.FileStats, len(fnames))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)
	for i, fname := range fnames {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			log.Info("processing", zap.String("file", fname))
			fs, err := freq.ScanFile(fname, open)
			if err != nil {
				log.Warn("skipping file", zap.String("file", fname), zap.Error(err))
				return nil
			}
			log.Debug("scanned", zap.String("file", fname), zap.Int("tags", len(fs.Counts)))
			results[i] = fs // each goroutine has its own slot
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}
	files := make([]*freq.FileStats, 0, len(results))
	for _, fs := range results {
		if fs != nil {
			files = append(files, fs)
		}
	}
	return files, len(fnames) - len(files), nil
}

// warnExists warns if we will trash an old file.
func warnExists(fname string, log *zap.Logger) {
	if _, err := os.Stat(fname); err == nil {
		log.Debug("replacing old version", zap.String("file", fname))
	}
}

// writeOutput writes the two reports and, if asked for, the database.
func writeOutput(ctx context.Context, cfg *config.Config, c *freq.Corpus, log *zap.Logger) error {
	outs := []struct {
		name string
		wrt  func(io.Writer, *freq.Corpus) error
	}{
		{cfg.TagsFile, report.WriteTags},
		{cfg.FieldsFile, report.WriteFields},
	}
	for _, o := range outs {
		fname := filepath.Join(cfg.OutDir, o.name)
		warnExists(fname, log)
		if err := report.WriteFile(fname, c, o.wrt); err != nil {
			return err
		}
		log.Info("wrote", zap.String("file", fname))
	}
	if cfg.DB == "" {
		return nil
	}
	s, err := store.Open(cfg.DB)
	if err != nil {
		return err
	}
	if err := s.Save(ctx, c); err != nil {
		s.Close()
		return fmt.Errorf("saving to %s: %w", cfg.DB, err)
	}
	log.Info("wrote", zap.String("db", cfg.DB))
	return s.Close()
}

// Run does the whole job for one input path and returns the corpus it
// wrote out.
func Run(ctx context.Context, path string, cfg *config.Config, log *zap.Logger) (*freq.Corpus, error) {
	fnames, err := Targets(path, cfg)
	if err != nil {
		return nil, err
	}
	files, skipped, err := ScanAll(ctx, fnames, cfg, opener(cfg), log)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Warn("some files could not be read", zap.Int("skipped", skipped), zap.Int("read", len(files)))
	}
	c := freq.Aggregate(files)
	if err := writeOutput(ctx, cfg, c, log); err != nil {
		return nil, err
	}
	return c, nil
}
