// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package migrate runs one migration: it validates the configured
// directories, classifies the export, converts every note document,
// gathers media into one directory and removes the export.
//
// The run is strictly sequential and takes a single snapshot of the input
// directory; documents written before a fatal error stay written.
package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/phuslu/log"
	"github.com/spf13/afero"

	"github.com/pdiddy/notemigrate/internal/convert"
	"github.com/pdiddy/notemigrate/internal/fileutil"
	"github.com/pdiddy/notemigrate/internal/markup"
	"github.com/pdiddy/notemigrate/pkg/types"
)

// ErrMissingDirectory is returned before any mutation when a configured
// directory does not exist.
var ErrMissingDirectory = errors.New("expected directory does not exist")

// DocumentErrors collects per-document failures isolated under the
// continue policy. It is returned after cleanup has finished.
type DocumentErrors struct {
	Errs []error
}

func (e *DocumentErrors) Error() string {
	return fmt.Sprintf("%d document(s) failed: %v", len(e.Errs), errors.Join(e.Errs...))
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *DocumentErrors) Unwrap() []error {
	return e.Errs
}

// Migrator executes migration runs for one configuration.
type Migrator struct {
	cfg types.MigrationConfig
	fs  afero.Fs
	log *log.Logger
}

// New validates cfg and returns a Migrator operating on fsys.
func New(cfg types.MigrationConfig, fsys afero.Fs, logger *log.Logger) (*Migrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Migrator{cfg: cfg, fs: fsys, log: logger}, nil
}

// Run performs validate, discover, transform, relocate and cleanup in that
// order, stopping at the first fatal error.
func (m *Migrator) Run() error {
	m.log.Info().Str("run_id", uuid.NewString()).
		Str("input", m.cfg.InputDir).
		Str("posts", m.cfg.PostsDir).
		Str("media", m.cfg.MediaDir).
		Msg("starting migration")

	if err := m.CheckDirectories(); err != nil {
		return err
	}

	set, err := m.Discover()
	if err != nil {
		return err
	}

	conv, err := convert.New(m.cfg, set.ResourceFolders, m.log)
	if err != nil {
		return err
	}

	failed, err := m.transform(conv, set)
	if err != nil {
		return err
	}

	if err := m.relocate(set); err != nil {
		return err
	}

	if err := m.cleanup(set, failed); err != nil {
		return err
	}

	if len(failed) > 0 {
		errs := make([]error, 0, len(failed))
		for _, path := range set.Documents {
			if err, ok := failed[path]; ok {
				errs = append(errs, err)
			}
		}
		return &DocumentErrors{Errs: errs}
	}
	m.log.Info().Msg("migration complete")
	return nil
}

// CheckDirectories verifies that the input, posts and media directories
// exist. Every missing directory is named in the returned error.
func (m *Migrator) CheckDirectories() error {
	var errs []error
	for _, dir := range []string{m.cfg.InputDir, m.cfg.PostsDir, m.cfg.MediaDir} {
		ok, err := fileutil.IsDir(m.fs, dir)
		if err != nil {
			return err
		}
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingDirectory, dir))
		}
	}
	return errors.Join(errs...)
}

// Discover lists the input directory once and classifies its entries.
// Anything that is neither a document nor a resource folder is ignored
// here and later prevents the input directory from being removed.
func (m *Migrator) Discover() (*types.ImportSet, error) {
	m.log.Info().Str("dir", m.cfg.InputDir).Msg("reading files from import directory")

	entries, err := fileutil.List(m.fs, m.cfg.InputDir)
	if err != nil {
		return nil, err
	}

	set := &types.ImportSet{}
	for _, e := range entries {
		switch {
		case e.IsDir && strings.HasSuffix(e.Name, m.cfg.ResourceSuffix):
			set.ResourceFolders = append(set.ResourceFolders, e.Path)
		case !e.IsDir && filepath.Ext(e.Name) == m.cfg.DocumentExt:
			if e.Name == m.cfg.IndexName && m.cfg.IndexPolicy != types.IndexInclude {
				set.Index = e.Path
				continue
			}
			set.Documents = append(set.Documents, e.Path)
		default:
			m.log.Debug().Str("path", e.Path).Msg("not a document or resource folder")
		}
	}

	for _, folder := range set.ResourceFolders {
		children, err := fileutil.List(m.fs, folder)
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			if c.IsDir {
				m.log.Warn().Str("path", c.Path).Msg("nested directory in resource folder is not relocated")
				continue
			}
			set.ResourceFiles = append(set.ResourceFiles, c.Path)
		}
	}

	m.log.Info().Strs("documents", set.Documents).Msg("found documents")
	m.log.Info().Strs("folders", set.ResourceFolders).Msg("found resource folders")

	if set.Index != "" {
		if err := m.handleIndex(set.Index); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func (m *Migrator) handleIndex(path string) error {
	if m.cfg.IndexPolicy != types.IndexDiscover {
		m.log.Info().Str("path", path).Msg("index document excluded")
		return nil
	}

	raw, err := fileutil.ReadText(m.fs, path)
	if err != nil {
		return err
	}
	doc, err := markup.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	m.log.Info().Str("path", path).
		Int("bytes", len(raw)).
		Int("links", len(doc.All("a"))).
		Msg("index document read, not converted")
	return nil
}

// transform converts and writes every document. Conversion failures abort
// or are collected by path, depending on the failure policy; filesystem
// failures always abort.
func (m *Migrator) transform(conv *convert.Converter, set *types.ImportSet) (map[string]error, error) {
	failed := make(map[string]error)
	written := make(map[string]string)
	for _, path := range set.Documents {
		m.log.Info().Str("document", path).Msg("extracting content")

		raw, err := fileutil.ReadText(m.fs, path)
		if err != nil {
			return nil, err
		}

		out, err := conv.ConvertDocument(path, raw)
		if err != nil {
			if m.cfg.OnError == types.OnErrorAbort {
				return nil, err
			}
			m.log.Error().Err(err).Str("document", path).Msg("document failed, source kept")
			failed[path] = err
			continue
		}

		dst := filepath.Join(m.cfg.PostsDir, out.Name)
		if prev, ok := written[dst]; ok {
			m.log.Warn().Str("document", path).Str("previous", prev).Str("output", dst).
				Msg("output already written in this run, overwriting")
		}
		written[dst] = path
		if err := fileutil.WriteText(m.fs, dst, out.Text); err != nil {
			return nil, err
		}
		m.log.Debug().Str("document", path).Str("output", dst).Int("fields", out.FrontMatter.Len()).Msg("wrote document")
	}
	return failed, nil
}

// relocate copies every resource file into the media directory. The first
// file copied under a given name wins; later ones are skipped with a
// warning.
func (m *Migrator) relocate(set *types.ImportSet) error {
	current := ""
	for _, src := range set.ResourceFiles {
		if folder := filepath.Dir(src); folder != current {
			current = folder
			m.log.Info().Str("folder", folder).Str("media", m.cfg.MediaDir).Msg("exporting media")
		}

		dst := filepath.Join(m.cfg.MediaDir, filepath.Base(src))
		exists, err := fileutil.Exists(m.fs, dst)
		if err != nil {
			return err
		}
		if !exists {
			err = fileutil.CopyFile(m.fs, src, dst)
			if err == nil {
				continue
			}
			if !os.IsExist(err) {
				return err
			}
		}
		m.log.Warn().Str("source", src).Str("destination", dst).
			Msg("destination already exists and would be overwritten, skipping")
	}
	return nil
}

// cleanup removes the export: documents, resource files, resource folders
// and the input directory, files before their directories. Sources of
// failed documents and their resource folders are kept, and so is the
// input directory that contains them.
func (m *Migrator) cleanup(set *types.ImportSet, failed map[string]error) error {
	m.log.Info().Str("dir", m.cfg.InputDir).Msg("removing the original import directory and included files")

	keptFolders := make(map[string]bool)
	for path := range failed {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		keptFolders[filepath.Join(filepath.Dir(path), base+m.cfg.ResourceSuffix)] = true
	}

	for _, path := range set.Originals() {
		if _, ok := failed[path]; ok {
			continue
		}
		if err := fileutil.Remove(m.fs, path); err != nil {
			return err
		}
	}
	for _, path := range set.ResourceFiles {
		if keptFolders[filepath.Dir(path)] {
			continue
		}
		if err := fileutil.Remove(m.fs, path); err != nil {
			return err
		}
	}
	for _, folder := range set.ResourceFolders {
		if keptFolders[folder] {
			continue
		}
		if err := fileutil.RemoveDir(m.fs, folder); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		m.log.Warn().Int("failed", len(failed)).Str("dir", m.cfg.InputDir).Msg("import directory kept, it still holds failed documents")
		return nil
	}
	return fileutil.RemoveDir(m.fs, m.cfg.InputDir)
}
