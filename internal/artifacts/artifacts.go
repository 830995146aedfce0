// Package artifacts reads and writes the pipeline's stage artifacts under the
// data directory: bronze/silver/gold parquet tables and YAML side files.
// Every write goes to a temp file in the target directory and is renamed
// into place.
package artifacts

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/toolmap/internal/matcher"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
)

// Store locates stage artifacts under a data directory.
type Store struct {
	root string
}

// New returns a Store rooted at dataDir.
func New(dataDir string) *Store {
	if dataDir == "" {
		dataDir = constants.DefaultDataDir
	}
	return &Store{root: dataDir}
}

// Root returns the data directory.
func (s *Store) Root() string {
	return s.root
}

// Dir returns the directory of a stage (bronze, silver, gold) or of the
// csv sources.
func (s *Store) Dir(stage string) string {
	return filepath.Join(s.root, stage)
}

// Path returns the path of name inside a stage directory.
func (s *Store) Path(stage, name string) string {
	return filepath.Join(s.root, stage, name)
}

// TablePath returns the parquet path of a table in a stage.
func (s *Store) TablePath(stage, table string) string {
	return s.Path(stage, table+constants.ArtifactExt)
}

// List returns the sorted parquet files of a stage. A missing directory
// yields no files.
func (s *Store) List(stage string) ([]string, error) {
	return Glob(s.Dir(stage), "*"+constants.ArtifactExt)
}

// Prune removes the stage tables that are not in keep and returns the
// removed paths.
func (s *Store) Prune(stage string, keep []string) ([]string, error) {
	files, err := s.List(stage)
	if err != nil {
		return nil, err
	}
	kept := make(map[string]struct{}, len(keep))
	for _, path := range keep {
		kept[filepath.Clean(path)] = struct{}{}
	}
	var removed []string
	for _, path := range files {
		if _, ok := kept[filepath.Clean(path)]; ok {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return removed, errors.WrapIO("remove", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

// Glob returns the sorted regular files in dir whose base name matches
// pattern. The pattern may be a comma-separated list of globs or regexes and
// is matched case-insensitively. A missing directory yields no files.
func Glob(dir, pattern string) ([]string, error) {
	m, err := matcher.ParseList(pattern, &matcher.Options{CaseInsensitive: true, Anchored: true})
	if err != nil {
		return nil, errors.NewValidationError("pattern", pattern, err.Error())
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, errors.WrapIO("read", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if m.Match(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// TableID returns the table identifier of an artifact path (its file stem).
func TableID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteAtomic writes path through a temp file in the same directory and
// renames it into place once write succeeds.
func WriteAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if err := write(tmp); err != nil {
		cleanup()
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

// WriteYAML atomically writes v as YAML.
func WriteYAML(path string, v any) error {
	data, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	return WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// ReadYAML decodes the YAML file at path into v.
func ReadYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return errors.NewNotFoundError("artifact", path)
	}
	if err != nil {
		return errors.WrapIO("read", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	return nil
}
