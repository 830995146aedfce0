// Package csvsource ingests CSV exports dropped into the sources directory.
// Each file becomes one raw table named after its file stem.
package csvsource

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agentstation/toolmap/internal/artifacts"
	"github.com/agentstation/toolmap/internal/sources"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
	"github.com/agentstation/toolmap/pkg/records"
)

// Source reads every CSV file matching a glob in a directory.
type Source struct {
	dir  string
	glob string
}

// Option configures a CSV source.
type Option func(*Source)

// WithDir sets the directory scanned for CSV files.
func WithDir(dir string) Option {
	return func(s *Source) {
		s.dir = dir
	}
}

// WithGlob sets the file name pattern. Comma-separated lists are accepted.
func WithGlob(glob string) Option {
	return func(s *Source) {
		if glob != "" {
			s.glob = glob
		}
	}
}

// New creates a CSV source reading data/sources/*.csv unless configured
// otherwise.
func New(opts ...Option) *Source {
	s := &Source{
		dir:  filepath.Join(constants.DefaultDataDir, constants.SourcesDir),
		glob: constants.DefaultCSVGlob,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the source identifier.
func (s *Source) ID() sources.ID {
	return sources.CSVID
}

// Dir returns the scanned directory.
func (s *Source) Dir() string { return s.dir }

// Glob returns the file name pattern.
func (s *Source) Glob() string { return s.glob }

// Files returns the sorted input files.
func (s *Source) Files() ([]string, error) {
	return artifacts.Glob(s.dir, s.glob)
}

// Fetch reads every matching file. It fails with ErrNoInput when nothing
// matches.
func (s *Source) Fetch(ctx context.Context) ([]records.Table, error) {
	files, err := s.Files()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.NoInput(constants.StageBronze, filepath.Join(s.dir, s.glob))
	}

	logger := logging.FromContext(ctx)
	tables := make([]records.Table, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug().
			Str("path", path).
			Str("table", table.ID).
			Int("rows", len(table.Rows)).
			Strs("columns", table.Columns).
			Msg("Read CSV source")
		tables = append(tables, table)
	}
	return tables, nil
}

// ReadFile parses one CSV file into a raw table. The header row names the
// columns; empty cells are null. The file name and a short content hash are
// appended as metadata columns on every row.
func ReadFile(path string) (records.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return records.Table{}, errors.WrapIO("read", path, err)
	}

	name := filepath.Base(path)
	table, err := Parse(bytes.NewReader(data))
	if err != nil {
		return records.Table{}, errors.WrapParse("csv", path, err)
	}
	table.ID = artifacts.TableID(path)

	sha := SHA16(data)
	table.Columns = append(table.Columns, constants.SourceFileColumn, constants.SourceSHAColumn)
	for _, row := range table.Rows {
		row[constants.SourceFileColumn] = records.String(name)
		row[constants.SourceSHAColumn] = records.String(sha)
	}
	return table, nil
}

// Parse reads CSV data with a header row. Rows shorter than the header are
// padded with nulls; extra cells are dropped.
func Parse(r io.Reader) (records.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return records.Table{Columns: []string{}, Rows: []records.Raw{}}, nil
	}
	if err != nil {
		return records.Table{}, err
	}
	columns := headerColumns(header)

	rows := make([]records.Raw, 0)
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records.Table{}, err
		}
		row := make(records.Raw, len(columns))
		for i, col := range columns {
			if i < len(cells) && cells[i] != "" {
				row[col] = records.String(cells[i])
			} else {
				row[col] = records.Null()
			}
		}
		rows = append(rows, row)
	}
	return records.Table{Columns: columns, Rows: rows}, nil
}

// headerColumns strips a UTF-8 byte order mark and makes column names
// unique: blank names become "unnamed_<i>" and repeats get a ".<n>" suffix.
func headerColumns(header []string) []string {
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		if strings.TrimSpace(col) == "" {
			col = "unnamed_" + strconv.Itoa(i)
		}
		if seen[col] {
			base := col
			for n := 1; seen[col]; n++ {
				col = fmt.Sprintf("%s.%d", base, n)
			}
		}
		seen[col] = true
		columns[i] = col
	}
	return columns
}

// SHA16 returns the first 16 hex characters of the SHA-256 of data.
func SHA16(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:constants.SourceSHALength]
}
