// Package markdown ingests an awesome-list style Markdown README. Every
// line carrying a [Name](https://url) link becomes one row, categorized by
// the nearest preceding "## " heading.
package markdown

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/agentstation/toolmap/internal/sources"
	"github.com/agentstation/toolmap/internal/transport"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
	"github.com/agentstation/toolmap/pkg/records"
)

// Columns of the emitted table.
const (
	ColumnName        = "name"
	ColumnURL         = "url"
	ColumnDescription = "description"
	ColumnCategories  = "categories"
	ColumnSource      = "source"
)

// descriptionCutset is trimmed from the text following a link.
const descriptionCutset = " –—:-"

var (
	headingPattern = regexp.MustCompile(`^##\s+(.+)`)
	linkPattern    = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
)

// Source fetches a Markdown document over HTTP or from disk.
type Source struct {
	location   string
	tableID    string
	httpClient *http.Client
	token      string
	client     *transport.Client
}

// Option configures a Markdown source.
type Option func(*Source)

// WithURL sets the document location: an http(s) URL, a file:// URL or a
// plain filesystem path.
func WithURL(location string) Option {
	return func(s *Source) {
		if location != "" {
			s.location = location
		}
	}
}

// WithTableID sets the emitted table ID and the value of its source column.
func WithTableID(id string) Option {
	return func(s *Source) {
		if id != "" {
			s.tableID = id
		}
	}
}

// WithHTTPClient sets the HTTP client used for remote documents.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Source) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithToken sends token as a bearer credential, for private or
// rate-limited hosts such as raw.githubusercontent.com.
func WithToken(token string) Option {
	return func(s *Source) {
		s.token = token
	}
}

// New creates a Markdown source for the eudk awesome-ai-tools README unless
// configured otherwise.
func New(opts ...Option) *Source {
	s := &Source{
		location: constants.DefaultEUDKRawURL,
		tableID:  constants.EUDKTableID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = transport.New(
		transport.WithHTTPClient(s.httpClient),
		transport.WithAuth(&transport.BearerAuth{}, s.token),
	)
	return s
}

// ID returns the source identifier.
func (s *Source) ID() sources.ID {
	return sources.MarkdownID
}

// Location returns the configured document location.
func (s *Source) Location() string {
	return s.location
}

// Fetch retrieves the document and parses it into a single table.
func (s *Source) Fetch(ctx context.Context) ([]records.Table, error) {
	body, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	table, err := Parse(body, s.tableID)
	if err != nil {
		return nil, errors.WrapParse("markdown", s.location, err)
	}

	logging.FromContext(ctx).Debug().
		Str("location", s.location).
		Str("table", table.ID).
		Int("rows", len(table.Rows)).
		Msg("Parsed Markdown source")
	return []records.Table{table}, nil
}

func (s *Source) open(ctx context.Context) (io.ReadCloser, error) {
	if path, ok := localPath(s.location); ok {
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &errors.NotFoundError{Resource: "markdown document", ID: path}
			}
			return nil, errors.WrapIO("open", path, err)
		}
		return f, nil
	}

	return s.client.Open(ctx, s.tableID, s.location)
}

// localPath reports whether location names a file on disk.
func localPath(location string) (string, bool) {
	if !strings.Contains(location, "://") {
		return location, true
	}
	u, err := url.Parse(location)
	if err == nil && u.Scheme == "file" {
		return u.Path, true
	}
	return "", false
}

// Parse scans a Markdown document. Headings of level two set the current
// category; lines without a link are skipped.
func Parse(r io.Reader, tableID string) (records.Table, error) {
	table := records.Table{
		ID:      tableID,
		Columns: []string{ColumnName, ColumnURL, ColumnDescription, ColumnCategories, ColumnSource},
		Rows:    []records.Raw{},
	}

	category := records.Null()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			category = records.String(strings.TrimSpace(m[1]))
			continue
		}
		loc := linkPattern.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}

		description := records.Null()
		if rest := strings.Trim(line[loc[1]:], descriptionCutset); rest != "" {
			description = records.String(rest)
		}
		table.Rows = append(table.Rows, records.Raw{
			ColumnName:        records.String(strings.TrimSpace(line[loc[2]:loc[3]])),
			ColumnURL:         records.String(strings.TrimSpace(line[loc[4]:loc[5]])),
			ColumnDescription: description,
			ColumnCategories:  category,
			ColumnSource:      records.String(tableID),
		})
	}
	if err := scanner.Err(); err != nil {
		return records.Table{}, err
	}
	return table, nil
}
