// Package report renders the gold catalog as a Markdown document grouped
// by category.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	md "github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/records"
)

// DefaultTitle heads the document unless overridden.
const DefaultTitle = "AI Tools Catalog"

// Report builds a Markdown catalog.
type Report struct {
	title string
}

// Option configures a Report.
type Option func(*Report)

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(r *Report) {
		if title != "" {
			r.title = title
		}
	}
}

// New creates a Report.
func New(opts ...Option) *Report {
	r := &Report{title: DefaultTitle}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// section is one category and its tools.
type section struct {
	category string
	tools    []records.Gold
}

// Write renders tools to w. A tool appears under each of its categories;
// tools without categories are listed as uncategorized, which always comes
// last.
func (r *Report) Write(w io.Writer, tools []records.Gold) error {
	sections := group(tools)
	title := cases.Title(language.English)

	doc := md.NewMarkdown(w)
	doc.H1(r.title).LF()
	doc.PlainTextf("%s tools in %s categories.", md.Bold(strconv.Itoa(len(tools))), md.Bold(strconv.Itoa(len(sections)))).LF().LF()

	rows := make([][]string, 0, len(sections))
	for _, s := range sections {
		rows = append(rows, []string{title.String(s.category), strconv.Itoa(len(s.tools))})
	}
	if len(rows) > 0 {
		doc.Table(md.TableSet{
			Header: []string{"Category", "Tools"},
			Rows:   rows,
		}).LF()
	}

	for _, s := range sections {
		doc.H2(title.String(s.category)).LF()
		items := make([]string, 0, len(s.tools))
		for _, t := range s.tools {
			items = append(items, item(t))
		}
		doc.BulletList(items...).LF()
	}

	if err := doc.Build(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// String renders tools to a string.
func (r *Report) String(tools []records.Gold) (string, error) {
	var b strings.Builder
	if err := r.Write(&b, tools); err != nil {
		return "", err
	}
	return b.String(), nil
}

// item formats one bullet: the linked name followed by the description.
func item(t records.Gold) string {
	label := t.Name
	if t.URL != nil {
		label = md.Link(t.Name, *t.URL)
	}
	if desc := strings.TrimSpace(records.Deref(t.Description)); desc != "" {
		return label + " - " + desc
	}
	return label
}

// group buckets tools by category. Categories sort alphabetically with
// uncategorized last; tools sort by name within a category.
func group(tools []records.Gold) []section {
	byCategory := make(map[string][]records.Gold)
	for _, t := range tools {
		cats := t.Categories
		if len(cats) == 0 {
			cats = []string{constants.Uncategorized}
		}
		seen := make(map[string]bool, len(cats))
		for _, c := range cats {
			if seen[c] {
				continue
			}
			seen[c] = true
			byCategory[c] = append(byCategory[c], t)
		}
	}

	sections := make([]section, 0, len(byCategory))
	for c, ts := range byCategory {
		sort.SliceStable(ts, func(i, j int) bool {
			return strings.ToLower(ts[i].Name) < strings.ToLower(ts[j].Name)
		})
		sections = append(sections, section{category: c, tools: ts})
	}
	sort.Slice(sections, func(i, j int) bool {
		a, b := sections[i].category, sections[j].category
		if (a == constants.Uncategorized) != (b == constants.Uncategorized) {
			return b == constants.Uncategorized
		}
		return a < b
	})
	return sections
}
