package output

import (
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/toolmap/internal/pipeline"
	"github.com/agentstation/toolmap/internal/store/postgres"
	"github.com/agentstation/toolmap/pkg/records"
)

const descriptionWidth = 60

// GoldTable converts gold tools to a table. Wide adds tags, domain and
// the full description.
func GoldTable(tools []records.Gold, wide bool) Data {
	headers := []string{"Name", "URL", "Categories", "API", "Free"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignCenter, AlignCenter}
	if wide {
		headers = append(headers, "Tags", "Domain", "Description")
		align = append(align, AlignLeft, AlignLeft, AlignLeft)
	} else {
		headers = append(headers, "Description")
		align = append(align, AlignLeft)
	}

	rows := make([][]string, 0, len(tools))
	for _, t := range tools {
		row := []string{
			t.Name,
			orDash(records.Deref(t.URL)),
			orDash(strings.Join(t.Categories, ", ")),
			yesNo(t.HasAPI),
			yesNo(t.HasFree),
		}
		desc := records.Deref(t.Description)
		if wide {
			row = append(row,
				orDash(strings.Join(t.Tags, ", ")),
				orDash(records.Deref(t.Domain)),
				orDash(desc))
		} else {
			row = append(row, orDash(Truncate(desc, descriptionWidth)))
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// SilverTable converts silver records to a table.
func SilverTable(recs []records.Silver, wide bool) Data {
	headers := []string{"Source", "Name", "URL", "Categories", "API", "Free"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignCenter, AlignCenter}
	if wide {
		headers = append(headers, "Tags", "Domain", "Description")
		align = append(align, AlignLeft, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		row := []string{
			r.Source,
			r.Name,
			orDash(records.Deref(r.URL)),
			orDash(strings.Join(r.Categories, ", ")),
			yesNo(r.HasAPI),
			yesNo(r.HasFree),
		}
		if wide {
			row = append(row,
				orDash(strings.Join(r.Tags, ", ")),
				orDash(records.Deref(r.Domain)),
				orDash(r.Description))
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// StagesTable summarizes stage results.
func StagesTable(results []pipeline.StageResult) Data {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "ok"
		switch {
		case r.Skipped:
			status = "skipped"
		case len(r.Errors) > 0:
			status = strconv.Itoa(len(r.Errors)) + " source errors"
		}
		rows = append(rows, []string{
			r.Stage,
			strconv.Itoa(r.Rows),
			strconv.Itoa(r.Dropped),
			strconv.Itoa(len(r.Output)),
			r.Duration.Round(time.Millisecond).String(),
			status,
		})
	}
	return Data{
		Headers:         []string{"Stage", "Rows", "Dropped", "Outputs", "Duration", "Status"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignLeft},
	}
}

// LoadTable summarizes a database load.
func LoadTable(r *postgres.LoadResult) Data {
	return Data{
		Headers: []string{"Staged", "Upserted", "Updated", "Inserted", "Total", "Duration"},
		Rows: [][]string{{
			strconv.FormatInt(r.Staged, 10),
			strconv.FormatInt(r.Upserted, 10),
			strconv.FormatInt(r.Updated, 10),
			strconv.FormatInt(r.Inserted, 10),
			strconv.FormatInt(r.Total, 10),
			r.Duration.Round(time.Millisecond).String(),
		}},
		ColumnAlignment: []Align{AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight},
	}
}

// Truncate shortens s to at most n runes, ending in "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n <= 3 {
		return s
	}
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
