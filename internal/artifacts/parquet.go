package artifacts

import (
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/records"
)

// bronzeCell is one raw cell as stored in a bronze table.
type bronzeCell struct {
	Column string   `parquet:"column"`
	Null   bool     `parquet:"null"`
	IsList bool     `parquet:"is_list"`
	Text   string   `parquet:"text"`
	List   []string `parquet:"list,list"`
}

// bronzeRow stores a raw row as its ordered cells so heterogeneous source
// layouts share one parquet schema.
type bronzeRow struct {
	Cells []bronzeCell `parquet:"cells"`
}

// WriteTable atomically writes a raw table as bronze parquet.
func WriteTable(path string, t records.Table) error {
	rows := make([]bronzeRow, len(t.Rows))
	for i, raw := range t.Rows {
		cells := make([]bronzeCell, 0, len(t.Columns))
		for _, col := range t.Columns {
			v := raw.Get(col)
			cell := bronzeCell{Column: col}
			switch v.Kind() {
			case records.KindNull:
				cell.Null = true
			case records.KindList:
				cell.IsList = true
				cell.List, _ = v.Items()
			default:
				cell.Text, _ = v.Str()
			}
			cells = append(cells, cell)
		}
		rows[i] = bronzeRow{Cells: cells}
	}
	return writeParquet(path, rows)
}

// ReadTable reads a bronze parquet table. The table ID is the file stem and
// the column order is the order in which cells were first seen.
func ReadTable(path string) (records.Table, error) {
	rows, err := readParquet[bronzeRow](path)
	if err != nil {
		return records.Table{}, err
	}

	t := records.Table{ID: TableID(path), Columns: []string{}, Rows: make([]records.Raw, 0, len(rows))}
	seen := map[string]struct{}{}
	for _, row := range rows {
		raw := make(records.Raw, len(row.Cells))
		for _, cell := range row.Cells {
			if _, ok := seen[cell.Column]; !ok {
				seen[cell.Column] = struct{}{}
				t.Columns = append(t.Columns, cell.Column)
			}
			switch {
			case cell.Null:
				raw[cell.Column] = records.Null()
			case cell.IsList:
				raw[cell.Column] = records.List(cell.List...)
			default:
				raw[cell.Column] = records.String(cell.Text)
			}
		}
		t.Rows = append(t.Rows, raw)
	}
	return t, nil
}

// WriteSilver atomically writes silver records.
func WriteSilver(path string, recs []records.Silver) error {
	return writeParquet(path, recs)
}

// ReadSilver reads silver records.
func ReadSilver(path string) ([]records.Silver, error) {
	return readParquet[records.Silver](path)
}

// WriteGold atomically writes gold records.
func WriteGold(path string, recs []records.Gold) error {
	return writeParquet(path, recs)
}

// ReadGold reads gold records.
func ReadGold(path string) ([]records.Gold, error) {
	return readParquet[records.Gold](path)
}

func writeParquet[T any](path string, rows []T) error {
	return WriteAtomic(path, func(w io.Writer) error {
		return parquet.Write(w, rows)
	})
}

func readParquet[T any](path string) ([]T, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("artifact", path)
		}
		return nil, errors.WrapIO("stat", path, err)
	}
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, errors.WrapParse("parquet", path, err)
	}
	return rows, nil
}
