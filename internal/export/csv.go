package export

import (
	"encoding/csv"
	"io"

	"github.com/minjae-dev/asset-management/internal/assignment"
)

// utf8BOM makes Excel detect the encoding; without it Korean headers
// render as mojibake when the file is opened directly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// writeCSV renders the collection as a single flat table. Derived
// sheets have no CSV equivalent, so history and statistics options
// are ignored here.
func writeCSV(w io.Writer, assignments []*assignment.Assignment, opts Options) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cols := columnsFor(opts)
	cw := csv.NewWriter(w)

	if err := cw.Write(headers(cols)); err != nil {
		return err
	}
	for _, a := range assignments {
		if err := cw.Write(row(cols, a)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
