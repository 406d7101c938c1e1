package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/ddenisova/targbulk/internal/constant"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// mandatoryColumns must all be present in the upload header, whatever the
// delimiter or encoding turned out to be.
var mandatoryColumns = []string{
	constant.COL_SURNAME,
	constant.COL_EVENT_TYPE,
	constant.COL_START_DATE,
	constant.COL_END_DATE,
}

// ValidationError aborts the whole action before any remote call is made.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("upload is missing mandatory columns: %s", strings.Join(e.Missing, ", "))
}

// Table is a header-addressed view over the normalized upload rows.
type Table struct {
	Headers []string
	rows    []map[string]string
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the i-th data row keyed by normalized header. Absent cells
// are present in the map as empty strings.
func (t *Table) Row(i int) map[string]string { return t.rows[i] }

func (t *Table) missingMandatory() []string {
	present := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		present[h] = true
	}
	var missing []string
	for _, col := range mandatoryColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// DecodeTable turns raw uploaded bytes into a normalized Table. CSV input
// is decoded under a UTF-8-BOM / UTF-8 / Latin-1 fallback chain with
// delimiter auto-detection; XLSX input (recognized by the ZIP magic) uses
// the first worksheet. A *ValidationError is returned when no combination
// yields all mandatory columns.
func DecodeTable(data []byte) (*Table, error) {
	if isZIP(data) {
		return decodeWorkbook(data)
	}

	text := decodeText(data)
	var best *Table
	for _, delim := range []rune{';', ','} {
		table, err := parseCSV(text, delim)
		if err != nil {
			continue
		}
		missing := table.missingMandatory()
		if len(missing) == 0 {
			return table, nil
		}
		if best == nil || len(missing) < len(best.missingMandatory()) {
			best = table
		}
	}
	if best == nil {
		return nil, errors.New("upload is not a readable CSV file")
	}
	return nil, &ValidationError{Missing: best.missingMandatory()}
}

// decodeText cannot fail: the terminal Latin-1 step maps every byte.
func decodeText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
	return string(decoded)
}

func parseCSV(text string, delim rune) (*Table, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parse csv")
	}
	if len(records) == 0 {
		return nil, errors.New("empty file")
	}
	return buildTable(records), nil
}

func decodeWorkbook(data []byte) (*Table, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	records, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheets[0])
	}
	if len(records) == 0 {
		return nil, errors.New("empty workbook")
	}
	table := buildTable(records)
	if missing := table.missingMandatory(); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}
	return table, nil
}

func buildTable(records [][]string) *Table {
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = normalizeCell(h)
	}

	table := &Table{Headers: headers}
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				row[header] = normalizeCell(record[i])
			} else {
				row[header] = ""
			}
		}
		table.rows = append(table.rows, row)
	}
	return table
}

// normalizeCell strips stray BOM runes and surrounding whitespace. Cells
// never normalize to a null marker, only to "".
func normalizeCell(s string) string {
	s = strings.ReplaceAll(s, "\ufeff", "")
	return strings.TrimSpace(s)
}

func isZIP(data []byte) bool {
	return len(data) >= 2 && data[0] == 'P' && data[1] == 'K'
}
