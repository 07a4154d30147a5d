// Package salesfile reads delimited sales files into raw records.
package salesfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"sales-analytics/models"
	"sales-analytics/utils"
)

// FieldCount is the number of fields every data line must have.
const FieldCount = 8

// ErrUndecodable is returned when no supported encoding can read the file.
var ErrUndecodable = errors.New("salesfile: could not decode file with any supported encoding")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// fallbacks are tried in order when the file is not valid UTF-8.
var fallbacks = []struct {
	name string
	enc  encoding.Encoding
}{
	{"latin-1", charmap.ISO8859_1},
	{"cp1252", charmap.Windows1252},
}

// Result is what a Reader produced from one file.
type Result struct {
	Encoding     string
	TotalRecords int // data lines, header excluded
	Records      []*models.RawRecord
	Malformed    int
}

// Reader loads a sales file and splits it into raw records.
type Reader struct {
	delimiter  string
	skipHeader bool
	logger     *utils.Logger
}

// New creates a Reader splitting on delimiter. When skipHeader is set the
// first line is not treated as data.
func New(delimiter string, skipHeader bool, logger *utils.Logger) *Reader {
	return &Reader{delimiter: delimiter, skipHeader: skipHeader, logger: logger}
}

// Read decodes the file at path and parses every data line.
func (r *Reader) Read(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("salesfile: read %q: %w", path, err)
	}

	text, enc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	r.logger.Info("[salesfile] Read %s with %s encoding", path, enc)

	lines := SplitLines(text)
	res := &Result{Encoding: enc}

	body := lines
	if r.skipHeader && len(lines) > 0 {
		body = lines[1:]
	}
	res.TotalRecords = len(body)

	for i, line := range body {
		rec, ok := ParseLine(line, r.delimiter)
		if !ok {
			if strings.TrimSpace(line) != "" {
				res.Malformed++
				r.logger.Debug("[salesfile] Skipping malformed line %d: %q", i+1, line)
			}
			continue
		}
		res.Records = append(res.Records, rec)
	}

	r.logger.Info("[salesfile] Parsed %d of %d records (%d malformed)",
		len(res.Records), res.TotalRecords, res.Malformed)
	return res, nil
}

// Decode returns data as a string: UTF-8 when valid, otherwise the first
// fallback encoding that decodes it.
func Decode(data []byte) (string, string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), "utf-8", nil
	}
	for _, fb := range fallbacks {
		out, err := fb.enc.NewDecoder().Bytes(data)
		if err == nil {
			return string(out), fb.name, nil
		}
	}
	return "", "", ErrUndecodable
}

// SplitLines splits on \n, dropping a trailing \r from each line and the
// empty tail after a final newline.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// ParseLine splits one line into a RawRecord. Blank lines and lines without
// exactly FieldCount fields report false.
func ParseLine(line, delimiter string) (*models.RawRecord, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}

	f := strings.Split(line, delimiter)
	if len(f) != FieldCount {
		return nil, false
	}
	for i := range f {
		f[i] = strings.TrimSpace(f[i])
	}

	return &models.RawRecord{
		TransactionID: f[0],
		Date:          f[1],
		ProductID:     f[2],
		ProductName:   f[3],
		Quantity:      f[4],
		UnitPrice:     f[5],
		CustomerID:    f[6],
		Region:        f[7],
	}, true
}
