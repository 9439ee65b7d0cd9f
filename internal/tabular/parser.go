package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/csvsweep/csvsweep/internal/domain"
)

// utf8BOM is the byte order mark some CSV exports prepend.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Supported charset names for Options.Encoding.
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin-1"
	EncodingWindows1252 = "windows-1252"
)

// Options configures how raw bytes are interpreted.
type Options struct {
	// Delimiter is the field separator. Defaults to a comma when empty.
	Delimiter string

	// Encoding names the charset the input is decoded from. Defaults
	// to utf-8 when empty.
	Encoding string
}

// ParseFunc turns raw bytes into a frame. Parser.Parse satisfies it,
// as does any parser wrapped with WithChecks.
type ParseFunc func(body []byte) (*domain.Frame, error)

// Parse calls f, letting a bare ParseFunc stand in wherever a
// single-method parser is expected.
func (f ParseFunc) Parse(body []byte) (*domain.Frame, error) {
	return f(body)
}

// Parser converts CSV bytes into domain frames using fixed options.
// A Parser is immutable after construction and safe for concurrent use.
type Parser struct {
	delimiter rune
	decoder   *encoding.Decoder // nil means the input is used as-is
}

// NewParser creates a Parser for the given options, validating them
// first. The zero Options value yields a comma-separated utf-8 parser.
func NewParser(opts Options) (*Parser, error) {
	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = ","
	}
	if utf8.RuneCountInString(delimiter) != 1 {
		return nil, fmt.Errorf("%w: delimiter must be a single character, got %q",
			ErrInvalidOptions, opts.Delimiter)
	}
	comma, _ := utf8.DecodeRuneInString(delimiter)

	var decoder *encoding.Decoder
	switch opts.Encoding {
	case "", EncodingUTF8:
		// Input is already in the charset Go strings use
	case EncodingLatin1:
		decoder = charmap.ISO8859_1.NewDecoder()
	case EncodingWindows1252:
		decoder = charmap.Windows1252.NewDecoder()
	default:
		return nil, fmt.Errorf("%w: unsupported encoding %q", ErrInvalidOptions, opts.Encoding)
	}

	return &Parser{
		delimiter: comma,
		decoder:   decoder,
	}, nil
}

// Parse decodes body per the configured charset and parses it as CSV.
// The first record becomes the frame's column names; every following
// record becomes a row. All rows must have as many fields as the
// header.
func (p *Parser) Parse(body []byte) (*domain.Frame, error) {
	body = bytes.TrimPrefix(body, utf8BOM)

	if p.decoder != nil {
		decoded, _, err := transform.Bytes(p.decoder, body)
		if err != nil {
			return nil, fmt.Errorf("%w: charset decoding: %v", ErrMalformedCSV, err)
		}
		body = decoded
	}

	reader := csv.NewReader(bytes.NewReader(body))
	reader.Comma = p.delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	columns, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("%w: reading header: %v", ErrMalformedCSV, err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}
		rows = append(rows, record)
	}

	return &domain.Frame{
		Columns: columns,
		Rows:    rows,
	}, nil
}
