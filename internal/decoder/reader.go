package decoder

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kimuray/pcs-gen/internal/models"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names the character set of the input file.
type Encoding string

const (
	EncodingUTF8     Encoding = "utf-8"
	EncodingShiftJIS Encoding = "shift_jis"
)

// ParseEncoding accepts the common spellings of the supported encodings.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "shift_jis", "shift-jis", "sjis", "cp932":
		return EncodingShiftJIS, nil
	}
	return "", fmt.Errorf("decoder: unsupported encoding %q", s)
}

// Options controls how the input is read.
type Options struct {
	Encoding Encoding
	// Header drops the first row of the file.
	Header bool
}

// Reader yields decoded records from a CSV stream.
type Reader struct {
	csv        *csv.Reader
	skipHeader bool
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader, opts Options) (*Reader, error) {
	var src io.Reader
	switch opts.Encoding {
	case EncodingUTF8, "":
		src = transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	case EncodingShiftJIS:
		src = transform.NewReader(r, japanese.ShiftJIS.NewDecoder())
	default:
		return nil, fmt.Errorf("decoder: unsupported encoding %q", opts.Encoding)
	}

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // Field count is checked by Decode
	reader.ReuseRecord = true

	return &Reader{csv: reader, skipHeader: opts.Header}, nil
}

// Next returns the next record, or io.EOF once the input is exhausted.
func (r *Reader) Next() (models.Record, error) {
	if r.skipHeader {
		r.skipHeader = false
		if _, err := r.read(); err != nil {
			return models.Record{}, err
		}
	}

	fields, err := r.read()
	if err != nil {
		return models.Record{}, err
	}

	rec, err := Decode(fields)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Line, _ = r.csv.FieldPos(0)
		}
		return models.Record{}, err
	}

	return rec, nil
}

func (r *Reader) read() ([]string, error) {
	fields, err := r.csv.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &DecodeError{Line: pe.Line, Err: pe.Err}
		}
		return nil, fmt.Errorf("decoder: failed to read record: %w", err)
	}
	return fields, nil
}
