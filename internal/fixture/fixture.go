// Package fixture reads the whitespace-separated test-vector files shared by
// the CryptoNote test suites. Each non-empty line is one record: the first
// token names the operation and the remaining tokens are its arguments and
// expected results. Byte strings are hex encoded and the literal "x" stands
// for the empty byte string.
package fixture

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Empty is the token that encodes a zero-length byte string.
const Empty = "x"

// ErrMissingField is returned when a record has fewer tokens than requested.
var ErrMissingField = errors.New("fixture: missing field")

// Record is a single parsed line.
type Record struct {
	Line   int
	Name   string
	Fields []string
}

// Parse reads every record from r. Blank lines and lines starting with '#'
// are skipped.
func Parse(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		tokens := strings.Fields(text)
		records = append(records, Record{
			Line:   line,
			Name:   tokens[0],
			Fields: tokens[1:],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fixture: read line %d: %w", line+1, err)
	}
	return records, nil
}

// Load opens and parses a fixture file.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Filter returns the records whose operation name equals name.
func Filter(records []Record, name string) []Record {
	var out []Record
	for _, r := range records {
		if r.Name == name {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of fields after the operation name.
func (r Record) Len() int {
	return len(r.Fields)
}

// String returns field i verbatim.
func (r Record) String(i int) (string, error) {
	if i < 0 || i >= len(r.Fields) {
		return "", fmt.Errorf("%w: line %d wants field %d of %d", ErrMissingField, r.Line, i, len(r.Fields))
	}
	return r.Fields[i], nil
}

// Bytes hex-decodes field i, mapping the literal "x" to an empty slice.
func (r Record) Bytes(i int) ([]byte, error) {
	s, err := r.String(i)
	if err != nil {
		return nil, err
	}
	if s == Empty {
		return []byte{}, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("fixture: line %d field %d: %w", r.Line, i, err)
	}
	return b, nil
}

// Bytes32 decodes field i and requires exactly 32 bytes.
func (r Record) Bytes32(i int) ([32]byte, error) {
	var out [32]byte
	b, err := r.Bytes(i)
	if err != nil {
		return out, err
	}
	if len(b) != len(out) {
		return out, fmt.Errorf("fixture: line %d field %d: got %d bytes, want 32", r.Line, i, len(b))
	}
	copy(out[:], b)
	return out, nil
}

// Bool parses field i as "true" or "false".
func (r Record) Bool(i int) (bool, error) {
	s, err := r.String(i)
	if err != nil {
		return false, err
	}
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("fixture: line %d field %d: %q is not a boolean", r.Line, i, s)
}

// Uint64 parses field i as a decimal unsigned integer.
func (r Record) Uint64(i int) (uint64, error) {
	s, err := r.String(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("fixture: line %d field %d: %w", r.Line, i, err)
	}
	return v, nil
}
