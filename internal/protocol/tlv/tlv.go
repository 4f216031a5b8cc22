// Package tlv frames EMV QR data objects: a 2 digit tag, a 2 digit
// decimal length and exactly that many value bytes.
package tlv

import (
	"errors"
	"fmt"
	"strings"
)

const (
	TagLen    = 2
	LengthLen = 2
	HeaderLen = TagLen + LengthLen

	// MaxValueLen is the largest value a 2 digit length can declare.
	MaxValueLen = 99
)

var (
	ErrInvalidTag   = errors.New("tlv: tag must be two decimal digits")
	ErrValueTooLong = errors.New("tlv: value exceeds 99 bytes")
)

// Field is one scanned data object.
type Field struct {
	Tag    string
	Length int
	Value  string
}

// Span is the number of buffer bytes the field occupies.
func (f Field) Span() int {
	return HeaderLen + f.Length
}

// Scan splits buf into data objects. It stops at the first fragment that
// cannot be framed (short header, non-digit tag or length, or a length
// that overruns the buffer) and drops it; Scan never fails.
func Scan(buf string) []Field {
	fields := make([]Field, 0, 8)
	i := 0
	for i < len(buf) {
		if len(buf)-i < HeaderLen {
			break
		}
		tag := buf[i : i+TagLen]
		if !IsTag(tag) {
			break
		}
		l, ok := parseLength(buf[i+TagLen : i+HeaderLen])
		if !ok {
			break
		}
		if HeaderLen+l > len(buf)-i {
			break
		}
		fields = append(fields, Field{
			Tag:    tag,
			Length: l,
			Value:  buf[i+HeaderLen : i+HeaderLen+l],
		})
		i += HeaderLen + l
	}
	return fields
}

// Consumed returns how many bytes of the scanned buffer fields cover.
func Consumed(fields []Field) int {
	n := 0
	for _, f := range fields {
		n += f.Span()
	}
	return n
}

// IsTag reports whether s is a two digit tag code.
func IsTag(s string) bool {
	return len(s) == TagLen && isDigit(s[0]) && isDigit(s[1])
}

func parseLength(s string) (int, bool) {
	if len(s) != LengthLen || !isDigit(s[0]) || !isDigit(s[1]) {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Format encodes a single data object.
func Format(tag, value string) (string, error) {
	if !IsTag(tag) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	if len(value) > MaxValueLen {
		return "", fmt.Errorf("%w: tag %s has %d bytes", ErrValueTooLong, tag, len(value))
	}
	return fmt.Sprintf("%s%02d%s", tag, len(value), value), nil
}

// Builder appends data objects in call order. The first error sticks and
// later calls are ignored.
type Builder struct {
	sb  strings.Builder
	err error
}

// Add appends tag/value.
func (b *Builder) Add(tag, value string) *Builder {
	if b.err != nil {
		return b
	}
	enc, err := Format(tag, value)
	if err != nil {
		b.err = err
		return b
	}
	b.sb.WriteString(enc)
	return b
}

// AddTemplate appends tag with the nested encoding of inner as its value.
// An empty inner builder appends nothing.
func (b *Builder) AddTemplate(tag string, inner *Builder) *Builder {
	if b.err != nil {
		return b
	}
	if inner.err != nil {
		b.err = inner.err
		return b
	}
	if inner.Len() == 0 {
		return b
	}
	return b.Add(tag, inner.String())
}

// Len is the number of bytes encoded so far.
func (b *Builder) Len() int {
	return b.sb.Len()
}

// String returns the encoding so far.
func (b *Builder) String() string {
	return b.sb.String()
}

// Err returns the first encoding error, if any.
func (b *Builder) Err() error {
	return b.err
}
