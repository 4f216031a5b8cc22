package protocol

import (
	"github.com/danmuck/thaiqr/internal/protocol/schema"
	"github.com/danmuck/thaiqr/internal/protocol/tlv"
)

// Decode parses a raw Thai QR payload. Trailing bytes that cannot be
// framed are dropped; Decode fails only when nothing frames at all.
func Decode(raw string) (*Data, error) {
	scanned := tlv.Scan(raw)
	if len(scanned) == 0 {
		return nil, &ParseError{Reason: noFieldsReason}
	}

	data := &Data{
		RawData:      raw,
		ParsedFields: make([]Field, 0, len(scanned)),
	}
	for _, sf := range scanned {
		field := Field{
			Tag:         sf.Tag,
			Length:      sf.Length,
			Value:       sf.Value,
			Description: schema.Describe(sf.Tag),
		}
		if s, ok := ParseNested(sf.Tag, sf.Value).(Structured); ok {
			field.SubTags = s.SubTags
		}
		data.ParsedFields = append(data.ParsedFields, field)
		data.fold(field)
	}
	return data, nil
}
