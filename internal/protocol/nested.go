package protocol

import (
	"github.com/danmuck/thaiqr/internal/protocol/schema"
	"github.com/danmuck/thaiqr/internal/protocol/tlv"
)

// Nested is the outcome of trying to read a field value as a template:
// either Atomic or Structured.
type Nested interface {
	nested()
}

// Atomic is a value that is not a complete TLV sequence.
type Atomic struct {
	Value string
}

// Structured is a value that framed exactly into one or more sub-tags.
type Structured struct {
	SubTags []SubTag
}

func (Atomic) nested()     {}
func (Structured) nested() {}

// ParseNested scans value as a nested TLV sequence under parent. The scan
// is accepted only when it yields at least one sub-tag and consumes the
// whole value; anything else is Atomic.
func ParseNested(parent, value string) Nested {
	scanned := tlv.Scan(value)
	if len(scanned) == 0 || tlv.Consumed(scanned) != len(value) {
		return Atomic{Value: value}
	}
	subTags := make([]SubTag, 0, len(scanned))
	for _, f := range scanned {
		subTags = append(subTags, SubTag{
			Tag:         f.Tag,
			Length:      f.Length,
			Value:       f.Value,
			Description: schema.DescribeSub(parent, f.Tag),
		})
	}
	return Structured{SubTags: subTags}
}
