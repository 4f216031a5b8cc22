package protocol

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// SubTag is one data object nested inside a template field.
type SubTag struct {
	Tag         string `json:"tag"`
	Length      int    `json:"length"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Field is one top level data object. SubTags is set only when the whole
// value framed as a nested TLV sequence.
type Field struct {
	Tag         string   `json:"tag"`
	Length      int      `json:"length"`
	Value       string   `json:"value"`
	Description string   `json:"description"`
	SubTags     []SubTag `json:"subTags,omitempty"`
}

// Data is the decoded payload. Optional members stay nil when the payload
// does not carry the corresponding tag. Amount is NaN when tag 54 is not
// numeric.
type Data struct {
	Version      string   `json:"version"`
	Type         string   `json:"type"`
	MerchantID   *string  `json:"merchantId,omitempty"`
	MerchantName *string  `json:"merchantName,omitempty"`
	Amount       *float64 `json:"amount,omitempty"`
	Currency     *string  `json:"currency,omitempty"`
	Reference    *string  `json:"reference,omitempty"`
	Checksum     *string  `json:"checksum,omitempty"`
	RawData      string   `json:"rawData"`
	ParsedFields []Field  `json:"parsedFields"`
}

// MarshalJSON renders a non-finite amount as null; encoding/json rejects
// NaN and Inf.
func (d Data) MarshalJSON() ([]byte, error) {
	type plain Data
	out := plain(d)
	if out.Amount != nil && (math.IsNaN(*out.Amount) || math.IsInf(*out.Amount, 0)) {
		out.Amount = nil
		return json.Marshal(struct {
			plain
			Amount *float64 `json:"amount"`
		}{plain: out})
	}
	return json.Marshal(out)
}

// Field returns the first parsed field with tag.
func (d *Data) Field(tag string) (Field, bool) {
	for _, f := range d.ParsedFields {
		if f.Tag == tag {
			return f, true
		}
	}
	return Field{}, false
}

// GeneratorInput describes a static bill payment QR. Empty optional
// strings are treated as absent.
type GeneratorInput struct {
	AID          string           `json:"aid"`
	BillerID     string           `json:"billerId"`
	Reference1   string           `json:"reference1"`
	Reference2   string           `json:"reference2,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	MerchantName string           `json:"merchantName,omitempty"`
	MerchantCity string           `json:"merchantCity,omitempty"`
}

// SampleInput returns a filled-in generator input for demos and tests.
func SampleInput() GeneratorInput {
	amount := decimal.NewFromInt(100)
	return GeneratorInput{
		AID:          "A000000677010112",
		BillerID:     "010566300012345",
		Reference1:   "INV2024001",
		Reference2:   "0876543210",
		Amount:       &amount,
		MerchantName: "Sample Merchant",
		MerchantCity: "Bangkok",
	}
}
