package protocol

import (
	"github.com/danmuck/thaiqr/internal/protocol/crc"
	"github.com/danmuck/thaiqr/internal/protocol/schema"
	"github.com/danmuck/thaiqr/internal/protocol/tlv"
)

// Fixed values emitted by Encode.
const (
	PayloadFormatVersion = "01"
	InitiationStatic     = "12"
	CategoryGeneral      = "0000"
	CurrencyTHB          = "764"
	CountryTH            = "TH"

	// crcHeader is the tag and length of the CRC object; the checksum
	// covers it.
	crcHeader = schema.TagCRC + "04"
)

// Encode builds the payload for in. It returns a *ValidationError carrying
// every violation when in is not valid.
func Encode(in GeneratorInput) (string, error) {
	if msgs := Validate(in); len(msgs) > 0 {
		return "", &ValidationError{Messages: msgs}
	}

	var b tlv.Builder
	b.Add(schema.TagPayloadFormat, PayloadFormatVersion)
	b.Add(schema.TagInitiation, InitiationStatic)
	b.AddTemplate(schema.TagMerchantAccount, merchantAccount(in))
	b.Add(schema.TagCategoryCode, CategoryGeneral)
	b.Add(schema.TagCurrency, CurrencyTHB)
	if in.Amount != nil && in.Amount.IsPositive() {
		b.Add(schema.TagAmount, in.Amount.StringFixed(2))
	}
	b.Add(schema.TagCountry, CountryTH)
	if in.MerchantName != "" {
		b.Add(schema.TagMerchantName, in.MerchantName)
	}
	if in.MerchantCity != "" {
		b.Add(schema.TagMerchantCity, in.MerchantCity)
	}
	b.AddTemplate(schema.TagAdditionalData, additionalData(in))
	if err := b.Err(); err != nil {
		return "", err
	}

	b.Add(schema.TagCRC, crc.Checksum(b.String()+crcHeader))
	if err := b.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func merchantAccount(in GeneratorInput) *tlv.Builder {
	var b tlv.Builder
	if in.AID != "" {
		b.Add(schema.SubGUID, in.AID)
	}
	if in.BillerID != "" {
		b.Add(schema.SubBillerID, in.BillerID)
	}
	return &b
}

func additionalData(in GeneratorInput) *tlv.Builder {
	var b tlv.Builder
	if in.Reference1 != "" {
		b.Add(schema.SubBillNumber, in.Reference1)
	}
	if in.Reference2 != "" {
		b.Add(schema.SubReference2, in.Reference2)
	}
	return &b
}
