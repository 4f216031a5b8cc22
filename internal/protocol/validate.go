package protocol

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/danmuck/thaiqr/internal/protocol/tlv"
	"github.com/shopspring/decimal"
)

const (
	maxAIDLen          = 32
	maxBillerIDLen     = 32
	maxReferenceLen    = 25
	maxMerchantNameLen = 25
	maxMerchantCityLen = 15
)

var maxAmount = decimal.RequireFromString("999999.99")

// Validate returns every violation in in; an empty result means Encode
// will accept it.
func Validate(in GeneratorInput) []string {
	var errs []string

	if strings.TrimSpace(in.AID) == "" {
		errs = append(errs, "AID (Application Identifier) is required")
	} else if utf8.RuneCountInString(in.AID) > maxAIDLen {
		errs = append(errs, "AID must be 32 characters or less")
	}

	if strings.TrimSpace(in.BillerID) == "" {
		errs = append(errs, "Biller ID is required")
	} else if utf8.RuneCountInString(in.BillerID) > maxBillerIDLen {
		errs = append(errs, "Biller ID must be 32 characters or less")
	}

	if strings.TrimSpace(in.Reference1) == "" {
		errs = append(errs, "Reference 1 is required")
	} else if utf8.RuneCountInString(in.Reference1) > maxReferenceLen {
		errs = append(errs, "Reference 1 must be 25 characters or less")
	}

	if utf8.RuneCountInString(in.Reference2) > maxReferenceLen {
		errs = append(errs, "Reference 2 must be 25 characters or less")
	}

	if in.Amount != nil {
		if in.Amount.IsNegative() {
			errs = append(errs, "Amount must be positive")
		} else if in.Amount.GreaterThan(maxAmount) {
			errs = append(errs, "Amount must be less than 1,000,000")
		}
	}

	if utf8.RuneCountInString(in.MerchantName) > maxMerchantNameLen {
		errs = append(errs, "Merchant name must be 25 characters or less")
	}

	if utf8.RuneCountInString(in.MerchantCity) > maxMerchantCityLen {
		errs = append(errs, "Merchant city must be 15 characters or less")
	}

	return append(errs, lengthCeiling(in)...)
}

// lengthCeiling reports elements whose encoded value would not fit the 2
// digit length field. Character limits above keep ASCII input well under
// it; multi-byte text can still cross it.
func lengthCeiling(in GeneratorInput) []string {
	var errs []string
	check := func(name string, n int) {
		if n > tlv.MaxValueLen {
			errs = append(errs, fmt.Sprintf("%s exceeds the %d byte TLV limit", name, tlv.MaxValueLen))
		}
	}
	check("Merchant account information", templateLen(in.AID, in.BillerID))
	check("Merchant name", len(in.MerchantName))
	check("Merchant city", len(in.MerchantCity))
	check("Additional data", templateLen(in.Reference1, in.Reference2))
	return errs
}

func templateLen(values ...string) int {
	n := 0
	for _, v := range values {
		if v != "" {
			n += tlv.HeaderLen + len(v)
		}
	}
	return n
}
