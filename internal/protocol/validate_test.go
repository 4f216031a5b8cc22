package protocol

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func hasMessage(msgs []string, want string) bool {
	for _, m := range msgs {
		if m == want {
			return true
		}
	}
	return false
}

func TestValidateSampleIsValid(t *testing.T) {
	if msgs := Validate(SampleInput()); len(msgs) != 0 {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	msgs := Validate(GeneratorInput{AID: strings.Repeat("A", 50), Reference1: "R1"})
	if !hasMessage(msgs, "Biller ID is required") {
		t.Fatalf("missing biller id message: %v", msgs)
	}
	if !hasMessage(msgs, "AID must be 32 characters or less") {
		t.Fatalf("missing aid length message: %v", msgs)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %v", msgs)
	}
}

func TestValidateBlankRequired(t *testing.T) {
	msgs := Validate(GeneratorInput{AID: "   ", BillerID: "\t", Reference1: ""})
	for _, want := range []string{
		"AID (Application Identifier) is required",
		"Biller ID is required",
		"Reference 1 is required",
	} {
		if !hasMessage(msgs, want) {
			t.Fatalf("missing %q in %v", want, msgs)
		}
	}
}

func TestValidateLengthLimits(t *testing.T) {
	in := GeneratorInput{
		AID:          "A1",
		BillerID:     strings.Repeat("B", 33),
		Reference1:   strings.Repeat("R", 26),
		Reference2:   strings.Repeat("S", 26),
		MerchantName: strings.Repeat("N", 26),
		MerchantCity: strings.Repeat("C", 16),
	}
	msgs := Validate(in)
	for _, want := range []string{
		"Biller ID must be 32 characters or less",
		"Reference 1 must be 25 characters or less",
		"Reference 2 must be 25 characters or less",
		"Merchant name must be 25 characters or less",
		"Merchant city must be 15 characters or less",
	} {
		if !hasMessage(msgs, want) {
			t.Fatalf("missing %q in %v", want, msgs)
		}
	}

	in = GeneratorInput{
		AID:          strings.Repeat("A", 32),
		BillerID:     strings.Repeat("B", 32),
		Reference1:   strings.Repeat("R", 25),
		Reference2:   strings.Repeat("S", 25),
		MerchantName: strings.Repeat("N", 25),
		MerchantCity: strings.Repeat("C", 15),
	}
	if msgs := Validate(in); len(msgs) != 0 {
		t.Fatalf("limits should be inclusive: %v", msgs)
	}
}

func TestValidateAmountRange(t *testing.T) {
	base := GeneratorInput{AID: "A1", BillerID: "B1", Reference1: "R1"}

	neg := decimal.RequireFromString("-0.01")
	base.Amount = &neg
	if msgs := Validate(base); !hasMessage(msgs, "Amount must be positive") {
		t.Fatalf("expected negative amount message: %v", msgs)
	}

	big := decimal.RequireFromString("1000000")
	base.Amount = &big
	if msgs := Validate(base); !hasMessage(msgs, "Amount must be less than 1,000,000") {
		t.Fatalf("expected max amount message: %v", msgs)
	}

	edge := decimal.RequireFromString("999999.99")
	base.Amount = &edge
	if msgs := Validate(base); len(msgs) != 0 {
		t.Fatalf("upper bound should be valid: %v", msgs)
	}

	zero := decimal.Zero
	base.Amount = &zero
	if msgs := Validate(base); len(msgs) != 0 {
		t.Fatalf("zero should be valid: %v", msgs)
	}
}

func TestValidateByteCeiling(t *testing.T) {
	// 25 Thai characters are 75 bytes each; the references together cross
	// the 99 byte template limit.
	thai := strings.Repeat("ก", 25)
	msgs := Validate(GeneratorInput{AID: "A1", BillerID: "B1", Reference1: thai, Reference2: thai})
	if !hasMessage(msgs, "Additional data exceeds the 99 byte TLV limit") {
		t.Fatalf("expected ceiling message: %v", msgs)
	}
	if _, err := Encode(GeneratorInput{AID: "A1", BillerID: "B1", Reference1: thai, Reference2: thai}); err == nil {
		t.Fatalf("expected encode to fail")
	}
}
