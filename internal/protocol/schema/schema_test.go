package schema

import "testing"

func TestDescribeKnownTags(t *testing.T) {
	cases := map[string]string{
		"00": "Payload Format Indicator",
		"15": "Merchant Account Information (PromptPay)",
		"29": "Merchant Account Information (PromptPay)",
		"30": "Merchant Account Information",
		"53": "Transaction Currency",
		"63": "CRC",
		"87": "Unreserved Templates",
	}
	for tag, want := range cases {
		if got := Describe(tag); got != want {
			t.Fatalf("Describe(%s): got %q want %q", tag, got, want)
		}
	}
}

func TestDescribeUnknownTag(t *testing.T) {
	if got := Describe("42"); got != "Unknown field (42)" {
		t.Fatalf("unexpected description: %q", got)
	}
	if Known("42") {
		t.Fatalf("tag 42 should be unknown")
	}
	if !Known(TagCRC) {
		t.Fatalf("tag 63 should be known")
	}
}

func TestDescribeSubParentTable(t *testing.T) {
	if got := DescribeSub("62", "01"); got != "Bill Number" {
		t.Fatalf("unexpected description: %q", got)
	}
	if got := DescribeSub("29", "02"); got != "Mobile Number" {
		t.Fatalf("unexpected description: %q", got)
	}
	if got := DescribeSub("30", "02"); got != "Merchant Identifier" {
		t.Fatalf("unexpected description: %q", got)
	}
}

func TestDescribeSubFallsBackToGeneric(t *testing.T) {
	// 62 has no sub-tag 00, 04 has no sub-tag 06, 26 has no table at all.
	if got := DescribeSub("62", "00"); got != "Globally Unique Identifier" {
		t.Fatalf("unexpected description: %q", got)
	}
	if got := DescribeSub("04", "06"); got != "Country/Terminal Code" {
		t.Fatalf("unexpected description: %q", got)
	}
	if got := DescribeSub("26", "15"); got != "Reserved Data Element" {
		t.Fatalf("unexpected description: %q", got)
	}
}

func TestDescribeSubLastResort(t *testing.T) {
	if got := DescribeSub("62", "42"); got != "Sub-tag 42" {
		t.Fatalf("unexpected description: %q", got)
	}
}
