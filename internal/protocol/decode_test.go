package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestDecodeSimplePayload(t *testing.T) {
	data, err := Decode("00020101021253037645802TH6304")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The trailing "6304" declares 4 value bytes that are not there, so it
	// is dropped.
	want := []string{"00", "01", "53", "58"}
	if len(data.ParsedFields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(data.ParsedFields))
	}
	for i, tag := range want {
		f := data.ParsedFields[i]
		if f.Tag != tag {
			t.Fatalf("field %d: got tag %s want %s", i, f.Tag, tag)
		}
		if f.SubTags != nil {
			t.Fatalf("field %s: unexpected sub-tags %+v", tag, f.SubTags)
		}
	}
	if data.Version != "01" || data.Type != "12" {
		t.Fatalf("unexpected version/type: %q/%q", data.Version, data.Type)
	}
	if data.Currency == nil || *data.Currency != "764" {
		t.Fatalf("unexpected currency: %v", data.Currency)
	}
	if data.Checksum != nil {
		t.Fatalf("unexpected checksum: %q", *data.Checksum)
	}
	if data.RawData != "00020101021253037645802TH6304" {
		t.Fatalf("raw data not preserved")
	}
}

func TestDecodeTooShortFails(t *testing.T) {
	_, err := Decode("00")
	if !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Reason != "No valid QR code fields found" {
		t.Fatalf("unexpected reason: %q", parseErr.Reason)
	}
}

func TestDecodeGarbageFails(t *testing.T) {
	for _, in := range []string{"", "hello world", "AB02xx", "0099short"} {
		if _, err := Decode(in); !errors.Is(err, ErrNoFields) {
			t.Fatalf("Decode(%q): expected ErrNoFields, got %v", in, err)
		}
	}
}

func TestDecodeDropsOverrunningTail(t *testing.T) {
	data, err := Decode("000201010212260004hb400005US.QR.01041234567890123456")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data.ParsedFields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(data.ParsedFields))
	}
	if data.ParsedFields[2].Tag != "26" || data.ParsedFields[2].Value != "" {
		t.Fatalf("unexpected third field: %+v", data.ParsedFields[2])
	}
}

func TestDecodeSampleSubTags(t *testing.T) {
	raw := "00020101021230390016A00000067701011202150105663000123455204000053037645406100.005802TH5915Sample Merchant6007Bangkok62280110INV202400102100876543210630414B7"
	data, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	merchant, ok := data.Field("30")
	if !ok {
		t.Fatalf("missing field 30")
	}
	if len(merchant.SubTags) != 2 {
		t.Fatalf("expected 2 sub-tags, got %+v", merchant.SubTags)
	}
	if merchant.SubTags[0].Description != "Globally Unique Identifier" {
		t.Fatalf("unexpected description: %q", merchant.SubTags[0].Description)
	}
	if merchant.SubTags[1].Value != "010566300012345" || merchant.SubTags[1].Description != "Merchant Identifier" {
		t.Fatalf("unexpected sub-tag: %+v", merchant.SubTags[1])
	}

	additional, ok := data.Field("62")
	if !ok || len(additional.SubTags) != 2 {
		t.Fatalf("unexpected field 62: %+v", additional)
	}
	if additional.SubTags[0].Description != "Bill Number" || additional.SubTags[0].Value != "INV2024001" {
		t.Fatalf("unexpected sub-tag: %+v", additional.SubTags[0])
	}

	if data.MerchantID == nil || *data.MerchantID != "010566300012345" {
		t.Fatalf("unexpected merchant id: %v", data.MerchantID)
	}
	if data.MerchantName == nil || *data.MerchantName != "Sample Merchant" {
		t.Fatalf("unexpected merchant name: %v", data.MerchantName)
	}
	if data.Amount == nil || *data.Amount != 100 {
		t.Fatalf("unexpected amount: %v", data.Amount)
	}
	if data.Checksum == nil || *data.Checksum != "14B7" {
		t.Fatalf("unexpected checksum: %v", data.Checksum)
	}
	if data.Reference != nil {
		t.Fatalf("unexpected reference: %q", *data.Reference)
	}

	for _, tag := range []string{"53", "54", "58", "59", "60", "63"} {
		f, _ := data.Field(tag)
		if f.SubTags != nil {
			t.Fatalf("field %s should be atomic, got %+v", tag, f.SubTags)
		}
	}
}

func TestDecodePartialNestedScanIsAtomic(t *testing.T) {
	data, err := Decode("000201010212621101085Store1005802TH6304")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	f, ok := data.Field("62")
	if !ok {
		t.Fatalf("missing field 62")
	}
	if f.SubTags != nil {
		t.Fatalf("expected atomic field, got %+v", f.SubTags)
	}
	if f.Value != "01085Store1" {
		t.Fatalf("unexpected value: %q", f.Value)
	}
}

func TestDecodeReferenceLastWriteWins(t *testing.T) {
	data, err := Decode("0002010505REF-A0705REF-B")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Reference == nil || *data.Reference != "REF-B" {
		t.Fatalf("unexpected reference: %v", data.Reference)
	}
}

func TestDecodePromptPay(t *testing.T) {
	data, err := Decode("0002010102112937A000000677010111.promptpay.0812345678")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.MerchantID == nil || *data.MerchantID != "0812345678" {
		t.Fatalf("unexpected merchant id: %v", data.MerchantID)
	}
	if data.MerchantName == nil || *data.MerchantName != "PromptPay" {
		t.Fatalf("unexpected merchant name: %v", data.MerchantName)
	}

	// A later merchant name overwrites the PromptPay label.
	data, err = Decode("0002010102112937A000000677010111.promptpay.08123456785904Shop")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if *data.MerchantName != "Shop" {
		t.Fatalf("expected later tag 59 to win, got %q", *data.MerchantName)
	}
}

func TestDecodePromptPayWithoutMarkerIgnored(t *testing.T) {
	data, err := Decode("0002012916A000000677010111")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.MerchantID != nil || data.MerchantName != nil {
		t.Fatalf("unexpected merchant fields: %v %v", data.MerchantID, data.MerchantName)
	}
}

func TestPromptPayID(t *testing.T) {
	cases := map[string]string{
		"a.promptpay.123": "123",
		"promptpay":       "promptpay",
		"promptpay.":      "promptpay.",
	}
	for in, want := range cases {
		if got := promptPayID(in); got != want {
			t.Fatalf("promptPayID(%q): got %q want %q", in, got, want)
		}
	}
}

func TestDecodeMerchantAccountFirstMatch(t *testing.T) {
	data, err := Decode("00020130360014A00000067701010305MID-30205MID-2")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.MerchantID == nil || *data.MerchantID != "MID-3" {
		t.Fatalf("unexpected merchant id: %v", data.MerchantID)
	}
}

func TestDecodeMerchantAccountAtomicLeavesIDUnset(t *testing.T) {
	data, err := Decode("0002013005hello")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.MerchantID != nil {
		t.Fatalf("expected merchant id unset, got %q", *data.MerchantID)
	}
}

func TestDecodeNonNumericAmount(t *testing.T) {
	data, err := Decode("000201540512.5x")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Amount == nil || !math.IsNaN(*data.Amount) {
		t.Fatalf("expected NaN amount, got %v", data.Amount)
	}

	out, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"amount":null`) {
		t.Fatalf("expected null amount in %s", out)
	}
}

func TestDecodeInfiniteAmountIsNaN(t *testing.T) {
	for _, v := range []string{"Inf", "+Inf", "-Inf", "Infinity", "1e999"} {
		raw := fmt.Sprintf("00020154%02d%s", len(v), v)
		data, err := Decode(raw)
		if err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
		if data.Amount == nil || !math.IsNaN(*data.Amount) {
			t.Fatalf("%s: expected NaN amount, got %v", v, data.Amount)
		}
		out, err := json.Marshal(data)
		if err != nil {
			t.Fatalf("%s: marshal: %v", v, err)
		}
		if !strings.Contains(string(out), `"amount":null`) {
			t.Fatalf("%s: expected null amount in %s", v, out)
		}
	}
}

func TestMarshalInfiniteAmountAsNull(t *testing.T) {
	inf := math.Inf(1)
	out, err := json.Marshal(&Data{Version: "01", Amount: &inf})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"amount":null`) {
		t.Fatalf("expected null amount in %s", out)
	}
}

func TestDecodeUnknownTagDescription(t *testing.T) {
	data, err := Decode("4203abc")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.ParsedFields[0].Description != "Unknown field (42)" {
		t.Fatalf("unexpected description: %q", data.ParsedFields[0].Description)
	}
}

func TestParseNested(t *testing.T) {
	if _, ok := ParseNested("62", "0110INV2024001").(Structured); !ok {
		t.Fatalf("expected structured value")
	}
	for _, v := range []string{"", "TH", "100.00", "01085Store1", "0102AB9"} {
		atomic, ok := ParseNested("62", v).(Atomic)
		if !ok {
			t.Fatalf("ParseNested(%q): expected atomic", v)
		}
		if atomic.Value != v {
			t.Fatalf("atomic value changed: %q", atomic.Value)
		}
	}
}

func TestParseNestedTilesValue(t *testing.T) {
	value := "0000" + "0102ab" + "6204wxyz"
	s, ok := ParseNested("80", value).(Structured)
	if !ok {
		t.Fatalf("expected structured value")
	}
	var rebuilt strings.Builder
	for _, sub := range s.SubTags {
		if sub.Length != len(sub.Value) {
			t.Fatalf("sub-tag %s length mismatch", sub.Tag)
		}
		fmt.Fprintf(&rebuilt, "%s%02d%s", sub.Tag, sub.Length, sub.Value)
	}
	if rebuilt.String() != value {
		t.Fatalf("sub-tags do not tile value: %q", rebuilt.String())
	}
	if s.SubTags[1].Description != "Context Specific Data" {
		t.Fatalf("unexpected description: %q", s.SubTags[1].Description)
	}
	if s.SubTags[2].Description != "Sub-tag 62" {
		t.Fatalf("unexpected description: %q", s.SubTags[2].Description)
	}
}
