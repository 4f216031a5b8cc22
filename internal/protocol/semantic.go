package protocol

import (
	"math"
	"strconv"
	"strings"

	"github.com/danmuck/thaiqr/internal/protocol/schema"
)

const (
	promptPayMarker = "promptpay"
	promptPayLabel  = "PromptPay"
)

// foldRule maps a set of tags onto Data. Rules run in declaration order for
// every field, and fields arrive in scan order, so a later field carrying
// an aliased tag overwrites an earlier one.
type foldRule struct {
	tags  []string
	apply func(d *Data, f Field)
}

var foldRules = []foldRule{
	{tags: []string{schema.TagPayloadFormat}, apply: func(d *Data, f Field) {
		d.Version = f.Value
	}},
	{tags: []string{schema.TagInitiation}, apply: func(d *Data, f Field) {
		d.Type = f.Value
	}},
	{tags: []string{schema.TagPromptPay, schema.TagPromptPayCredit}, apply: foldPromptPay},
	{tags: []string{schema.TagMerchantAccount}, apply: foldMerchantAccount},
	{tags: []string{schema.TagAmount}, apply: func(d *Data, f Field) {
		d.Amount = ptr(parseAmount(f.Value))
	}},
	{tags: []string{schema.TagCurrency}, apply: func(d *Data, f Field) {
		d.Currency = ptr(f.Value)
	}},
	{tags: []string{schema.TagMerchantName}, apply: func(d *Data, f Field) {
		d.MerchantName = ptr(f.Value)
	}},
	{tags: []string{schema.TagMerchantDiscover, schema.TagMerchantUnionPay}, apply: func(d *Data, f Field) {
		d.Reference = ptr(f.Value)
	}},
	{tags: []string{schema.TagCRC}, apply: func(d *Data, f Field) {
		d.Checksum = ptr(f.Value)
	}},
}

func (r foldRule) matches(tag string) bool {
	for _, t := range r.tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (d *Data) fold(f Field) {
	for _, rule := range foldRules {
		if rule.matches(f.Tag) {
			rule.apply(d, f)
		}
	}
}

func foldPromptPay(d *Data, f Field) {
	if !strings.Contains(f.Value, promptPayMarker) {
		return
	}
	d.MerchantID = ptr(promptPayID(f.Value))
	d.MerchantName = ptr(promptPayLabel)
}

// promptPayID is the text after the last '.', or the whole value when
// there is no separator or nothing follows it.
func promptPayID(value string) string {
	i := strings.LastIndexByte(value, '.')
	if i < 0 || i == len(value)-1 {
		return value
	}
	return value[i+1:]
}

func foldMerchantAccount(d *Data, f Field) {
	for _, sub := range f.SubTags {
		if sub.Tag == "02" || sub.Tag == "03" {
			d.MerchantID = ptr(sub.Value)
			return
		}
	}
}

// parseAmount yields NaN for anything that is not a finite number,
// including the Inf and Infinity spellings ParseFloat accepts.
func parseAmount(v string) float64 {
	amount, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsInf(amount, 0) {
		return math.NaN()
	}
	return amount
}

func ptr[T any](v T) *T {
	return &v
}
