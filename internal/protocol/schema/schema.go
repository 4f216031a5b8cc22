// Package schema holds the static tag dictionary for Thai QR payloads:
// top level tag descriptions and parent aware sub-tag descriptions.
package schema

import "fmt"

// Top level tag codes.
const (
	TagPayloadFormat     = "00"
	TagInitiation        = "01"
	TagMerchantVisa      = "02"
	TagMerchantMaster    = "03"
	TagMerchantEMV       = "04"
	TagMerchantDiscover  = "05"
	TagMerchantUnionPay  = "07"
	TagPromptPay         = "15"
	TagPromptPayCredit   = "29"
	TagMerchantAccount   = "30"
	TagCategoryCode      = "52"
	TagCurrency          = "53"
	TagAmount            = "54"
	TagCountry           = "58"
	TagMerchantName      = "59"
	TagMerchantCity      = "60"
	TagPostalCode        = "61"
	TagAdditionalData    = "62"
	TagCRC               = "63"
	TagLanguageTemplate  = "64"
	TagUnreservedPrimary = "80"
)

// Sub-tag codes used by the generator.
const (
	SubGUID       = "00"
	SubBillerID   = "02"
	SubBillNumber = "01"
	SubReference2 = "02"
)

const (
	merchantAccountInfo = "Merchant Account Information"
	unreservedTemplates = "Unreserved Templates"
	promptPayAccount    = "Merchant Account Information (PromptPay)"
)

var fieldDescriptions = map[string]string{
	"00": "Payload Format Indicator",
	"01": "Point of Initiation Method",
	"02": "Merchant Account Information (Visa)",
	"03": "Merchant Account Information (Mastercard)",
	"04": "Merchant Account Information (EMV)",
	"05": "Merchant Account Information (Discover)",
	"06": "Merchant Account Information (JCB)",
	"07": "Merchant Account Information (Union Pay)",
	"08": "Merchant Account Information (American Express)",
	"09": merchantAccountInfo,
	"10": merchantAccountInfo,
	"11": merchantAccountInfo,
	"12": merchantAccountInfo,
	"13": merchantAccountInfo,
	"14": merchantAccountInfo,
	"15": promptPayAccount,
	"29": promptPayAccount,
	"30": merchantAccountInfo,
	"52": "Merchant Category Code",
	"53": "Transaction Currency",
	"54": "Transaction Amount",
	"55": "Tip or Convenience Indicator",
	"56": "Value of Convenience Fee Fixed",
	"57": "Value of Convenience Fee Percentage",
	"58": "Country Code",
	"59": "Merchant Name",
	"60": "Merchant City",
	"61": "Postal Code",
	"62": "Additional Data Field Template",
	"63": "CRC",
	"64": "Merchant Information - Language Template",
	"65": "RFU for EMVCo",
	"80": unreservedTemplates,
	"81": unreservedTemplates,
	"82": unreservedTemplates,
	"83": unreservedTemplates,
	"84": unreservedTemplates,
	"85": unreservedTemplates,
	"86": unreservedTemplates,
	"87": unreservedTemplates,
	"88": unreservedTemplates,
	"89": unreservedTemplates,
	"90": unreservedTemplates,
	"91": unreservedTemplates,
	"92": unreservedTemplates,
	"93": unreservedTemplates,
	"94": unreservedTemplates,
	"95": unreservedTemplates,
	"96": unreservedTemplates,
	"97": unreservedTemplates,
	"98": unreservedTemplates,
	"99": unreservedTemplates,
}

var promptPaySubTags = map[string]string{
	"00": "Globally Unique Identifier",
	"01": "Payment Network Specific",
	"02": "Mobile Number",
	"03": "National ID",
	"04": "eWallet ID",
}

var subTagDescriptions = map[string]map[string]string{
	// Visa
	"02": {
		"00": "Globally Unique Identifier",
		"01": "Payment Network Specific",
		"02": "Merchant Identifier",
		"03": "Merchant Category Code",
		"04": "Transaction Currency",
		"05": "Transaction Amount",
		"06": "Country Code",
		"07": "Merchant Name",
		"08": "Merchant City",
	},
	// Mastercard
	"03": {
		"00": "Globally Unique Identifier",
		"01": "Payment Network Specific",
		"02": "Merchant Identifier",
		"03": "Merchant Category Code",
		"04": "Transaction Currency",
		"05": "Transaction Amount",
	},
	// EMV
	"04": {
		"00": "Globally Unique Identifier",
		"01": "Payment Network Specific",
		"02": "Merchant Identifier",
		"03": "Merchant Category Code",
	},
	"15": promptPaySubTags,
	"29": promptPaySubTags,
	"30": {
		"00": "Globally Unique Identifier",
		"01": "Payment Network Specific",
		"02": "Merchant Identifier",
		"03": "Merchant Category Code",
		"04": "Transaction Type",
		"05": "Additional Data",
		"06": "Terminal ID",
		"07": "Store ID",
		"08": "Loyalty Program",
		"09": "Merchant Category",
	},
	"62": {
		"01": "Bill Number",
		"02": "Mobile Number",
		"03": "Store Label",
		"04": "Loyalty Number",
		"05": "Reference Label",
		"06": "Customer Label",
		"07": "Terminal Label",
		"08": "Purpose of Transaction",
		"09": "Additional Consumer Data Request",
		"10": "Merchant Tax ID",
		"11": "Merchant Channel",
	},
	"64": {
		"00": "Language Preference",
		"01": "Merchant Name - Alternate Language",
		"02": "Merchant City - Alternate Language",
	},
	"80": {
		"00": "Globally Unique Identifier",
		"01": "Context Specific Data",
		"02": "Context Specific Data",
		"03": "Context Specific Data",
	},
	"81": {
		"00": "Globally Unique Identifier",
		"01": "Context Specific Data",
	},
}

// genericSubTags is consulted when the parent has no table or the parent
// table has no entry for the sub-tag.
var genericSubTags = map[string]string{
	"00": "Globally Unique Identifier",
	"01": "Payment Network Specific / Context Data",
	"02": "Merchant/Account Identifier",
	"03": "Category/Classification Code",
	"04": "Transaction Type/Currency",
	"05": "Amount/Reference Data",
	"06": "Country/Terminal Code",
	"07": "Name/Location Data",
	"08": "City/Additional Info",
	"09": "Additional Consumer Data",
	"10": "Reserved Data Element",
	"11": "Reserved Data Element",
	"12": "Reserved Data Element",
	"13": "Reserved Data Element",
	"14": "Reserved Data Element",
	"15": "Reserved Data Element",
	"16": "Reserved Data Element",
	"17": "Reserved Data Element",
	"18": "Reserved Data Element",
	"19": "Reserved Data Element",
	"20": "Reserved Data Element",
}

// Describe returns the description of a top level tag.
func Describe(tag string) string {
	if d, ok := fieldDescriptions[tag]; ok {
		return d
	}
	return fmt.Sprintf("Unknown field (%s)", tag)
}

// DescribeSub returns the description of sub under parent.
func DescribeSub(parent, sub string) string {
	if table, ok := subTagDescriptions[parent]; ok {
		if d, ok := table[sub]; ok {
			return d
		}
	}
	if d, ok := genericSubTags[sub]; ok {
		return d
	}
	return fmt.Sprintf("Sub-tag %s", sub)
}

// Known reports whether tag has a dictionary entry.
func Known(tag string) bool {
	_, ok := fieldDescriptions[tag]
	return ok
}
