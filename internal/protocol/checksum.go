package protocol

import (
	"strings"

	"github.com/danmuck/thaiqr/internal/protocol/crc"
)

// VerifyChecksum checks that raw ends in a CRC object whose value matches
// the checksum of everything before that value. Hex digits are compared
// case-insensitively.
func VerifyChecksum(raw string) error {
	n := len(raw)
	if n < len(crcHeader)+4 || raw[n-8:n-4] != crcHeader {
		return ErrChecksumMissing
	}
	declared := strings.ToUpper(raw[n-4:])
	computed := crc.Checksum(raw[:n-4])
	if declared != computed {
		return &ChecksumError{Declared: declared, Computed: computed}
	}
	return nil
}
