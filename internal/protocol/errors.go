package protocol

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoFields        = errors.New("protocol: no valid QR code fields found")
	ErrValidation      = errors.New("protocol: invalid generator input")
	ErrChecksumMissing = errors.New("protocol: payload has no CRC trailer")
	ErrChecksum        = errors.New("protocol: checksum mismatch")
)

// noFieldsReason is the fixed reason reported when nothing could be framed.
const noFieldsReason = "No valid QR code fields found"

// ParseError is returned by Decode when the top level scan frames nothing.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("protocol: failed to parse Thai QR code: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrNoFields
}

// ValidationError carries every violation found in a GeneratorInput.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("protocol: invalid generator input: %s", strings.Join(e.Messages, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ChecksumError reports a CRC trailer that does not match the payload.
type ChecksumError struct {
	Declared string
	Computed string
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("protocol: checksum mismatch: declared %s computed %s", e.Declared, e.Computed)
}

func (e *ChecksumError) Unwrap() error {
	return ErrChecksum
}
