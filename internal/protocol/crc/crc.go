// Package crc computes the CRC-16/CCITT-FALSE checksum carried in the
// payload trailer (tag 63).
package crc

import "fmt"

const (
	initial    uint16 = 0xFFFF
	polynomial uint16 = 0x1021
)

// Sum16 returns the CRC-16/CCITT-FALSE of data. No reflection, no final xor.
func Sum16(data []byte) uint16 {
	reg := initial
	for _, b := range data {
		reg ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if reg&0x8000 != 0 {
				reg = reg<<1 ^ polynomial
			} else {
				reg <<= 1
			}
		}
	}
	return reg
}

// Checksum returns the checksum of data as 4 uppercase hex digits.
func Checksum(data string) string {
	return Format(Sum16([]byte(data)))
}

// Format renders a register value the way it appears on the wire.
func Format(sum uint16) string {
	return fmt.Sprintf("%04X", sum)
}
