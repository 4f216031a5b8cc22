// Package protocol owns the Thai QR payload contract.
//
// Ownership boundary:
// - decode: raw payload -> Data with described fields and nested templates
// - encode: GeneratorInput -> payload string with CRC trailer
// - validation and checksum verification entry points
//
// Framing lives in protocol/tlv, the checksum in protocol/crc and the tag
// dictionary in protocol/schema. Nothing here performs I/O.
package protocol
