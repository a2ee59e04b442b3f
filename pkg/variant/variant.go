// Package variant derives the encoded forms of a search pattern.
//
// Each Variant pairs the exact bytes to look for in a haystack with the
// encoding that produced them. Decoding is the inverse transform, tolerant of
// windows that run past the end of the hidden data: a match only fixes where
// the encoded pattern ends, not how much of what follows belongs to the flag.
package variant

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrUndecodable is returned when a window cannot be reversed under a
// variant's encoding, including windows that trim down to nothing.
var ErrUndecodable = errors.New("window not decodable")

// Encoding identifies the transform a Variant was built with.
type Encoding int

const (
	Identity Encoding = iota
	Base64
	Base32
	UTF16
	UTF16BE
	UTF16LE
	UTF32
	UTF32BE
	UTF32LE
	XOR
	Hex
	RawHex
	Binary
	ROT13
	ROT47
	RawBinary
)

var encodingNames = map[Encoding]string{
	Identity:  "ASCII",
	Base64:    "base64",
	Base32:    "base32",
	UTF16:     "utf-16",
	UTF16BE:   "utf-16-be",
	UTF16LE:   "utf-16-le",
	UTF32:     "utf-32",
	UTF32BE:   "utf-32-be",
	UTF32LE:   "utf-32-le",
	XOR:       "XOR",
	Hex:       "hex",
	RawHex:    "raw_hex",
	Binary:    "binary",
	ROT13:     "rot13",
	ROT47:     "rot47",
	RawBinary: "raw_binary",
}

// String returns the encoding family name.
func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return "unknown"
}

// Variant is one encoded form of the pattern.
type Variant struct {
	// Pattern is the exact byte sequence to search for.
	Pattern []byte
	// Encoding selects the decoder.
	Encoding Encoding
	// Key is the XOR key; zero for every other encoding.
	Key byte
}

// Label identifies the variant in reports, e.g. "base64" or "XOR_42".
func (v Variant) Label() string {
	if v.Encoding == XOR {
		return fmt.Sprintf("XOR_%d", v.Key)
	}
	return v.Encoding.String()
}

// Decode maps a raw window starting at a match back to plaintext bytes.
func (v Variant) Decode(window []byte) ([]byte, error) {
	var out []byte
	var err error

	switch v.Encoding {
	case Identity:
		out = window
	case Base64:
		out, err = decodeBase64(window)
	case Base32:
		out, err = decodeBase32(window)
	case UTF16, UTF16BE, UTF16LE, UTF32, UTF32BE, UTF32LE:
		out, err = decodeText(v.Encoding, window)
	case XOR:
		out = XORBytes(window, v.Key)
	case Hex:
		out, err = decodeHexText(window)
	case RawHex:
		out = decodeNibbles(window)
	case Binary:
		out = decodeBitText(window)
	case RawBinary:
		out = decodeBits(window)
	case ROT13:
		out = Rot13(window)
	case ROT47:
		out = Rot47(window)
	default:
		return nil, fmt.Errorf("unsupported encoding %d", v.Encoding)
	}

	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrUndecodable
	}
	return out, nil
}

// Build returns every non-empty variant of pattern. The order is stable:
// identity, base64, base32, the UTF codecs, XOR keys 1..255, hex, raw hex,
// binary, rot13, rot47, raw binary.
func Build(pattern []byte) []Variant {
	if len(pattern) == 0 {
		return nil
	}

	var variants []Variant
	add := func(enc Encoding, key byte, p []byte) {
		// Degenerate encodings are dropped rather than matched everywhere.
		if len(p) == 0 {
			return
		}
		variants = append(variants, Variant{Pattern: p, Encoding: enc, Key: key})
	}

	add(Identity, 0, append([]byte(nil), pattern...))
	add(Base64, 0, base64Pattern(pattern))
	add(Base32, 0, base32Pattern(pattern))

	if utf8.Valid(pattern) {
		for _, enc := range textEncodings {
			p, err := encodeText(enc, pattern)
			if err != nil {
				continue
			}
			add(enc, 0, p)
		}
	}

	for key := 1; key < 256; key++ {
		add(XOR, byte(key), XORBytes(pattern, byte(key)))
	}

	add(Hex, 0, hexText(pattern))
	add(RawHex, 0, nibbles(pattern))
	add(Binary, 0, bitText(pattern))
	add(ROT13, 0, Rot13(pattern))
	add(ROT47, 0, Rot47(pattern))
	add(RawBinary, 0, bits(pattern))

	return variants
}

// Labels lists the labels of every variant Build can produce, in build order.
func Labels() []string {
	var labels []string
	for _, v := range Build([]byte("x")) {
		labels = append(labels, v.Label())
	}
	return labels
}
