package variant

import (
	"bytes"
	"encoding/base32"
	"encoding/base64"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

const (
	base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"
)

// blockCodec describes one of the padded base-N encodings.
type blockCodec struct {
	alphabet string
	// group is the number of input bytes per full block.
	group int
	// quantum is the number of symbols per full block.
	quantum int
	decode  func(string) ([]byte, error)
}

var (
	b64 = blockCodec{
		alphabet: base64Alphabet,
		group:    3,
		quantum:  4,
		decode:   base64.StdEncoding.DecodeString,
	}
	b32 = blockCodec{
		alphabet: base32Alphabet,
		group:    5,
		quantum:  8,
		decode:   base32.StdEncoding.DecodeString,
	}
)

func base64Pattern(p []byte) []byte {
	return b64.pattern(base64.RawStdEncoding.EncodeToString(p), len(p))
}

func base32Pattern(p []byte) []byte {
	return b32.pattern(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(p), len(p))
}

// pattern drops the last symbol of an unpadded encoding when it only carries
// part of its bits. That symbol also encodes the leading bits of whatever
// byte follows the pattern, so it differs from occurrence to occurrence.
func (c blockCodec) pattern(encoded string, inputLen int) []byte {
	if inputLen%c.group != 0 && len(encoded) > 0 {
		encoded = encoded[:len(encoded)-1]
	}
	return []byte(encoded)
}

func decodeBase64(window []byte) ([]byte, error) { return b64.decodeWindow(window) }
func decodeBase32(window []byte) ([]byte, error) { return b32.decodeWindow(window) }

// decodeWindow decodes the longest re-paddable prefix of window.
func (c blockCodec) decodeWindow(window []byte) ([]byte, error) {
	window = c.symbols(window)

	for n := len(window); n > 0; n-- {
		// A lone symbol past a full block never comes out of the encoder.
		if n%c.quantum == 1 {
			continue
		}
		s := string(window[:n])
		if rem := n % c.quantum; rem != 0 {
			s += strings.Repeat("=", c.quantum-rem)
		}
		out, err := c.decode(s)
		if err == nil && len(out) > 0 {
			return out, nil
		}
	}
	return nil, ErrUndecodable
}

// symbols returns the leading run of window that may belong to an encoded
// string, with ASCII whitespace removed. It stops at the first other byte.
func (c blockCodec) symbols(window []byte) []byte {
	out := make([]byte, 0, len(window))
	for _, b := range window {
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
		case b == '=' || strings.IndexByte(c.alphabet, b) >= 0:
			out = append(out, b)
		default:
			return out
		}
	}
	return out
}

var textEncodings = []Encoding{UTF16, UTF16BE, UTF16LE, UTF32, UTF32BE, UTF32LE}

// textCodec returns the codec for a UTF encoding. The unmarked forms write a
// little-endian byte order mark and honour one when decoding.
func textCodec(enc Encoding) (encoding.Encoding, int) {
	switch enc {
	case UTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), 2
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), 2
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), 2
	case UTF32:
		return utf32.UTF32(utf32.LittleEndian, utf32.UseBOM), 4
	case UTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), 4
	default:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM), 4
	}
}

func encodeText(enc Encoding, p []byte) ([]byte, error) {
	codec, _ := textCodec(enc)
	return codec.NewEncoder().Bytes(p)
}

// decodeText strictly decodes the longest decodable prefix of window and
// returns it as UTF-8. Lengths that split a code unit are skipped since they
// can never decode.
func decodeText(enc Encoding, window []byte) ([]byte, error) {
	codec, unit := textCodec(enc)
	dec := codec.NewDecoder()

	for n := len(window) - len(window)%unit; n > 0; n -= unit {
		out, err := dec.Bytes(window[:n])
		if err != nil || len(out) == 0 || !reencodes(enc, out, window[:n]) {
			continue
		}
		return out, nil
	}
	return nil, ErrUndecodable
}

// reencodes reports whether out encodes back to exactly window. The decoders
// replace unpaired surrogates and out of range code points with U+FFFD rather
// than failing, so a lossy decode shows up as a mismatch here.
func reencodes(enc Encoding, out, window []byte) bool {
	codec, unit := textCodec(enc)
	re, err := codec.NewEncoder().Bytes(out)
	if err != nil {
		return false
	}
	// the marked forms decode an unmarked window as little endian
	if (enc == UTF16 || enc == UTF32) && len(re) >= unit && !bytes.HasPrefix(window, re[:unit]) {
		re = re[unit:]
	}
	return bytes.Equal(re, window)
}
