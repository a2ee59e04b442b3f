package variant

import (
	"encoding/hex"
	"fmt"
)

func hexText(p []byte) []byte {
	return []byte(hex.EncodeToString(p))
}

// nibbles is hexText with each digit replaced by its value 0..15.
func nibbles(p []byte) []byte {
	out := make([]byte, 0, len(p)*2)
	for _, b := range p {
		out = append(out, b>>4, b&0x0f)
	}
	return out
}

func bitText(p []byte) []byte {
	out := make([]byte, 0, len(p)*8)
	for _, b := range p {
		out = fmt.Appendf(out, "%08b", b)
	}
	return out
}

// bits is bitText with each digit replaced by its value 0 or 1.
func bits(p []byte) []byte {
	out := make([]byte, 0, len(p)*8)
	for _, b := range p {
		for shift := 7; shift >= 0; shift-- {
			out = append(out, (b>>shift)&1)
		}
	}
	return out
}

func isLowerHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f')
}

// leading returns the length of the run of bytes at the start of window
// accepted by ok.
func leading(window []byte, ok func(byte) bool) int {
	for i, b := range window {
		if !ok(b) {
			return i
		}
	}
	return len(window)
}

func decodeHexText(window []byte) ([]byte, error) {
	n := leading(window, isLowerHex)
	n -= n % 2
	out := make([]byte, n/2)
	if _, err := hex.Decode(out, window[:n]); err != nil {
		return nil, ErrUndecodable
	}
	return out, nil
}

func decodeNibbles(window []byte) []byte {
	n := leading(window, func(b byte) bool { return b <= 0x0f })
	n -= n % 2
	out := make([]byte, 0, n/2)
	for i := 0; i < n; i += 2 {
		out = append(out, window[i]<<4|window[i+1])
	}
	return out
}

func decodeBitText(window []byte) []byte {
	n := leading(window, func(b byte) bool { return b == '0' || b == '1' })
	return packBits(window[:n-n%8], '0')
}

func decodeBits(window []byte) []byte {
	n := leading(window, func(b byte) bool { return b <= 1 })
	return packBits(window[:n-n%8], 0)
}

// packBits reads groups of eight digits, most significant first. zero is the
// byte value representing a cleared bit.
func packBits(digits []byte, zero byte) []byte {
	out := make([]byte, 0, len(digits)/8)
	for i := 0; i+8 <= len(digits); i += 8 {
		var b byte
		for _, d := range digits[i : i+8] {
			b = b<<1 | (d - zero)
		}
		out = append(out, b)
	}
	return out
}
