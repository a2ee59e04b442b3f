package variant

// XORBytes returns data with every byte XORed with key.
func XORBytes(data []byte, key byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key
	}
	return out
}

// Rot13 rotates ASCII letters by 13 places, preserving case. Other bytes are
// copied unchanged.
func Rot13(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		switch {
		case b >= 'a' && b <= 'z':
			out[i] = 'a' + (b-'a'+13)%26
		case b >= 'A' && b <= 'Z':
			out[i] = 'A' + (b-'A'+13)%26
		default:
			out[i] = b
		}
	}
	return out
}

// Rot47 rotates the printable range '!'..'~' by 47 places.
func Rot47(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		if b >= '!' && b <= '~' {
			out[i] = '!' + (b-'!'+47)%94
		} else {
			out[i] = b
		}
	}
	return out
}
