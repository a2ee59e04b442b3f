package search

import "bytes"

// Postprocess keeps the longest leading run of printable ASCII (32..126) of
// decoded and, when closing occurs in it, cuts just after its first
// occurrence.
func Postprocess(decoded []byte, closing string) string {
	n := 0
	for n < len(decoded) && decoded[n] >= 32 && decoded[n] <= 126 {
		n++
	}
	printable := decoded[:n]

	if closing != "" {
		if i := bytes.Index(printable, []byte(closing)); i >= 0 {
			printable = printable[:i+len(closing)]
		}
	}
	return string(printable)
}
