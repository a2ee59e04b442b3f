package types

// Result is a candidate flag recovered from one match.
type Result struct {
	// Source is the provenance path of the scanned buffer, empty when the
	// buffer was handed over directly.
	Source string `json:"source,omitempty"`
	// View labels the haystack view the match was found in, e.g. "stream[1::3]".
	View string `json:"view"`
	// Encoding labels the variant that matched, e.g. "base64" or "XOR_42".
	Encoding string `json:"encoding"`
	// Flag is the decoded, printable candidate.
	Flag string `json:"flag"`
	// Offset is where the match starts in the original buffer.
	Offset int `json:"offset"`
	// ViewOffset is where the match starts in the view.
	ViewOffset int `json:"view_offset"`
	// Raw is the undecoded window, kept only on request.
	Raw []byte `json:"raw,omitempty"`
}
