package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostprocess(t *testing.T) {
	tests := []struct {
		name    string
		decoded []byte
		closing string
		want    string
	}{
		{"closing cut", []byte("FLAG{abc}def"), "}", "FLAG{abc}"},
		{"first closing wins", []byte("FLAG{a}b}"), "}", "FLAG{a}"},
		{"stops at control byte", []byte("FLAG{ab\ncd}"), "}", "FLAG{ab"},
		{"stops at high byte", []byte("FLAG{\xc3\xa9}"), "}", "FLAG{"},
		{"closing after unprintable ignored", []byte("FLAG\x00}"), "}", "FLAG"},
		{"no closing", []byte("FLAG{abc"), "}", "FLAG{abc"},
		{"closing disabled", []byte("FLAG{a}b"), "", "FLAG{a}b"},
		{"multi byte closing", []byte("CTF[[x]]y"), "]]", "CTF[[x]]"},
		{"space and tilde are printable", []byte(" ~\x7f"), "", " ~"},
		{"empty", nil, "}", ""},
		{"leading unprintable", []byte("\x01FLAG"), "}", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Postprocess(tt.decoded, tt.closing))
		})
	}
}
