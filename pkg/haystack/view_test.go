package haystack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(buf []byte, maxStep int) []string {
	var out []string
	for v := range Views(buf, maxStep) {
		out = append(out, v.Label)
	}
	return out
}

func TestViews_Order(t *testing.T) {
	assert.Equal(t, []string{
		"stream",
		"stream[0::2]", "stream[1::2]",
		"stream[0::3]", "stream[1::3]", "stream[2::3]",
		"reversed stream",
	}, labels([]byte("abcdef"), 4))
}

func TestViews_Counts(t *testing.T) {
	buf := []byte("fake haystack")

	assert.Len(t, labels(buf, MaxStepFull), Count(MaxStepFull))
	assert.Len(t, labels(buf, MaxStepFast), Count(MaxStepFast))
	assert.Equal(t, 529, Count(MaxStepFull))
	assert.Equal(t, 29, Count(MaxStepFast))
	assert.Equal(t, 2, Count(2))
}

func TestViews_Content(t *testing.T) {
	buf := []byte("0123456789")
	got := map[string]string{}
	for v := range Views(buf, 4) {
		got[v.Label] = string(v.Data)
	}

	assert.Equal(t, "0123456789", got["stream"])
	assert.Equal(t, "02468", got["stream[0::2]"])
	assert.Equal(t, "13579", got["stream[1::2]"])
	assert.Equal(t, "147", got["stream[1::3]"])
	assert.Equal(t, "9876543210", got["reversed stream"])
}

func TestViews_ShortBuffer(t *testing.T) {
	got := map[string][]byte{}
	for v := range Views([]byte("ab"), 4) {
		got[v.Label] = v.Data
	}

	assert.Empty(t, got["stream[2::3]"])
	assert.Equal(t, []byte("b"), got["stream[1::2]"])
}

func TestViews_DoesNotMutateBuffer(t *testing.T) {
	buf := []byte("abcdef")
	for v := range Views(buf, MaxStepFast) {
		if v.Reversed {
			v.Data[0] = 'X'
		}
	}
	assert.Equal(t, []byte("abcdef"), buf)
}

func TestViews_StopEarly(t *testing.T) {
	n := 0
	for range Generate([]byte("abc"), false) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestView_Origin(t *testing.T) {
	buf := []byte("0123456789")
	for v := range Views(buf, 5) {
		for i, b := range v.Data {
			require.Equal(t, buf[v.Origin(i)], b, "%s at %d", v.Label, i)
		}
	}
}

func TestMaxStep(t *testing.T) {
	assert.Equal(t, MaxStepFast, MaxStep(true))
	assert.Equal(t, MaxStepFull, MaxStep(false))
}
