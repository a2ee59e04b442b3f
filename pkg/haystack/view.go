// Package haystack re-presents a buffer to the matcher: as is, decimated at
// every stride in a range, and reversed.
package haystack

import (
	"fmt"
	"iter"
)

const (
	// MaxStepFull is the exclusive upper bound on stride steps in a full run.
	MaxStepFull = 33
	// MaxStepFast is the exclusive upper bound on stride steps in fast mode.
	MaxStepFast = 8
)

// View is one transformation of the original buffer.
type View struct {
	Label string
	// Start and Step describe a decimation; Step is 1 for the plain stream
	// and for the reversed stream.
	Start int
	Step  int
	// Reversed is set on the reversed stream.
	Reversed bool
	Data     []byte
	// size is the length of the original buffer.
	size int
}

// Origin maps an offset in the view to the offset in the original buffer.
func (v View) Origin(i int) int {
	if v.Reversed {
		return v.size - 1 - i
	}
	return v.Start + i*v.Step
}

// MaxStep returns the exclusive stride bound for a full or fast run.
func MaxStep(fast bool) int {
	if fast {
		return MaxStepFast
	}
	return MaxStepFull
}

// Generate yields the views of buf for a full or fast run.
func Generate(buf []byte, fast bool) iter.Seq[View] {
	return Views(buf, MaxStep(fast))
}

// Views yields, in order, the stream itself, every decimation
// buf[start::step] for step in [2, maxStep) and start in [0, step), and the
// reversed stream. Each view is built only when requested; the plain stream
// aliases buf, the others own their bytes.
func Views(buf []byte, maxStep int) iter.Seq[View] {
	return func(yield func(View) bool) {
		if !yield(View{Label: "stream", Step: 1, Data: buf, size: len(buf)}) {
			return
		}

		for step := 2; step < maxStep; step++ {
			for start := 0; start < step; start++ {
				v := View{
					Label: fmt.Sprintf("stream[%d::%d]", start, step),
					Start: start,
					Step:  step,
					Data:  decimate(buf, start, step),
					size:  len(buf),
				}
				if !yield(v) {
					return
				}
			}
		}

		yield(View{Label: "reversed stream", Step: 1, Reversed: true, Data: reverse(buf), size: len(buf)})
	}
}

// Count returns how many views Views produces for maxStep, regardless of the
// buffer.
func Count(maxStep int) int {
	n := 2
	for step := 2; step < maxStep; step++ {
		n += step
	}
	return n
}

func decimate(buf []byte, start, step int) []byte {
	if start >= len(buf) {
		return nil
	}
	out := make([]byte, 0, (len(buf)-start+step-1)/step)
	for i := start; i < len(buf); i += step {
		out = append(out, buf[i])
	}
	return out
}

func reverse(buf []byte) []byte {
	out := make([]byte, len(buf))
	for i, b := range buf {
		out[len(buf)-1-i] = b
	}
	return out
}
