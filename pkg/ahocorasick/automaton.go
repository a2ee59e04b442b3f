// Package ahocorasick implements a byte-oriented Aho-Corasick automaton that
// reports every occurrence of every pattern, with its end offset, in a single
// pass over a haystack.
package ahocorasick

import (
	"errors"
	"iter"
)

// ErrEmptyPattern is returned when adding a zero-length pattern, which would
// match at every position.
var ErrEmptyPattern = errors.New("empty pattern")

const root = 0

type node struct {
	next map[byte]int32
	fail int32
	// out holds indices of the patterns ending here, own patterns first,
	// then those inherited through the failure link.
	out []int32
}

// Match is one occurrence of a pattern.
type Match struct {
	// End is the offset of the last byte of the occurrence.
	End int
	// Pattern is the index returned by Builder.Add.
	Pattern int
}

// Builder accumulates patterns into a trie. It is not safe for concurrent use.
type Builder struct {
	nodes    []node
	patterns [][]byte
}

// NewBuilder returns a Builder holding only the root node.
func NewBuilder() *Builder {
	return &Builder{nodes: []node{{next: make(map[byte]int32)}}}
}

// Add inserts pattern and returns its index. Identical patterns are kept as
// distinct entries and both report on every occurrence.
func (b *Builder) Add(pattern []byte) (int, error) {
	if len(pattern) == 0 {
		return -1, ErrEmptyPattern
	}

	cur := int32(root)
	for _, c := range pattern {
		nxt, ok := b.nodes[cur].next[c]
		if !ok {
			nxt = int32(len(b.nodes))
			b.nodes = append(b.nodes, node{next: make(map[byte]int32)})
			b.nodes[cur].next[c] = nxt
		}
		cur = nxt
	}

	idx := len(b.patterns)
	b.patterns = append(b.patterns, append([]byte(nil), pattern...))
	b.nodes[cur].out = append(b.nodes[cur].out, int32(idx))
	return idx, nil
}

// Make computes failure links breadth-first and returns the finished
// automaton. The Builder must not be used afterwards.
func (b *Builder) Make() *Automaton {
	nodes := b.nodes
	b.nodes = nil

	queue := make([]int32, 0, len(nodes))
	for _, child := range nodes[root].next {
		nodes[child].fail = root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for c, child := range nodes[n].next {
			f := nodes[n].fail
			for {
				if nxt, ok := nodes[f].next[c]; ok {
					nodes[child].fail = nxt
					break
				}
				if f == root {
					nodes[child].fail = root
					break
				}
				f = nodes[f].fail
			}

			// fail is shallower than child, so its outputs are already complete
			if inherited := nodes[nodes[child].fail].out; len(inherited) > 0 {
				nodes[child].out = append(nodes[child].out, inherited...)
			}
			queue = append(queue, child)
		}
	}

	a := &Automaton{nodes: nodes, patterns: b.patterns}
	for c, nxt := range nodes[root].next {
		a.rootNext[c] = nxt
	}
	return a
}

// Automaton is a finished, immutable matcher. It is safe for concurrent scans.
type Automaton struct {
	nodes    []node
	patterns [][]byte
	// rootNext is a dense copy of the root transitions, where scans spend
	// most of their time; zero means no edge.
	rootNext [256]int32
}

// New builds an automaton over patterns. Pattern i reports as index i.
func New(patterns [][]byte) (*Automaton, error) {
	b := NewBuilder()
	for _, p := range patterns {
		if _, err := b.Add(p); err != nil {
			return nil, err
		}
	}
	return b.Make(), nil
}

// Len returns the number of patterns.
func (a *Automaton) Len() int {
	return len(a.patterns)
}

// Pattern returns the bytes of pattern i.
func (a *Automaton) Pattern(i int) []byte {
	return a.patterns[i]
}

// Each calls fn for every occurrence in haystack, ordered by end offset and,
// at equal offsets, longest match first. Scanning stops when fn returns false.
func (a *Automaton) Each(haystack []byte, fn func(Match) bool) {
	state := int32(root)
	for i, c := range haystack {
		state = a.step(state, c)
		for _, p := range a.nodes[state].out {
			if !fn(Match{End: i, Pattern: int(p)}) {
				return
			}
		}
	}
}

// Scan returns the occurrences in haystack as a lazy sequence.
func (a *Automaton) Scan(haystack []byte) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		a.Each(haystack, yield)
	}
}

// Contains reports whether any pattern occurs in haystack.
func (a *Automaton) Contains(haystack []byte) bool {
	found := false
	a.Each(haystack, func(Match) bool {
		found = true
		return false
	})
	return found
}

func (a *Automaton) step(state int32, c byte) int32 {
	for state != root {
		if nxt, ok := a.nodes[state].next[c]; ok {
			return nxt
		}
		state = a.nodes[state].fail
	}
	return a.rootNext[c]
}
