package codec

import (
	"strconv"
	"strings"
)

// Mode selects how tolerant coercion is of input it does not recognize.
type Mode int

const (
	// Lenient preserves unknown keys on models that declare Extras and drops
	// them elsewhere.
	Lenient Mode = iota
	// Strict rejects unknown keys with CodeUnknownKey.
	Strict
)

func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	default:
		return "lenient"
	}
}

// State is the traversal state threaded through Coerce and Dump. It is a
// value type; Field and Index return extended copies and never share the
// underlying path with the receiver.
type State struct {
	path []string
	mode Mode
}

// NewState returns a root state for the given mode.
func NewState(mode Mode) State { return State{mode: mode} }

// Mode reports the strictness mode.
func (s State) Mode() Mode { return s.mode }

// Strict reports whether unknown keys must be rejected.
func (s State) Strict() bool { return s.mode == Strict }

// Field descends into an object key.
func (s State) Field(name string) State { return s.push(name) }

// Index descends into a list element.
func (s State) Index(i int) State { return s.push(strconv.Itoa(i)) }

func (s State) push(seg string) State {
	next := make([]string, len(s.path)+1)
	copy(next, s.path)
	next[len(s.path)] = seg
	return State{path: next, mode: s.mode}
}

// Path renders the dotted path, e.g. "lines.2.price_ht". The root is "".
func (s State) Path() string { return strings.Join(s.path, ".") }

// Depth is the number of path segments.
func (s State) Depth() int { return len(s.path) }
