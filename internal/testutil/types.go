// Package testutil defines support code for unit tests.
package testutil

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/creachadair/jvalue"
	"github.com/google/go-cmp/cmp"
)

// ValueComparer is a cmp option that compares values with jvalue.Equal.
var ValueComparer = cmp.Comparer(func(a, b jvalue.Value) bool { return jvalue.Equal(a, b) })

// MustParse parses src or fails t.
func MustParse(t testing.TB, src string) jvalue.Value {
	t.Helper()
	v, err := jvalue.Parse(src)
	if err != nil {
		t.Fatalf("Parse %q: %v", src, err)
	}
	return v
}

// MustMarshal renders v as compact JSON or fails t.
func MustMarshal(t testing.TB, v jvalue.Value) string {
	t.Helper()
	s, err := jvalue.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return s
}

// A Generator constructs pseudo-random value trees using only the
// constructive API of the jvalue package.
type Generator struct {
	rng      *rand.Rand
	MaxDepth int // maximum nesting of containers
	MaxLen   int // maximum number of elements in a container
}

// NewGenerator returns a Generator with a fixed seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x5eed)), MaxDepth: 4, MaxLen: 5}
}

// Value returns a new random value.
func (g *Generator) Value() jvalue.Value { return g.value(0) }

func (g *Generator) value(depth int) jvalue.Value {
	n := 7
	if depth >= g.MaxDepth {
		n = 5 // no containers
	}
	switch g.rng.IntN(n) {
	case 0:
		return jvalue.Null{}
	case 1:
		return jvalue.Bool(g.rng.IntN(2) == 1)
	case 2:
		return jvalue.Int(g.rng.Int64() - g.rng.Int64())
	case 3:
		return jvalue.Float(g.rng.NormFloat64() * 1e6)
	case 4:
		return jvalue.String(g.text())
	case 5:
		a := jvalue.NewArray()
		for range g.rng.IntN(g.MaxLen + 1) {
			a.Put(g.value(depth + 1))
		}
		return a
	default:
		o := jvalue.NewObject()
		for range g.rng.IntN(g.MaxLen + 1) {
			o.Put(g.text(), g.value(depth+1))
		}
		return o
	}
}

// alphabet includes characters that require escaping, and a byte that is not
// valid UTF-8. Each element is one UTF-8 sequence or one invalid byte.
var alphabet = strings.Split("abcXYZ019 _-\"\\/'\b\f\n\r\t\x00\x1f\xffé☃{}[],:", "")

func (g *Generator) text() string {
	var sb strings.Builder
	for range g.rng.IntN(8) {
		sb.WriteString(alphabet[g.rng.IntN(len(alphabet))])
	}
	return sb.String()
}
