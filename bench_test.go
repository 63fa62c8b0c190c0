package jvalue_test

import (
	"encoding/json"
	"testing"

	"github.com/creachadair/jvalue"
	"github.com/creachadair/jvalue/internal/testutil"
)

func BenchmarkParse(b *testing.B) {
	g := testutil.NewGenerator(1)
	g.MaxDepth, g.MaxLen = 6, 8
	arr := jvalue.NewArray()
	for range 50 {
		arr.Put(g.Value())
	}
	input := testutil.MustMarshal(b, arr)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Unmarshal", func(b *testing.B) {
		for b.Loop() {
			var v any
			if err := json.Unmarshal([]byte(input), &v); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Parse", func(b *testing.B) {
		for b.Loop() {
			if _, err := jvalue.Parse(input); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})

	b.Run("Marshal", func(b *testing.B) {
		for b.Loop() {
			if _, err := jvalue.Marshal(arr); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}
