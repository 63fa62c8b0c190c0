// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jvalue_test

import (
	"errors"
	"math"
	"testing"

	"github.com/creachadair/jvalue"
	"github.com/creachadair/jvalue/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"a\"b\nc", `"a\"b\nc"`},
		{`back\slash`, `"back\\slash"`},
		{"</tag>", `"<\/tag>"`},
		{"\b\f\n\r\t", `"\b\f\n\r\t"`},
		{"\x00\x01\x1f", `"\u0000\u0001\u001f"`},
		{"é☃😀", `"é☃😀"`},
		{"a\xffb", "\"a\xffb\""},
		{" ", "\" \""},
	}
	for _, tc := range tests {
		if got := jvalue.Quote(tc.input); got != tc.want {
			t.Errorf("Quote(%q): got %#q, want %#q", tc.input, got, tc.want)
		}
	}
	if got := jvalue.Quote("a\"b\nc"); len(got) != 9 {
		t.Errorf("Quote: got %d characters, want 9", len(got))
	}
}

func TestNumberToString(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{2.50, "2.5"},
		{2.0, "2"},
		{0, "0"},
		{math.Copysign(0, -1), "-0"},
		{0.1, "0.1"},
		{-3.25, "-3.25"},
		{123456789.0, "123456789"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{1.5e-10, "1.5e-10"},
		{0.000001, "0.000001"},
	}
	for _, tc := range tests {
		got, err := jvalue.NumberToString(tc.input)
		if err != nil {
			t.Errorf("NumberToString(%v): unexpected error: %v", tc.input, err)
		} else if got != tc.want {
			t.Errorf("NumberToString(%v): got %q, want %q", tc.input, got, tc.want)
		}
	}

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got, err := jvalue.NumberToString(bad); !errors.Is(err, jvalue.ErrNonFinite) {
			t.Errorf("NumberToString(%v): got %q, %v; want %v", bad, got, err, jvalue.ErrNonFinite)
		}
	}
}

func TestMarshalNonFinite(t *testing.T) {
	a := jvalue.NewArray(jvalue.Int(1), jvalue.Float(math.NaN()))
	if _, err := jvalue.Marshal(a); !errors.Is(err, jvalue.ErrNonFinite) {
		t.Errorf("Marshal: got %v, want %v", err, jvalue.ErrNonFinite)
	}
	if s := a.String(); s != "" {
		t.Errorf("String: got %q, want empty", s)
	}
	if _, err := a.Join(","); !errors.Is(err, jvalue.ErrNonFinite) {
		t.Errorf("Join: got %v, want %v", err, jvalue.ErrNonFinite)
	}
	o := jvalue.NewObject().Put("x", jvalue.Float(math.Inf(-1)))
	if _, err := o.Indent(2); !errors.Is(err, jvalue.ErrNonFinite) {
		t.Errorf("Indent: got %v, want %v", err, jvalue.ErrNonFinite)
	}
}

func TestJoin(t *testing.T) {
	a := jvalue.NewArray(jvalue.Int(1), jvalue.String("a"), jvalue.Null{}, jvalue.NewArray())
	got, err := a.Join("|")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if want := `1|"a"|null|[]`; got != want {
		t.Errorf("Join: got %#q, want %#q", got, want)
	}
}

func TestMarshalIndent(t *testing.T) {
	v := testutil.MustParse(t, `{"c":"x","a":[1,2],"b":{},"d":[],"e":{"f":null}}`)
	got, err := jvalue.MarshalIndent(v, 2)
	if err != nil {
		t.Fatalf("MarshalIndent: %v", err)
	}
	const want = `{
  "a": [
    1,
    2
  ],
  "b": {},
  "c": "x",
  "d": [],
  "e": {
    "f": null
  }
}`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MarshalIndent (-want, +got):\n%s", diff)
	}

	// Indented output parses back to the same value.
	if back := testutil.MustParse(t, got); !jvalue.Equal(v, back) {
		t.Errorf("Reparse: got %v, want %v", back, v)
	}

	if s, err := jvalue.MarshalIndent(jvalue.Int(5), 4); err != nil || s != "5" {
		t.Errorf("MarshalIndent(5): got %q, %v", s, err)
	}
	if s, err := jvalue.MarshalIndent(v, 0); err != nil || s != testutil.MustMarshal(t, v) {
		t.Errorf("MarshalIndent(0): got %q, %v; want compact form", s, err)
	}
	if _, err := jvalue.MarshalIndent(v, -1); !errors.Is(err, jvalue.ErrInvalidArgument) {
		t.Errorf("MarshalIndent(-1): got %v, want %v", err, jvalue.ErrInvalidArgument)
	}
}

// Values built with the constructive API survive serialization and parsing,
// and the canonical form is a fixed point.
func TestRoundTrip(t *testing.T) {
	g := testutil.NewGenerator(20211108)
	for i := range 500 {
		v := g.Value()
		text := testutil.MustMarshal(t, v)
		back, err := jvalue.Parse(text)
		if err != nil {
			t.Fatalf("Case %d: Parse %#q: %v", i, text, err)
		}
		if !jvalue.Equal(v, back) {
			t.Fatalf("Case %d: round trip of %#q gave %#q", i, text, testutil.MustMarshal(t, back))
		}
		if again := testutil.MustMarshal(t, back); again != text {
			t.Fatalf("Case %d: canonical form changed:\n got %#q\nwant %#q", i, again, text)
		}

		pretty, err := jvalue.MarshalIndent(v, 3)
		if err != nil {
			t.Fatalf("Case %d: MarshalIndent: %v", i, err)
		}
		if back := testutil.MustParse(t, pretty); !jvalue.Equal(v, back) {
			t.Fatalf("Case %d: indented round trip of %#q failed", i, pretty)
		}
	}
}

func TestInvalidUTF8RoundTrip(t *testing.T) {
	for _, s := range []string{"a\xffb", "\xc3", "x\xe2\x98"} {
		text := testutil.MustMarshal(t, jvalue.String(s))
		back, err := jvalue.Parse(text)
		if err != nil {
			t.Fatalf("Parse %#q: %v", text, err)
		}
		if diff := cmp.Diff(jvalue.Value(jvalue.String(s)), back); diff != "" {
			t.Errorf("Round trip of %q (-want, +got):\n%s", s, diff)
		}
	}
}

func TestScenario(t *testing.T) {
	const input = `{"name":"tile","flags":[true,false,null],"meta":{"id":7}}`
	o, err := jvalue.ParseObject(input)
	if err != nil {
		t.Fatalf("ParseObject: %v", err)
	}
	if s, err := o.GetString("name"); err != nil || s != "tile" {
		t.Errorf(`GetString("name"): got %q, %v`, s, err)
	}
	flags, err := o.GetArray("flags")
	if err != nil {
		t.Fatalf(`GetArray("flags"): %v`, err)
	}
	if n := flags.Len(); n != 3 {
		t.Errorf("flags.Len: got %d, want 3", n)
	}
	if !flags.IsNull(2) {
		t.Error("flags.IsNull(2): got false, want true")
	}
	meta, err := o.GetObject("meta")
	if err != nil {
		t.Fatalf(`GetObject("meta"): %v`, err)
	}
	if id, err := meta.GetInt("id"); err != nil || id != 7 {
		t.Errorf(`GetInt("id"): got %d, %v`, id, err)
	}

	back, err := jvalue.Parse(o.String())
	if err != nil {
		t.Fatalf("Reparse: %v", err)
	}
	if !jvalue.Equal(o, back) {
		t.Errorf("Reparse: got %v, want %v", back, o)
	}
}
