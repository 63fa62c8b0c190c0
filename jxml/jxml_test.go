// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jxml_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jvalue"
	"github.com/creachadair/jvalue/internal/testutil"
	"github.com/creachadair/jvalue/jxml"
	"github.com/google/go-cmp/cmp"
)

func TestTokens(t *testing.T) {
	tok := jxml.NewTokener(`name attr = "a &amp; b" 'c&#x41;' / > ? ! list[`)
	var got []string
	for tok.More() {
		next, err := tok.NextToken()
		if err != nil {
			t.Fatalf("NextToken: unexpected error: %v", err)
		}
		got = append(got, next.String())
	}
	want := []string{`"name"`, `"attr"`, "=", `"a & b"`, `"cA"`, "/", ">", "?", "!", `"list"`, `"["`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokens (-want, +got):\n%s", diff)
	}
}

func TestTokenErrors(t *testing.T) {
	tests := []struct {
		input string
		next  func(*jxml.Tokener) error
	}{
		{"", func(t *jxml.Tokener) error { _, err := t.NextToken(); return err }},
		{"<", func(t *jxml.Tokener) error { _, err := t.NextToken(); return err }},
		{`ab"c`, func(t *jxml.Tokener) error { _, err := t.NextToken(); return err }},
		{`"abc`, func(t *jxml.Tokener) error { _, err := t.NextToken(); return err }},
		{"amp<", func(t *jxml.Tokener) error { _, err := t.NextEntity(); return err }},
		{"", func(t *jxml.Tokener) error { _, err := t.NextMeta(); return err }},
		{`'open`, func(t *jxml.Tokener) error { _, err := t.NextMeta(); return err }},
		{"abc]]", func(t *jxml.Tokener) error { _, err := t.NextCDATA(); return err }},
	}
	for _, tc := range tests {
		err := tc.next(jxml.NewTokener(tc.input))
		var serr *jvalue.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Input %q: got error %v, want syntax error", tc.input, err)
		}
	}
}

func TestContent(t *testing.T) {
	tok := jxml.NewTokener("  one &lt;&gt; &quot;two&apos; &unknown;  <rest")
	got, err := tok.NextContent()
	if err != nil {
		t.Fatalf("NextContent: unexpected error: %v", err)
	}
	if want := (jxml.Token{Kind: jxml.Text, Text: `one <> "two' &unknown;`}); got != want {
		t.Errorf("NextContent: got %v, want %v", got, want)
	}
	if got, err := tok.NextContent(); err != nil || !got.Is('<') {
		t.Errorf("NextContent: got (%v, %v), want <", got, err)
	}
	tok.NextTo("")
	if got, err := tok.NextContent(); err != nil || got.Kind != jxml.End {
		t.Errorf("NextContent: got (%v, %v), want end", got, err)
	}
}

func TestMeta(t *testing.T) {
	tok := jxml.NewTokener(`DOCTYPE x [<!ENTITY e "a > b">]>`)
	var got []string
	for tok.More() {
		next, err := tok.NextMeta()
		if err != nil {
			t.Fatalf("NextMeta: unexpected error: %v", err)
		}
		got = append(got, next.String())
	}
	want := []string{`"DOCTYPE"`, `"x"`, `"["`, "<", "!", `"ENTITY"`, `"e"`, `"a > b"`, ">", `"]"`, ">"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Meta (-want, +got):\n%s", diff)
	}
}

func TestToObject(t *testing.T) {
	tests := []struct {
		name, input, want string
	}{
		{"Empty", "", `{}`},
		{"Basic", `<a x="1"><b>hi</b><b>there</b>text</a>`,
			`{"a":{"b":["hi","there"],"content":"text","x":1}}`},
		{"Markup", `<?xml version="1.0"?>
<!DOCTYPE note [<!ENTITY x "y">]>
<!-- a comment -->
<note>
  <to>Tove</to>
  <n>5</n>
  <e/>
  <c><![CDATA[<raw> & stuff]]></c>
</note>`, `{"note":{"c":"<raw> & stuff","e":"","n":5,"to":"Tove"}}`},
		{"Entities", `<p a="x &amp; y">1 &lt; 2 &#65;&#x42; &foo;</p>`,
			`{"p":{"a":"x & y","content":"1 < 2 AB &foo;"}}`},
		{"EmptyWithAttrs", `<img src='a.png' alt=""/><br/>`,
			`{"br":"","img":{"alt":"","src":"a.png"}}`},
		{"BareAttr", `<opt checked/>`, `{"opt":{"checked":""}}`},
		{"Mixed", `<r><v>true</v><v>2.5</v><v>null</v><v></v></r>`,
			`{"r":{"v":[true,2.5,null,""]}}`},
		{"Siblings", `<a>1</a><a>2</a>`, `{"a":[1,2]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := jxml.ToObject(tc.input)
			if err != nil {
				t.Fatalf("ToObject: unexpected error: %v", err)
			}
			want := testutil.MustParse(t, tc.want)
			if diff := cmp.Diff(want, jvalue.Value(got), testutil.ValueComparer); diff != "" {
				t.Errorf("ToObject (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestToObjectErrors(t *testing.T) {
	for _, input := range []string{
		`<a><b></a>`,
		`<a>`,
		`</a>`,
		`<a x=>`,
		`<a x="1>`,
		`<a>x &bad</a>`,
		`<a><![CDATA[abc</a>`,
		`<a><![CDXX[abc]]></a>`,
		`<!DOCTYPE x`,
		`<a/x>`,
		`<a></a x>`,
		`<>`,
	} {
		got, err := jxml.ToObject(input)
		var serr *jvalue.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("ToObject(%q): got (%v, %v), want syntax error", input, got, err)
		}
	}
}

func TestEscape(t *testing.T) {
	const input = `<a href="x">Tom & 'Jerry'</a>`
	const want = `&lt;a href=&quot;x&quot;&gt;Tom &amp; &apos;Jerry&apos;&lt;/a&gt;`
	if got := jxml.Escape(input); got != want {
		t.Errorf("Escape: got %q, want %q", got, want)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		input jvalue.Value
		tag   string
		want  string
	}{
		{"Scalar", jvalue.String("a<b"), "", `"a&lt;b"`},
		{"Number", jvalue.Float(2.5), "n", `<n>2.5</n>`},
		{"EmptyTag", jvalue.String(""), "t", `<t/>`},
		{"Null", jvalue.Null{}, "z", `<z>null</z>`},
		{"Array", jvalue.NewArray(jvalue.Int(1), jvalue.Bool(true)), "", `<array>1</array><array>true</array>`},
		{"Object", testutil.MustParse(t, `{"a":{"b":["hi","there"],"content":"text","x":1}}`), "",
			`<a><b>hi</b><b>there</b>text<x>1</x></a>`},
		{"Tagged", testutil.MustParse(t, `{"k":"", "m":[[1,2]], content:["p","q"]}`), "root",
			"<root>p\nq<k/><m><array>1</array><array>2</array></m></root>"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := jxml.String(tc.input, tc.tag)
			if err != nil {
				t.Fatalf("String: unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("String: got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	const input = `{"doc":{"id":7,"item":[{"name":"a & b","qty":2},{"name":"c","qty":3}],"title":"Hello"}}`
	v := testutil.MustParse(t, input)
	xml, err := jxml.String(v, "")
	if err != nil {
		t.Fatalf("String: unexpected error: %v", err)
	}
	got, err := jxml.ToObject(xml)
	if err != nil {
		t.Fatalf("ToObject(%q): unexpected error: %v", xml, err)
	}
	if diff := cmp.Diff(v, jvalue.Value(got), testutil.ValueComparer); diff != "" {
		t.Errorf("Round trip (-want, +got):\n%s", diff)
	}
}
