// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/creachadair/jvalue"
	"github.com/creachadair/jvalue/jcookie"
	"github.com/creachadair/jvalue/jhttp"
	"github.com/creachadair/jvalue/jxml"
	"github.com/iancoleman/strcase"
)

// decode converts input text in the given format to a value.
func decode(format, text string) (jvalue.Value, error) {
	switch format {
	case "json":
		return jvalue.Parse(text)
	case "xml":
		return asValue(jxml.ToObject(text))
	case "cookie":
		return asValue(jcookie.ToObject(text))
	case "cookie-list":
		return asValue(jcookie.ListToObject(text))
	case "http":
		return asValue(jhttp.ToObject(text))
	}
	return nil, fmt.Errorf("unknown input format %q", format)
}

// asValue converts an object result to a Value. On error it returns a nil
// Value, not a Value holding a nil *Object.
func asValue(o *jvalue.Object, err error) (jvalue.Value, error) {
	if err != nil {
		return nil, err
	}
	return o, nil
}

// encode renders v in the given output format.
func encode(v jvalue.Value, cfg *Config) (string, error) {
	switch cfg.To {
	case "json":
		if cfg.Indent > 0 {
			return jvalue.MarshalIndent(v, cfg.Indent)
		}
		return jvalue.Marshal(v)
	case "xml":
		return jxml.String(v, cfg.Tag)
	}
	return "", fmt.Errorf("unknown output format %q", cfg.To)
}

var keyCase = map[string]func(string) string{
	"snake":  strcase.ToSnake,
	"camel":  strcase.ToLowerCamel,
	"pascal": strcase.ToCamel,
	"kebab":  strcase.ToKebab,
}

// renameKeys returns a copy of v in which every object key has been
// converted to the named case style. If two keys of an object convert to the
// same name, the one that sorts last wins. For style "none" v is returned
// unchanged.
func renameKeys(v jvalue.Value, style string) jvalue.Value {
	conv, ok := keyCase[style]
	if !ok {
		return v
	}
	return rename(v, conv)
}

func rename(v jvalue.Value, conv func(string) string) jvalue.Value {
	switch t := v.(type) {
	case *jvalue.Object:
		out := jvalue.NewObject()
		for key, val := range t.All() {
			out.Put(conv(key), rename(val, conv))
		}
		return out
	case *jvalue.Array:
		out := jvalue.NewArray()
		for _, val := range t.Values() {
			out.Put(rename(val, conv))
		}
		return out
	}
	return v
}
