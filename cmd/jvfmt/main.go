// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jvfmt reads JSON, XML, cookie, or HTTP header text and writes it
// as JSON or XML.
//
// Usage:
//
//	jvfmt [--from FORMAT] [--to FORMAT] [--indent N] [--keys STYLE] [FILE]
//
// Input is read from FILE, or from stdin if FILE is omitted or "-". JSON
// input is accepted in the lenient syntax (comments, single quotes, unquoted
// names, trailing commas); output is always strict. Settings may also be read
// from a YAML file given by --config; flags override the file.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

var cli struct {
	From    string `help:"Input format: json, xml, cookie, cookie-list, or http." short:"f" enum:",json,xml,cookie,cookie-list,http" default:""`
	To      string `help:"Output format: json or xml." short:"t" enum:",json,xml" default:""`
	Indent  int    `help:"Indent output by this many spaces per level (0 for compact)." short:"n" default:"-1"`
	Keys    string `help:"Rewrite object keys to this case style: none, snake, camel, pascal, or kebab." short:"k" enum:",none,snake,camel,pascal,kebab" default:""`
	Tag     string `help:"Root element name for XML output."`
	Config  string `help:"Read settings from this YAML file." short:"c" type:"existingfile"`
	Output  string `help:"Write output to this file instead of stdout." short:"o" type:"path"`
	Verbose bool   `help:"Log progress to stderr." short:"v"`

	File string `arg:"" optional:"" help:"Input file (default stdin)." type:"path"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("jvfmt"),
		kong.Description("Convert JSON, XML, cookie, and HTTP header text to JSON or XML."),
		kong.UsageOnError(),
	)
	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("component", "jvfmt"))

	cfg, err := loadSettings()
	kctx.FatalIfErrorf(err)

	in, err := readInput(cli.File)
	kctx.FatalIfErrorf(err)

	out, err := run(cfg, in)
	if err != nil {
		var serr interface{ Source() string }
		if errors.As(err, &serr) {
			slog.Debug("conversion failed", slog.String("input", serr.Source()))
		}
		fatal("convert", err)
	}

	if cli.Output == "" {
		fmt.Println(out)
	} else if err := os.WriteFile(cli.Output, []byte(out+"\n"), 0644); err != nil {
		fatal("write output", err)
	} else {
		slog.Debug("wrote output", slog.Int("bytes", len(out)+1), slog.String("path", cli.Output))
	}
}

func fatal(op string, err error) {
	slog.Error(op+" failed", slog.String("error", err.Error()))
	os.Exit(1)
}

// loadSettings combines the config file, if any, with the flags.
func loadSettings() (*Config, error) {
	cfg := NewConfig()
	if cli.Config != "" {
		var err error
		cfg, err = LoadConfig(cli.Config)
		if err != nil {
			return nil, err
		}
		slog.Debug("loaded config", slog.String("path", cli.Config))
	}
	if cli.From != "" {
		cfg.From = cli.From
	}
	if cli.To != "" {
		cfg.To = cli.To
	}
	if cli.Indent >= 0 {
		cfg.Indent = cli.Indent
	}
	if cli.Keys != "" {
		cfg.Keys = cli.Keys
	}
	if cli.Tag != "" {
		cfg.Tag = cli.Tag
	}
	return cfg, cfg.Validate()
}

func readInput(path string) (string, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// run converts the input text according to cfg.
func run(cfg *Config, input string) (string, error) {
	v, err := decode(cfg.From, input)
	if err != nil {
		return "", err
	}
	slog.Debug("decoded input", slog.String("format", cfg.From), slog.String("kind", v.Kind().String()))
	return encode(renameKeys(v, cfg.Keys), cfg)
}
