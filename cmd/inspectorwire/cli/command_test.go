// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "inspectorwire",
		Subcommands: []*Command{
			{
				Name: "encode",
				Run: func(args []string) error {
					called = "encode"
					return nil
				},
			},
			{
				Name: "decode",
				Run: func(args []string) error {
					called = "decode"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"decode"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "decode" {
		t.Errorf("dispatched to %q, want %q", called, "decode")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "inspectorwire",
		Subcommands: []*Command{
			{
				Name: "dump",
				Subcommands: []*Command{
					{
						Name: "pack",
						Run: func(args []string) error {
							called = "dump pack"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"dump", "pack", "capture.bin"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "dump pack" {
		t.Errorf("dispatched to %q, want %q", called, "dump pack")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "capture.bin" {
		t.Errorf("args = %v, want [capture.bin]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var hexInput bool

	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flags.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex")
			return flags
		},
		Run: func(args []string) error { return nil },
	}

	if err := command.Execute([]string{"--hex"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !hexInput {
		t.Error("--hex flag not applied")
	}
}

func TestCommand_Execute_UnknownSubcommandSuggests(t *testing.T) {
	root := &Command{
		Name: "inspectorwire",
		Subcommands: []*Command{
			{Name: "encode", Run: func([]string) error { return nil }},
			{Name: "decode", Run: func([]string) error { return nil }},
		},
	}

	err := root.Execute([]string{"decoed"})
	if err == nil {
		t.Fatal("expected an error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `"decode"`) {
		t.Errorf("error %q does not suggest decode", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flags.Bool("compact", false, "compact output")
			return flags
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--compactt"})
	if err == nil {
		t.Fatal("expected an error for unknown flag")
	}
	if !strings.Contains(err.Error(), "--compact") {
		t.Errorf("error %q does not suggest --compact", err)
	}
}

func TestCommand_PrintHelp_ListsSubcommandsAndExamples(t *testing.T) {
	root := &Command{
		Name:    "inspectorwire",
		Summary: "JSON / binary inspector message codec",
		Subcommands: []*Command{
			{Name: "encode", Summary: "Convert JSON to wire bytes"},
			{Name: "decode", Summary: "Convert wire bytes to JSON"},
		},
		Examples: []Example{
			{Description: "Decode a captured message", Command: "inspectorwire decode message.bin"},
		},
	}

	var help bytes.Buffer
	root.PrintHelp(&help)
	output := help.String()

	for _, want := range []string{"encode", "Convert JSON to wire bytes", "decode", "inspectorwire decode message.bin"} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_Execute_HelpFlagIsNotAnError(t *testing.T) {
	root := &Command{
		Name:        "inspectorwire",
		Subcommands: []*Command{{Name: "encode", Run: func([]string) error { return nil }}},
	}
	if err := root.Execute([]string{"--help"}); err != nil {
		t.Errorf("Execute(--help) error: %v", err)
	}
}
