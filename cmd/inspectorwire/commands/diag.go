// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/inspectorwire/cmd/inspectorwire/cli"
)

func diagCommand() *cli.Command {
	var hexInput bool

	return &cli.Command{
		Name:    "diag",
		Summary: "Show wire bytes as CBOR diagnostic notation",
		Description: `Read wire data from stdin (or a file argument) and write RFC 8949
Extended Diagnostic Notation (EDN) to stdout.

The wire format is a CBOR subset, so the generic diagnoser applies.
Unlike "decode", this shows the exact wire representation: byte
strings (the UTF-16 values) appear as h'..' hex, indefinite-length
containers keep their streaming markers, and CBOR items the wire
format rejects (a wrong start byte, tags, definite-length containers)
are shown rather than reported as errors. Input that is not
well-formed CBOR still fails, naming the byte offset. Useful when a
message fails to decode and the question is what is actually on the
wire.`,
		Usage: "inspectorwire diag [--hex] [file]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("diag", pflag.ContinueOnError)
			flags.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded wire data")
			return flags
		},
		Examples: []cli.Example{
			{
				Description: "Inspect the structure of a message",
				Command:     "inspectorwire diag message.bin",
			},
			{
				Description: "Encode JSON and inspect the wire structure",
				Command:     `echo '{"count":42}' | inspectorwire encode | inspectorwire diag`,
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("diag takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return diagWire(data, os.Stdout)
		},
	}
}

// diagWire writes the diagnostic notation of each item in data on its
// own line. A well-formed message is a single item; trailing items
// (which the binary parser would ignore) get their own lines.
func diagWire(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected wire data")
	}

	remaining := data
	for len(remaining) > 0 {
		notation, rest, err := cbor.DiagnoseFirst(remaining)
		if err != nil {
			offset := len(data) - len(remaining)
			return fmt.Errorf("diagnose wire data at byte %d: %w", offset, err)
		}
		if _, err := fmt.Fprintln(w, notation); err != nil {
			return err
		}
		remaining = rest
	}

	return nil
}
