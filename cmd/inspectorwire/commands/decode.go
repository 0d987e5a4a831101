// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/inspectorwire/cmd/inspectorwire/cli"
	"github.com/bureau-foundation/inspectorwire/lib/dump"
	"github.com/bureau-foundation/inspectorwire/lib/transcode"
)

func decodeCommand() *cli.Command {
	var (
		hexInput bool
		fromDump bool
	)

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert wire bytes to a JSON message",
		Description: `Read binary wire data from stdin (or a file argument) and write the
equivalent JSON to stdout.

The output is the codec's canonical form: no insignificant whitespace,
non-ASCII string characters as \uXXXX escapes. A malformed message is
reported with its error kind and the byte offset where parsing
stopped.

With --hex, input is hex-encoded wire data (whitespace ignored). With
--dump, input is a capture container written by "encode --dump" or
"dump pack"; it is unwrapped and verified before decoding.`,
		Usage: "inspectorwire decode [--hex] [--dump] [file]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flags.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded wire data")
			flags.BoolVar(&fromDump, "dump", false, "unwrap a dump container before decoding")
			return flags
		},
		Examples: []cli.Example{
			{
				Description: "Decode a captured message file",
				Command:     "inspectorwire decode message.bin",
			},
			{
				Description: "Decode hex pasted from a log",
				Command:     "echo 'bf 61 61 01 ff' | inspectorwire decode --hex",
			},
			{
				Description: "Decode a capture container",
				Command:     "inspectorwire decode --dump message.iwd",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("decode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return decodeWire(data, os.Stdout, fromDump)
		},
	}
}

// decodeWire converts wire bytes (optionally inside a dump container)
// to JSON and writes it to w with a trailing newline.
func decodeWire(data []byte, w io.Writer, fromDump bool) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected wire data")
	}

	if fromDump {
		message, err := dump.Unpack(data)
		if err != nil {
			if errors.Is(err, dump.ErrNotDump) {
				return fmt.Errorf("input is not a dump container (decode without --dump?): %w", err)
			}
			return fmt.Errorf("unpack dump: %w", err)
		}
		data = message
	}

	decoded, status := transcode.BinaryToJSON(data)
	if !status.OK() {
		return fmt.Errorf("decode wire data: %s", status)
	}

	_, err := fmt.Fprintln(w, string(decoded))
	return err
}
