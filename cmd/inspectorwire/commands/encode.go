// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/inspectorwire/cmd/inspectorwire/cli"
	"github.com/bureau-foundation/inspectorwire/lib/dump"
	"github.com/bureau-foundation/inspectorwire/lib/transcode"
)

func encodeCommand() *cli.Command {
	var (
		hexOutput bool
		asDump    bool
	)

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert a JSON message to wire bytes",
		Description: `Read a JSON message from stdin (or a file argument) and write its
binary wire form to stdout.

The input may be JSONC: // and /* */ comments and trailing commas are
stripped before encoding, which makes hand-written test messages less
fiddly.

The output is binary. Pipe to "inspectorwire diag" or use --hex to
inspect it. With --dump, the output is wrapped in a capture container
(compressed, integrity-checked) instead of raw wire bytes.`,
		Usage: "inspectorwire encode [--hex] [--dump] [file]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("encode", pflag.ContinueOnError)
			flags.BoolVarP(&hexOutput, "hex", "x", false, "write hex instead of raw binary")
			flags.BoolVar(&asDump, "dump", false, "wrap the output in a dump container")
			return flags
		},
		Examples: []cli.Example{
			{
				Description: "Encode a JSON message",
				Command:     `echo '{"id":1,"method":"Runtime.enable"}' | inspectorwire encode > message.bin`,
			},
			{
				Description: "Show the wire bytes as hex",
				Command:     `echo '{"array":[1,2,3]}' | inspectorwire encode --hex`,
			},
			{
				Description: "Write a compressed capture container",
				Command:     "inspectorwire encode --dump message.json > message.iwd",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, false)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("encode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return encodeJSON(data, os.Stdout, hexOutput, asDump)
		},
	}
}

// encodeJSON converts JSON (or JSONC) text to wire bytes and writes
// them to w.
func encodeJSON(data []byte, w io.Writer, hexOutput bool, asDump bool) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected a JSON message")
	}

	encoded, status := transcode.JSONToBinary(jsonc.ToJSON(data))
	if !status.OK() {
		return fmt.Errorf("encode JSON: %s", status)
	}

	if asDump {
		container, err := dump.Pack(encoded, dump.ChooseTag(encoded))
		if err != nil {
			return fmt.Errorf("pack dump: %w", err)
		}
		encoded = container
	}

	if hexOutput {
		_, err := fmt.Fprintln(w, hex.EncodeToString(encoded))
		return err
	}
	_, err := w.Write(encoded)
	return err
}
