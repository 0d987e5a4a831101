// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the inspectorwire command tree.
package commands

import (
	"github.com/bureau-foundation/inspectorwire/cmd/inspectorwire/cli"
)

// Root returns the top-level inspectorwire command.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "inspectorwire",
		Summary: "Translate inspector protocol messages between JSON and the binary wire format",
		Description: `Tools for working with inspector protocol messages.

The wire format is a CBOR subset: one indefinite-length map per
message, 7-bit strings for keys and ASCII values, UTF-16 byte strings
for everything else. "encode" and "decode" translate between that form
and JSON text; "diag" shows the CBOR structure of wire bytes; "dump"
wraps messages in the compressed, integrity-checked capture container.

All subcommands accept an optional trailing file path argument. When
provided, input is read from the file instead of stdin.`,
		Subcommands: []*cli.Command{
			encodeCommand(),
			decodeCommand(),
			diagCommand(),
			dumpCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Encode a JSON message to wire bytes",
				Command:     `echo '{"id":1,"method":"Runtime.enable"}' | inspectorwire encode > message.bin`,
			},
			{
				Description: "Decode captured wire bytes",
				Command:     "inspectorwire decode message.bin",
			},
			{
				Description: "Inspect the CBOR structure of a message",
				Command:     "inspectorwire diag message.bin",
			},
			{
				Description: "Round-trip: encode then decode",
				Command:     `echo '{"id":1}' | inspectorwire encode | inspectorwire decode`,
			},
		},
	}
}
