// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/inspectorwire/cmd/inspectorwire/cli"
	"github.com/bureau-foundation/inspectorwire/lib/dump"
)

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:    "dump",
		Summary: "Pack and unpack capture containers",
		Description: `Work with the capture container format used for stored inspector
messages: a compressed payload with a BLAKE3 integrity hash.

"pack" wraps raw wire bytes; "unpack" verifies and extracts them.
Decoding a container directly is "inspectorwire decode --dump".`,
		Subcommands: []*cli.Command{
			dumpPackCommand(),
			dumpUnpackCommand(),
		},
	}
}

func dumpPackCommand() *cli.Command {
	var compression string

	return &cli.Command{
		Name:    "pack",
		Summary: "Wrap wire bytes in a capture container",
		Description: `Read raw wire bytes from stdin (or a file argument) and write a
capture container to stdout.

By default the compression algorithm is chosen from the payload shape:
zstd for text-heavy messages, lz4 otherwise. Use --compression to
force a specific algorithm (none, lz4, zstd). Either way the container
falls back to storing uncompressed when compression does not shrink
the payload.`,
		Usage: "inspectorwire dump pack [--compression none|lz4|zstd] [file]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("pack", pflag.ContinueOnError)
			flags.StringVar(&compression, "compression", "", "compression algorithm (default: chosen from payload)")
			return flags
		},
		Examples: []cli.Example{
			{
				Description: "Pack a captured message",
				Command:     "inspectorwire dump pack message.bin > message.iwd",
			},
			{
				Description: "Force zstd compression",
				Command:     "inspectorwire dump pack --compression zstd message.bin > message.iwd",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, false)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("pack takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return packDump(data, os.Stdout, compression)
		},
	}
}

func dumpUnpackCommand() *cli.Command {
	return &cli.Command{
		Name:    "unpack",
		Summary: "Extract wire bytes from a capture container",
		Description: `Read a capture container from stdin (or a file argument), verify its
integrity hash, and write the raw wire bytes to stdout.`,
		Usage: "inspectorwire dump unpack [file]",
		Examples: []cli.Example{
			{
				Description: "Extract and decode a container",
				Command:     "inspectorwire dump unpack message.iwd | inspectorwire decode",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, false)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("unpack takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return unpackDump(data, os.Stdout)
		},
	}
}

// packDump wraps wire bytes in a capture container and writes it to w.
func packDump(data []byte, w io.Writer, compression string) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected wire data")
	}

	tag := dump.ChooseTag(data)
	if compression != "" {
		var err error
		tag, err = dump.ParseCompressionTag(compression)
		if err != nil {
			return err
		}
	}

	container, err := dump.Pack(data, tag)
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}

	logger := cli.NewCommandLogger().With("command", "dump/pack")
	logger.Info("packed message",
		"compression", tag.String(),
		"message_bytes", len(data),
		"container_bytes", len(container))

	_, err = w.Write(container)
	return err
}

// unpackDump verifies a capture container and writes the wire bytes
// to w.
func unpackDump(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected a dump container")
	}

	message, err := dump.Unpack(data)
	if err != nil {
		return fmt.Errorf("unpack: %w", err)
	}

	_, err = w.Write(message)
	return err
}
