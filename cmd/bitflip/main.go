// Command bitflip copies a file, flipping the low bit of one byte, to
// exercise the FX.25 decoder's error-correction path per spec.md §7's
// fault-injection scenarios.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/n0call/axfx25/internal/dwlog"
	"github.com/spf13/pflag"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s flips the low bit of one byte in a file.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s <input> <output> <byte-offset>\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	var log = dwlog.Default()

	if pflag.NArg() != 3 {
		pflag.Usage()
		os.Exit(1)
	}

	var data, err = os.ReadFile(pflag.Arg(0))
	if err != nil {
		log.Error("read input", "err", err)
		os.Exit(1)
	}

	var offset, perr = strconv.Atoi(pflag.Arg(2))
	if perr != nil || offset < 0 || offset >= len(data) {
		log.Error("byte offset out of range", "offset", pflag.Arg(2), "length", len(data))
		os.Exit(1)
	}

	data[offset] ^= 0x01

	if err := os.WriteFile(pflag.Arg(1), data, 0644); err != nil {
		log.Error("write output", "err", err)
		os.Exit(1)
	}

	log.Info("bit flipped", "offset", offset, "byte", fmt.Sprintf("0x%02x", data[offset]))
}
