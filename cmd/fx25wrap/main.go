// Command fx25wrap reads a packets.txt-style AX.25 frame stream and
// wraps each frame in FX.25 outer framing (internal/fx25), writing the
// result as an fx25_packets.txt-style labeled hex dump. It implements
// the encode side of spec.md §4.8, generalized per SPEC_FULL.md §3.9 to
// the full eleven-entry correlation tag table.
package main

import (
	"fmt"
	"os"

	"github.com/n0call/axfx25/internal/dwlog"
	"github.com/n0call/axfx25/internal/fx25"
	"github.com/n0call/axfx25/internal/hexdump"
	"github.com/spf13/pflag"
)

// autoPickMode is a PickMode fxMode value that hits neither the disabled,
// fixed-tag, nor check-byte-count branches, so PickMode falls through to
// its fixed preference order (0x04, 0x03, 0x06, 0x09, 0x05, 0x01). Used
// when --tag is left at its default of 0, meaning "auto-select the first
// tag in that order that fits".
const autoPickMode = 1

func main() {
	var tag = pflag.IntP("tag", "t", 0, "Correlation tag number (0x01-0x0B) to use for every frame. 0 auto-selects, per frame, the first tag that fits in the order 0x04, 0x03, 0x06, 0x09, 0x05, 0x01.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s wraps each AX.25 frame in a packets.txt file with FX.25 outer framing.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTION]... <input> <output>\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 2 {
		pflag.Usage()
		os.Exit(1)
	}

	var log = dwlog.Default()

	var in, err = os.Open(pflag.Arg(0))
	if err != nil {
		log.Error("open input", "err", err)
		os.Exit(1)
	}
	var frames, perr = hexdump.ParsePackets(in)
	in.Close()
	if perr != nil {
		log.Error("parse packets", "err", perr)
		os.Exit(1)
	}

	var wrapped = make([]hexdump.FX25Packet, 0, len(frames))
	var failed int
	for i, frame := range frames {
		var tagNumber = *tag
		if tagNumber == 0 {
			tagNumber = fx25.PickMode(autoPickMode, len(frame))
			if tagNumber < 0 {
				log.Warn("no correlation tag fits frame, skipping", "index", i, "bytes", len(frame))
				failed++
				continue
			}
		}

		var block, werr = fx25.Wrap(tagNumber, frame)
		if werr != nil {
			log.Warn("wrap frame, skipping", "index", i, "err", werr)
			failed++
			continue
		}

		var pkt hexdump.FX25Packet
		copy(pkt.Tag[:], block[:8])
		pkt.Codeword = block[8:]
		wrapped = append(wrapped, pkt)
		log.Info("frame wrapped", "index", i, "tag", fmt.Sprintf("0x%02x", tagNumber), "bytes", len(block))
	}

	var out, cerr = os.Create(pflag.Arg(1))
	if cerr != nil {
		log.Error("create output", "err", cerr)
		os.Exit(1)
	}
	defer out.Close()

	if err := hexdump.WriteFX25Packets(out, wrapped); err != nil {
		log.Error("write fx25 packets", "err", err)
		os.Exit(1)
	}

	log.Info("wrap complete", "frames", len(wrapped), "failed", failed)
}
