// Command ax25pack packetizes a raw payload file into an AX.25 frame
// stream, writing the result as a packets.txt-style hex dump
// (internal/hexdump). It implements the encode side of spec.md
// §4.6/§4.7 as a standalone tool, per SPEC_FULL.md §4.12.
package main

import (
	"fmt"
	"os"

	"github.com/n0call/axfx25/internal/ax25"
	"github.com/n0call/axfx25/internal/config"
	"github.com/n0call/axfx25/internal/dwlog"
	"github.com/n0call/axfx25/internal/hexdump"
	"github.com/spf13/pflag"
)

func main() {
	var source = pflag.StringP("source", "s", "N0CALL", "Source callsign.")
	var sourceSSID = pflag.IntP("source-ssid", "S", 0, "Source SSID (0-63).")
	var dest = pflag.StringP("dest", "d", "CQ", "Destination callsign.")
	var destSSID = pflag.IntP("dest-ssid", "D", 0, "Destination SSID (0-63).")
	var frameType = pflag.StringP("type", "t", "DATA", "Frame type for a single-frame transmission: BEACON or MESSAGE. Ignored otherwise, in which case the input is packetized into DATA_HEADER/DATA_FIRST/DATA/DATA_END fragments.")
	var configPath = pflag.StringP("config", "c", "", "Load a named link profile from a YAML config file instead of --source/--dest flags.")
	var linkName = pflag.StringP("link", "l", "default", "Link profile name to use within --config.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s packetizes a raw payload file into an AX.25 frame stream.\n", os.Args[0])
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

	var cfg ax25.LinkConfig
	if *configPath != "" {
		var set, err = config.Load(*configPath)
		if err != nil {
			log.Error("load config", "err", err)
			os.Exit(1)
		}
		var link, ok = set.Find(*linkName)
		if !ok {
			log.Error("link profile not found", "name", *linkName)
			os.Exit(1)
		}
		cfg = link.LinkConfig()
	} else {
		cfg = ax25.LinkConfig{
			SourceCall: *source,
			SourceSSID: byte(*sourceSSID),
			DestCall:   *dest,
			DestSSID:   byte(*destSSID),
		}
	}

	var payload, err = os.ReadFile(pflag.Arg(0))
	if err != nil {
		log.Error("read input", "err", err)
		os.Exit(1)
	}

	var frames [][]byte
	var failed int

	switch *frameType {
	case "BEACON", "MESSAGE":
		var t = ax25.TypeBeacon
		if *frameType == "MESSAGE" {
			t = ax25.TypeMessage
		}
		var frame, err = ax25.BuildSingleFrame(cfg, t, payload)
		if err != nil {
			log.Warn("build frame, skipping", "err", err)
			failed++
		} else {
			frames = append(frames, frame)
			log.FrameEvent("frame written", t.String(), 0, 1, len(payload))
		}
	default:
		var fragments = ax25.Packetize(payload)
		for _, f := range fragments {
			var frame, err = ax25.BuildFragmentFrame(cfg, f)
			if err != nil {
				log.Warn("build fragment frame, skipping", "err", err, "sequence", f.Sequence)
				failed++
				continue
			}
			frames = append(frames, frame)
			log.FrameEvent("frame written", f.Type.String(), int(f.Sequence), int(f.Total), len(f.Payload))
		}
	}

	var out, err2 = os.Create(pflag.Arg(1))
	if err2 != nil {
		log.Error("create output", "err", err2)
		os.Exit(1)
	}
	defer out.Close()

	if err := hexdump.WritePackets(out, frames); err != nil {
		log.Error("write packets", "err", err)
		os.Exit(1)
	}

	log.Info("packetize complete", "frames", len(frames), "failed", failed, "input_bytes", len(payload))
}
