// Package reassembly implements the receiver-side fragment reassembly
// spec.md §1 names as a named open question and SPEC_FULL.md §3.10/§4.11
// resolves: recombining the sequenced fragments internal/ax25's
// packetizer emits back into the original payload.
package reassembly

import (
	"github.com/n0call/axfx25/internal/ax25"
	"github.com/n0call/axfx25/internal/dwlog"
)

// key identifies one in-progress transmission by its originating and
// terminating addresses, matching SPEC_FULL.md §3.10.
type key struct {
	sourceCall string
	sourceSSID byte
	destCall   string
	destSSID   byte
}

type entry struct {
	total  int
	have   []bool
	chunks [][]byte
	got    int
}

// Assembler reconstructs fragmented payloads from decoded AX.25 frames.
// It is not safe for concurrent use, matching spec.md §5's single-
// threaded resource model.
type Assembler struct {
	inProgress map[key]*entry
	log        *dwlog.Logger
}

// New builds an empty Assembler. A nil logger disables the warning
// logged on a total-mismatch reset.
func New(logger *dwlog.Logger) *Assembler {
	return &Assembler{inProgress: make(map[key]*entry), log: logger}
}

// Feed accepts one decoded AX.25 frame and returns the reconstructed
// payload once every fragment for its key has arrived. BEACON and
// MESSAGE frames (Total == 1, no real fragment sequence) complete
// immediately and bypass the fragment-tracking map entirely, per
// SPEC_FULL.md §4.11.
func (a *Assembler) Feed(frame *ax25.DecodedFrame) (payload []byte, complete bool) {
	if frame.Type == ax25.TypeBeacon || frame.Type == ax25.TypeMessage || frame.Type == ax25.TypeDataHeader {
		return append([]byte(nil), frame.Payload...), true
	}

	var k = key{frame.SourceCall, frame.SourceSSID, frame.DestCall, frame.DestSSID}
	var e = a.inProgress[k]

	if e != nil && e.total != int(frame.Total) {
		if a.log != nil {
			a.log.Warn("fragment total changed mid-transmission, restarting", "source", frame.SourceCall, "dest", frame.DestCall, "old_total", e.total, "new_total", frame.Total)
		}
		e = nil
	}

	if e == nil {
		e = &entry{
			total:  int(frame.Total),
			have:   make([]bool, frame.Total),
			chunks: make([][]byte, frame.Total),
		}
		a.inProgress[k] = e
	}

	var seq = int(frame.Sequence)
	if seq < 0 || seq >= e.total {
		if a.log != nil {
			a.log.Warn("fragment sequence out of range, dropping", "source", frame.SourceCall, "sequence", frame.Sequence, "total", frame.Total)
		}
		return nil, false
	}

	if !e.have[seq] {
		e.have[seq] = true
		e.chunks[seq] = append([]byte(nil), frame.Payload...)
		e.got++
	}

	if e.got < e.total {
		return nil, false
	}

	delete(a.inProgress, k)

	var total = 0
	for _, c := range e.chunks {
		total += len(c)
	}
	var out = make([]byte, 0, total)
	for _, c := range e.chunks {
		out = append(out, c...)
	}
	return out, true
}

// Pending reports how many transmissions are currently buffered
// in-progress, mostly useful for diagnostics and tests.
func (a *Assembler) Pending() int {
	return len(a.inProgress)
}
