// Package rs implements a systematic Reed-Solomon (N=255,K) codec over
// GF(2^8), parameterized by the number of parity ("root") symbols.
//
// The algorithms here are a direct, idiomatic-Go port of the classic
// Phil Karn RS codec (init_rs_char / encode_rs_char / decode_rs_char)
// that the teacher repository carries, transliterated almost verbatim,
// in fx25_init.go and fx25_extract.go: CCSDS field (primitive polynomial
// 0x11D, alpha=2), first consecutive root 0, primitive element exponent
// 1. That parameter set is the one spec.md recommends end-to-end (its
// "dual RS parameterization" design note); the alternate first-root-112
// variant used by the teacher's external-library encode path is not
// implemented here (see DESIGN.md).
package rs

import (
	"errors"
	"fmt"

	"github.com/n0call/axfx25/internal/gf"
)

// N is the RS block size, fixed at 255 for 8-bit symbols.
const N = 255

// ErrInvalidInput is returned when a caller passes a block of the wrong
// size for the codec's parameters.
var ErrInvalidInput = errors.New("rs: invalid input length")

// ErrUncorrectable is returned by Decode when the received word carries
// more errors than the code can locate consistently: more than T errors,
// or a Berlekamp-Massey / Chien-search inconsistency.
var ErrUncorrectable = errors.New("rs: uncorrectable block")

// Codec is an immutable RS(255, 255-Nroots) instance. The zero value is
// not usable; construct with New.
type Codec struct {
	Nroots  int
	K       int
	genCoeff []byte // length Nroots+1, low-to-high order, genCoeff[Nroots] == 1
}

// New builds an RS(255, 255-nroots) codec. nroots must be even and in
// (0, 255) for the construction to be meaningful; this package only
// exercises 16, 32, and 64 (the FX.25 tag table, see internal/fx25).
func New(nroots int) *Codec {
	if nroots <= 0 || nroots >= N {
		panic(fmt.Sprintf("rs: invalid nroots %d", nroots))
	}
	return &Codec{
		Nroots:   nroots,
		K:        N - nroots,
		genCoeff: generator(nroots),
	}
}

// generator computes g(x) = product_{i=0}^{nroots-1} (x - alpha^i) in
// low-to-high coefficient order, per spec.md's §4.2: start with g=[1]
// and repeatedly multiply by the linear factor for the next root via a
// shift-and-XOR update. Subtraction is XOR in GF(2^8), so (x - alpha^i)
// is (x + alpha^i).
func generator(nroots int) []byte {
	var g = []byte{1}
	for i := 0; i < nroots; i++ {
		var root = gf.Exp(i)
		var next = make([]byte, len(g)+1)
		for k := range next {
			var lower byte
			if k >= 1 && k-1 < len(g) {
				lower = g[k-1]
			}
			var same byte
			if k < len(g) {
				same = g[k]
			}
			next[k] = lower ^ gf.Mul(root, same)
		}
		g = next
	}
	return g
}

// Encode returns the N-byte systematic codeword for a K-byte data block:
// the input copied verbatim into [0,K) followed by Nroots parity symbols
// in [K,N) such that the whole codeword is divisible by g(x). data must
// be exactly K bytes; pad short blocks with zeros before calling, per
// spec.md §4.3.
func (c *Codec) Encode(data []byte) ([]byte, error) {
	if len(data) != c.K {
		return nil, fmt.Errorf("rs: encode: %w: want %d bytes, got %d", ErrInvalidInput, c.K, len(data))
	}

	var codeword = make([]byte, N)
	copy(codeword, data)
	copy(codeword[c.K:], c.parity(data))
	return codeword, nil
}

// parity runs the LFSR division that produces the Nroots check symbols,
// matching the register-feedback-shift-overlay recurrence of Karn's
// encode_rs_char (here using a coefficient-form generator polynomial
// rather than Karn's log-form one, which lets every step go through
// gf.Mul instead of manual index bookkeeping).
func (c *Codec) parity(data []byte) []byte {
	var nroots = c.Nroots
	var bb = make([]byte, nroots)

	for _, d := range data {
		var feedback = d ^ bb[0]
		if feedback != 0 {
			for j := 1; j < nroots; j++ {
				bb[j] ^= gf.Mul(feedback, c.genCoeff[nroots-j])
			}
		}
		copy(bb, bb[1:])
		if feedback != 0 {
			bb[nroots-1] = gf.Mul(feedback, c.genCoeff[0])
		} else {
			bb[nroots-1] = 0
		}
	}
	return bb
}
