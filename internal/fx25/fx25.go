package fx25

import (
	"errors"
	"fmt"

	"github.com/n0call/axfx25/internal/rs"
)

const tagLen = 8

// Wrap implements spec.md §4.8, generalized per SPEC_FULL.md §3.9 to any
// of the eleven correlation tags: it zero-pads frame to the tag's full
// RS data size, encodes it, and prepends the tag's 8-byte correlation
// value (sent least-significant-byte first, matching the teacher's
// "send LSB first" convention). Only the tag's KDataRadio-byte prefix of
// the data (plus the parity) is actually transmitted for a shortened
// tag — the remaining, always-zero portion up to KDataRS is implied and
// reconstructed by Unwrap.
//
// Wrap rejects a frame longer than the tag's KDataRadio with
// ErrInvalidInput.
func Wrap(tagNumber int, frame []byte) ([]byte, error) {
	var tag, ok = LookupTag(tagNumber)
	if !ok {
		return nil, fmt.Errorf("fx25: wrap: %w: unknown tag number 0x%02x", ErrInvalidInput, tagNumber)
	}
	if len(frame) > tag.KDataRadio {
		return nil, fmt.Errorf("fx25: wrap: %w: frame %d bytes exceeds tag 0x%02x capacity %d", ErrInvalidInput, len(frame), tagNumber, tag.KDataRadio)
	}

	var data = make([]byte, tag.KDataRS)
	copy(data, frame)

	var codeword, err = codecFor(tag).Encode(data)
	if err != nil {
		return nil, fmt.Errorf("fx25: wrap: %w", err)
	}

	var nroots = tag.NBlockRS - tag.KDataRS
	var out = make([]byte, 0, tagLen+tag.KDataRadio+nroots)
	out = appendTagLE(out, tag.Value)
	out = append(out, codeword[:tag.KDataRadio]...)
	out = append(out, codeword[tag.KDataRS:tag.KDataRS+nroots]...)

	return out, nil
}

// WrapDefault wraps frame using DefaultTag (RS(255,223), full length),
// spec.md's original single fixed-tag behavior.
func WrapDefault(frame []byte) ([]byte, error) {
	return Wrap(DefaultTag, frame)
}

// Unwrap implements spec.md §4.9's decode side at the FX.25 layer: it
// recovers the correlation tag, reconstructs the full RS data block
// (the transmitted KDataRadio-byte prefix plus the implied zero
// padding up to KDataRS), runs the RS decoder, and returns the
// corrected data block alongside the tag that matched and the number
// of symbols corrected.
//
// received must contain at least the tag plus that tag's transmitted
// data+parity bytes; trailing bytes are ignored. If no table entry
// matches the tag within CloseEnough bits, Unwrap returns
// ErrParseError. If the RS decoder cannot correct the block, Unwrap
// returns the uncorrected reconstruction alongside ErrUncorrectable,
// matching spec.md §7's Uncorrectable policy of emitting the received
// word unchanged.
func Unwrap(received []byte) ([]byte, Tag, int, error) {
	if len(received) < tagLen {
		return nil, Tag{}, 0, fmt.Errorf("fx25: unwrap: %w: block shorter than the correlation tag", ErrParseError)
	}

	var tagValue = readTagLE(received[:tagLen])
	var tag, ok = MatchTag(tagValue)
	if !ok {
		return nil, Tag{}, 0, fmt.Errorf("fx25: unwrap: %w: no correlation tag within %d bits", ErrParseError, CloseEnough)
	}

	var nroots = tag.NBlockRS - tag.KDataRS
	var want = tagLen + tag.KDataRadio + nroots
	if len(received) < want {
		return nil, tag, 0, fmt.Errorf("fx25: unwrap: %w: block too short for tag 0x%02x (want %d bytes, got %d)", ErrParseError, tag.Number, want, len(received))
	}

	var buf = make([]byte, tag.NBlockRS)
	copy(buf, received[tagLen:tagLen+tag.KDataRadio])
	copy(buf[tag.KDataRS:], received[tagLen+tag.KDataRadio:want])

	var corrected, count, err = codecFor(tag).Decode(buf)
	if err != nil {
		if errors.Is(err, rs.ErrUncorrectable) {
			return corrected[:tag.KDataRS], tag, 0, fmt.Errorf("fx25: unwrap: %w", ErrUncorrectable)
		}
		return nil, tag, 0, fmt.Errorf("fx25: unwrap: %w", err)
	}

	return corrected[:tag.KDataRS], tag, count, nil
}

// UnwrapDefault unwraps a block encoded with WrapDefault. It is a thin
// convenience over Unwrap for callers that know only DefaultTag is in
// use; Unwrap itself auto-detects the tag regardless.
func UnwrapDefault(received []byte) ([]byte, int, error) {
	var data, _, count, err = Unwrap(received)
	return data, count, err
}

func appendTagLE(dst []byte, value uint64) []byte {
	for i := 0; i < tagLen; i++ {
		dst = append(dst, byte(value>>(8*i)))
	}
	return dst
}

func readTagLE(b []byte) uint64 {
	var v uint64
	for i := 0; i < tagLen; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}
