package ax25

import (
	"fmt"

	"github.com/n0call/axfx25/internal/crc"
)

const (
	flagByte    byte = 0x7E
	controlByte byte = 0x03
	pidByte     byte = 0xF0
)

// BuildFrame writes the wire-exact AX.25 frame spec.md §3/§4.6 describes:
// FLAG, dest address (last=false), source address (last=true), CONTROL,
// PID, the 5-byte fragment header (unless frameType is MESSAGE), payload,
// little-endian FCS, FLAG. The FCS covers everything after the opening
// flag up to and including the payload, matching the teacher's
// ax25_pad.go CRC scope.
func BuildFrame(cfg LinkConfig, frameType FrameType, sequence, total uint16, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, fmt.Errorf("ax25: build frame: %w: payload %d bytes exceeds %d", ErrInvalidInput, len(payload), MaxPayload)
	}

	dest, err := EncodeAddress(cfg.DestCall, cfg.DestSSID, false)
	if err != nil {
		return nil, err
	}
	source, err := EncodeAddress(cfg.SourceCall, cfg.SourceSSID, true)
	if err != nil {
		return nil, err
	}

	var body = make([]byte, 0, 7+7+2+5+len(payload))
	body = append(body, dest[:]...)
	body = append(body, source[:]...)
	body = append(body, controlByte, pidByte)
	if frameType.HasFragmentHeader() {
		body = append(body, byte(frameType), byte(sequence>>8), byte(sequence), byte(total>>8), byte(total))
	}
	body = append(body, payload...)

	var withFCS = crc.AppendLE(body)

	var framed = make([]byte, 0, len(withFCS)+2)
	framed = append(framed, flagByte)
	framed = append(framed, withFCS...)
	framed = append(framed, flagByte)

	return framed, nil
}

// DecodedFrame is the result of parsing a complete AX.25 frame, flags
// included, back into its fields. It is used by the reassembly stage and
// by diagnostic tooling; the RS/FX.25 decode path itself treats AX.25
// payloads as opaque bytes per spec.md §1's non-goal on address decoding
// for the RS-output path.
type DecodedFrame struct {
	DestCall   string
	DestSSID   byte
	SourceCall string
	SourceSSID byte
	Type       FrameType
	Sequence   uint16
	Total      uint16
	Payload    []byte
}

// FindFrame locates the first flag-delimited span within buf and
// returns it flags included. RS-decoded FX.25 data blocks carry zero
// padding after the real frame (fx25.Wrap pads every frame to the tag's
// full RS data size); since the span ends at the first 0x7E after the
// opening flag, that padding is never included. A frame whose body
// itself contains a 0x7E byte is cut short at that byte.
func FindFrame(buf []byte) ([]byte, bool) {
	var start = -1
	for i, b := range buf {
		if b == flagByte {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, false
	}
	for i := start + 1; i < len(buf); i++ {
		if buf[i] == flagByte {
			return buf[start : i+1], true
		}
	}
	return nil, false
}

// ParseFrame reverses BuildFrame, validating the flags, addresses, and
// FCS. hasFragmentHeader must match how the frame was built (false only
// for MESSAGE frames) since the wire format carries no self-describing
// marker for that distinction. It returns ErrParseError wrapped with
// context on any structural violation.
func ParseFrame(framed []byte, hasFragmentHeader bool) (*DecodedFrame, error) {
	if len(framed) < 2 || framed[0] != flagByte || framed[len(framed)-1] != flagByte {
		return nil, fmt.Errorf("ax25: parse frame: %w: missing flag delimiters", ErrParseError)
	}
	var body = framed[1 : len(framed)-1]
	if len(body) < 7+7+2+2 {
		return nil, fmt.Errorf("ax25: parse frame: %w: frame too short", ErrParseError)
	}

	var fcsField = body[len(body)-2:]
	var payloadEnd = body[:len(body)-2]
	var wantFCS = uint16(fcsField[0]) | uint16(fcsField[1])<<8
	var gotFCS = crc.CCITT(payloadEnd)
	if wantFCS != gotFCS {
		return nil, fmt.Errorf("ax25: parse frame: %w: FCS mismatch", ErrParseError)
	}

	var destAddr [7]byte
	copy(destAddr[:], payloadEnd[0:7])
	var sourceAddr [7]byte
	copy(sourceAddr[:], payloadEnd[7:14])

	destCall, destSSID, _ := DecodeAddress(destAddr)
	sourceCall, sourceSSID, _ := DecodeAddress(sourceAddr)

	var rest = payloadEnd[14:]
	if len(rest) < 2 || rest[0] != controlByte || rest[1] != pidByte {
		return nil, fmt.Errorf("ax25: parse frame: %w: bad control/PID", ErrParseError)
	}
	rest = rest[2:]

	var decoded = &DecodedFrame{
		DestCall:   destCall,
		DestSSID:   destSSID,
		SourceCall: sourceCall,
		SourceSSID: sourceSSID,
	}

	if hasFragmentHeader {
		if len(rest) < 5 {
			return nil, fmt.Errorf("ax25: parse frame: %w: truncated fragment header", ErrParseError)
		}
		decoded.Type = FrameType(rest[0])
		decoded.Sequence = uint16(rest[1])<<8 | uint16(rest[2])
		decoded.Total = uint16(rest[3])<<8 | uint16(rest[4])
		decoded.Payload = append([]byte(nil), rest[5:]...)
	} else {
		decoded.Type = TypeMessage
		decoded.Total = 1
		decoded.Payload = append([]byte(nil), rest...)
	}

	return decoded, nil
}
