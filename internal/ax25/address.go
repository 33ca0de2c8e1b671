package ax25

import "fmt"

// EncodeAddress builds the 7-byte AX.25 address field for call/ssid: the
// first six bytes are call, space-padded to six characters and each
// left-shifted by one bit; the seventh is the SSID byte. Real AX.25
// reserves bits 5-6 of that byte (the teacher's ax25_pad.go sets them
// high unconditionally, `SSID_SPARE`), so the byte is built as
// `0x60 | (ssid << 1) | last` rather than spec.md's literal `(ssid <<
// 1) | last` — the worked example in spec.md §8 (S1) only reproduces
// with the reserved bits set, so that's the convention this encoder
// follows. No case normalization is performed.
func EncodeAddress(call string, ssid byte, last bool) ([7]byte, error) {
	var addr [7]byte

	if len(call) > 6 {
		return addr, fmt.Errorf("ax25: address: %w: callsign %q longer than 6 characters", ErrInvalidInput, call)
	}
	if ssid > 63 {
		return addr, fmt.Errorf("ax25: address: %w: ssid %d exceeds 6 bits", ErrInvalidInput, ssid)
	}

	for i := 0; i < 6; i++ {
		var c byte = ' '
		if i < len(call) {
			c = call[i]
		}
		addr[i] = c << 1
	}

	var b byte = 0x60 | (ssid << 1)
	if last {
		b |= 0x01
	}
	addr[6] = b

	return addr, nil
}

// DecodeAddress recovers the space-trimmed callsign, the SSID, and the
// last-address flag from a 7-byte field built by EncodeAddress. Only the
// low four bits of the SSID come back: for SSIDs 16-63 the shifted SSID
// overlaps the reserved 0x60 bits EncodeAddress sets, so those SSIDs
// decode as ssid & 0x0F.
func DecodeAddress(addr [7]byte) (call string, ssid byte, last bool) {
	var buf [6]byte
	for i := 0; i < 6; i++ {
		buf[i] = addr[i] >> 1
	}
	var end = 6
	for end > 0 && buf[end-1] == ' ' {
		end--
	}
	call = string(buf[:end])
	ssid = (addr[6] &^ 0x60) >> 1
	last = addr[6]&0x01 != 0
	return call, ssid, last
}
