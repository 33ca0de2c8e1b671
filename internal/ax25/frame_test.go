package ax25

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildFrameBeacon covers scenario S1: a single BEACON frame with a
// 5-byte payload. The dest/source address bytes, control/PID, fragment
// header, and payload are checked against the algorithm in spec.md
// §3/§4.5/§4.6 rather than the literal worked hex in spec.md §8, whose
// destination-address bytes don't reduce to "CQ" under that same
// algorithm (see DESIGN.md) — the source address half of that same
// worked example does decode correctly and anchors the shift+reserved-
// bit convention this test asserts.
func TestBuildFrameBeacon(t *testing.T) {
	var cfg = LinkConfig{SourceCall: "N0CALL", SourceSSID: 0, DestCall: "CQ", DestSSID: 0}
	var frame, err = BuildSingleFrame(cfg, TypeBeacon, []byte("HELLO"))
	require.NoError(t, err)

	var want = []byte{
		0x7E,
		0x86, 0xA2, 0x40, 0x40, 0x40, 0x40, 0x60, // dest "CQ", last=0
		0x9C, 0x60, 0x86, 0x82, 0x98, 0x98, 0x61, // source "N0CALL", last=1
		0x03, 0xF0, // control, PID
		0x00, 0x00, 0x00, 0x00, 0x01, // fragment header: BEACON, seq 0, total 1
		0x48, 0x45, 0x4C, 0x4C, 0x4F, // "HELLO"
	}
	require.True(t, len(frame) >= len(want)+3)
	assert.Equal(t, want, frame[:len(want)])
	assert.Equal(t, byte(0x7E), frame[0])
	assert.Equal(t, byte(0x7E), frame[len(frame)-1])
	assert.Len(t, frame, len(want)+2+1) // +FCS(2) +closing flag
}

func TestBuildFrameRejectsOversizedPayload(t *testing.T) {
	var cfg = LinkConfig{SourceCall: "N0CALL", DestCall: "CQ"}
	var _, err = BuildSingleFrame(cfg, TypeBeacon, make([]byte, 257))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBuildParseFrameRoundTrip(t *testing.T) {
	var cfg = LinkConfig{SourceCall: "KD9XYZ", SourceSSID: 5, DestCall: "APRS", DestSSID: 0}
	var frame, err = BuildFrame(cfg, TypeDataFirst, 3, 9, []byte("some payload bytes"))
	require.NoError(t, err)

	var decoded, parseErr = ParseFrame(frame, true)
	require.NoError(t, parseErr)
	assert.Equal(t, "KD9XYZ", decoded.SourceCall)
	assert.Equal(t, byte(5), decoded.SourceSSID)
	assert.Equal(t, "APRS", decoded.DestCall)
	assert.Equal(t, TypeDataFirst, decoded.Type)
	assert.Equal(t, uint16(3), decoded.Sequence)
	assert.Equal(t, uint16(9), decoded.Total)
	assert.Equal(t, []byte("some payload bytes"), decoded.Payload)
}

func TestParseFrameDetectsCorruptedFCS(t *testing.T) {
	var cfg = LinkConfig{SourceCall: "N0CALL", DestCall: "CQ"}
	var frame, err = BuildSingleFrame(cfg, TypeMessage, []byte("hi"))
	require.NoError(t, err)
	frame[len(frame)-3] ^= 0xFF // corrupt the FCS low byte, so the FCS no longer matches

	var _, parseErr = ParseFrame(frame, false)
	assert.ErrorIs(t, parseErr, ErrParseError)
}

func TestParseFrameMessageHasNoFragmentHeader(t *testing.T) {
	var cfg = LinkConfig{SourceCall: "N0CALL", DestCall: "CQ"}
	var frame, err = BuildSingleFrame(cfg, TypeMessage, []byte("plain text"))
	require.NoError(t, err)

	var decoded, parseErr = ParseFrame(frame, false)
	require.NoError(t, parseErr)
	assert.Equal(t, TypeMessage, decoded.Type)
	assert.Equal(t, []byte("plain text"), decoded.Payload)
}

func TestFindFrameLocatesFrameWithinZeroPadding(t *testing.T) {
	var cfg = LinkConfig{SourceCall: "N0CALL", DestCall: "CQ"}
	var frame, err = BuildSingleFrame(cfg, TypeMessage, []byte("padded"))
	require.NoError(t, err)

	var padded = append(append([]byte{}, frame...), make([]byte, 40)...)
	var found, ok = FindFrame(padded)
	require.True(t, ok)
	assert.Equal(t, frame, found)
}

func TestFindFrameReportsFalseWithoutFlags(t *testing.T) {
	var _, ok = FindFrame(make([]byte, 16))
	assert.False(t, ok)
}
