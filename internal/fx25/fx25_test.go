package fx25

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestWrapDefaultTagProducesFixedLayout(t *testing.T) {
	var frame = []byte("a short AX.25 frame")
	var wrapped, err = WrapDefault(frame)
	require.NoError(t, err)

	// spec.md §4.8: 8-byte tag + 255-byte codeword = 263 bytes for the
	// default (full-length RS(255,223)) case.
	assert.Len(t, wrapped, 263)
	assert.Equal(t, uint64(0x6E260B1AC5835FAE), readTagLE(wrapped[:8]))
}

func TestWrapRejectsOverlongFrame(t *testing.T) {
	var _, err = Wrap(DefaultTag, make([]byte, 224))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWrapRejectsUnknownTag(t *testing.T) {
	var _, err = Wrap(0x0C, []byte("x"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWrapUnwrapRoundTripAllTags(t *testing.T) {
	for n := CTagMin; n <= CTagMax; n++ {
		var tag, _ = LookupTag(n)
		var frame = make([]byte, tag.KDataRadio)
		for i := range frame {
			frame[i] = byte(i)
		}

		var wrapped, err = Wrap(n, frame)
		require.NoErrorf(t, err, "tag 0x%02x", n)
		assert.Lenf(t, wrapped, tagLen+tag.NBlockRadio, "tag 0x%02x", n)

		var data, matched, count, unwrapErr = Unwrap(wrapped)
		require.NoErrorf(t, unwrapErr, "tag 0x%02x", n)
		assert.Equal(t, 0, count)
		assert.Equal(t, n, matched.Number)
		assert.Equal(t, frame, data[:tag.KDataRadio])
	}
}

func TestWrapUnwrapCorrectsErrors(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var tag, _ = LookupTag(DefaultTag)
		var frame = rapid.SliceOfN(rapid.Byte(), tag.KDataRadio, tag.KDataRadio).Draw(t, "frame")

		var wrapped, err = Wrap(DefaultTag, frame)
		require.NoError(t, err)

		var numErrors = rapid.IntRange(0, 16).Draw(t, "numErrors")
		var seen = make(map[int]bool)
		for len(seen) < numErrors {
			// Only corrupt bytes within the RS codeword, not the
			// correlation tag itself (tag corruption is exercised by
			// TestMatchTagTolerance below).
			var pos = rapid.IntRange(8, len(wrapped)-1).Draw(t, "pos")
			if seen[pos] {
				continue
			}
			seen[pos] = true
			wrapped[pos] ^= byte(rapid.IntRange(1, 255).Draw(t, "flip"))
		}

		var data, _, _, unwrapErr = Unwrap(wrapped)
		require.NoError(t, unwrapErr)
		assert.Equal(t, frame, data[:tag.KDataRadio])
	})
}

func TestUnwrapRejectsShortBlock(t *testing.T) {
	var _, _, _, err = Unwrap(make([]byte, 4))
	assert.ErrorIs(t, err, ErrParseError)
}

func TestUnwrapRejectsUnrecognizedTag(t *testing.T) {
	var garbage = make([]byte, 263)
	for i := range garbage {
		garbage[i] = 0x55
	}
	var _, _, _, err = Unwrap(garbage)
	assert.ErrorIs(t, err, ErrParseError)
}

func TestMatchTagTolerance(t *testing.T) {
	var tag, _ = LookupTag(DefaultTag)
	var corrupted = tag.Value ^ 0xFF // 8 bits flipped, within CloseEnough

	var matched, ok = MatchTag(corrupted)
	assert.True(t, ok)
	assert.Equal(t, DefaultTag, matched.Number)

	var _, ok2 = MatchTag(^tag.Value) // all 64 bits flipped: no match
	assert.False(t, ok2)
}

// TestPickModeMatchesTeacherAssertions ports a representative subset of
// the fx25_init assertions verifying fx25_pick_mode's behavior.
func TestPickModeMatchesTeacherAssertions(t *testing.T) {
	assert.Equal(t, 1, PickMode(100+1, 239))
	assert.Equal(t, -1, PickMode(100+1, 240))
	assert.Equal(t, 5, PickMode(100+5, 223))
	assert.Equal(t, -1, PickMode(100+5, 224))

	assert.Equal(t, 4, PickMode(16, 32))
	assert.Equal(t, 3, PickMode(16, 64))
	assert.Equal(t, 2, PickMode(16, 128))
	assert.Equal(t, 1, PickMode(16, 239))
	assert.Equal(t, -1, PickMode(16, 240))

	assert.Equal(t, 8, PickMode(32, 32))
	assert.Equal(t, 5, PickMode(32, 223))

	assert.Equal(t, 11, PickMode(64, 64))
	assert.Equal(t, 9, PickMode(64, 191))

	assert.Equal(t, -1, PickMode(0, 10))
	assert.Equal(t, 4, PickMode(1, 32))
	assert.Equal(t, 1, PickMode(1, 239))
	assert.Equal(t, -1, PickMode(1, 240))
}
