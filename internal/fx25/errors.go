package fx25

import "errors"

// ErrInvalidInput covers the PayloadTooLarge case spec.md §4.8/§7
// assigns to this layer: the AX.25 frame doesn't fit the chosen tag's
// data capacity, or an unknown tag number was requested.
var ErrInvalidInput = errors.New("fx25: invalid input")

// ErrParseError is returned when a received block's correlation tag
// doesn't match any table entry within CloseEnough bits, or the block
// is too short to contain one.
var ErrParseError = errors.New("fx25: parse error")

// ErrUncorrectable is returned when the RS decoder gives up on the
// wrapped codeword; see internal/rs.ErrUncorrectable.
var ErrUncorrectable = errors.New("fx25: uncorrectable block")
