package ax25

import "errors"

// ErrInvalidInput covers every contract violation spec.md §7 assigns to
// the InvalidInput kind for this package: an oversized payload, an
// overlong callsign, or an out-of-range SSID.
var ErrInvalidInput = errors.New("ax25: invalid input")

// ErrParseError covers the ParseError kind spec.md §7 assigns to
// malformed frame bytes: missing flags, a bad FCS, or a truncated body.
var ErrParseError = errors.New("ax25: parse error")
