package hexdump

import "errors"

// ErrParseError marks a token in a hex-dump interchange file that isn't
// valid hex. The parsers use it to drop the packet being read rather
// than returning it to the caller.
var ErrParseError = errors.New("hexdump: parse error")
