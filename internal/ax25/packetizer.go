package ax25

// Fragment is one chunk produced by Packetize: a typed, sequenced slice
// of the original payload ready to hand to BuildFrame.
type Fragment struct {
	Type     FrameType
	Sequence uint16
	Total    uint16
	Payload  []byte
}

// Packetize implements spec.md §4.7: split payload into chunks of at
// most MaxPayload bytes, typing the first/middle/last chunk distinctly
// when there is more than one, and producing a single DATA_HEADER
// fragment otherwise. Only the final fragment may be shorter than
// MaxPayload.
func Packetize(payload []byte) []Fragment {
	var total = (len(payload) + MaxPayload - 1) / MaxPayload
	if total == 0 {
		total = 1
	}

	var fragments = make([]Fragment, 0, total)
	for i := 0; i < total; i++ {
		var start = i * MaxPayload
		var end = start + MaxPayload
		if end > len(payload) {
			end = len(payload)
		}

		var frameType FrameType
		switch {
		case total == 1:
			frameType = TypeDataHeader
		case i == 0:
			frameType = TypeDataFirst
		case i == total-1:
			frameType = TypeDataEnd
		default:
			frameType = TypeData
		}

		fragments = append(fragments, Fragment{
			Type:     frameType,
			Sequence: uint16(i),
			Total:    uint16(total),
			Payload:  payload[start:end],
		})
	}
	return fragments
}

// BuildFragmentFrame is a convenience wrapper combining BuildFrame with a
// Fragment produced by Packetize.
func BuildFragmentFrame(cfg LinkConfig, f Fragment) ([]byte, error) {
	return BuildFrame(cfg, f.Type, f.Sequence, f.Total, f.Payload)
}

// BuildSingleFrame builds a one-shot BEACON or MESSAGE frame: sequence 0,
// total 1, per spec.md §3 ("BEACON and MESSAGE are always single-frame").
func BuildSingleFrame(cfg LinkConfig, frameType FrameType, payload []byte) ([]byte, error) {
	return BuildFrame(cfg, frameType, 0, 1, payload)
}
