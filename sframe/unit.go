// Package sframe demultiplexes the two-tier digital-voice superframe: one
// optional authentication frame followed by fixed-size voice frames. The
// Router and Tagger are driven by a single-threaded host pipeline; neither
// holds locks or blocks on I/O.
package sframe

// Metadata keys and frame_type values stamped onto every routed sub-frame.
const (
	KeyFrameType = "frame_type"
	KeyFrameNum  = "frame_num"

	FrameTypeAuth  = "auth"
	FrameTypeVoice = "voice"
)

// Metadata is the provenance mapping carried alongside frame payloads.
type Metadata map[string]any

// Clone returns an independent copy so routed sub-frames never alias the
// input unit's map (or each other's).
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m)+2)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Unit is one superframe cycle's transport payload with its metadata.
// Produced upstream, consumed exactly once by Router.Route.
type Unit struct {
	Meta    Metadata
	Payload []byte
}

// SubFrame is one fixed-size frame extracted from a Unit, stamped with
// frame_type and frame_num. Its payload and metadata are fresh copies.
type SubFrame struct {
	Meta    Metadata
	Payload []byte
}

// FrameType returns the frame_type stamp, or "" if absent.
func (s SubFrame) FrameType() string {
	t, _ := s.Meta[KeyFrameType].(string)
	return t
}

// FrameNum returns the frame_num stamp, or -1 if absent.
func (s SubFrame) FrameNum() int {
	n, ok := s.Meta[KeyFrameNum].(int)
	if !ok {
		return -1
	}
	return n
}
