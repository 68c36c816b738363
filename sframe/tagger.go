package sframe

// DefaultSuperframeSize is the reference cycle length: one authentication
// frame followed by 24 voice frames.
const DefaultSuperframeSize = 25

// Tag marks a frame boundary in the sample stream. Offset is the absolute
// sample position of the boundary.
type Tag struct {
	Offset    uint64
	FrameType string
}

// Tagger annotates a raw sample stream with best-effort frame-type tags.
// Samples pass through untouched; each invocation is treated as one frame's
// worth of samples, so the tag placed at the block start is a
// hierarchical-block routing hint, not a sample-accurate boundary. Exact
// boundary detection belongs to the downstream superframe parser.
type Tagger struct {
	superframeSize int

	frameCounter int    // position in the superframe cycle, [0, superframeSize)
	samplePos    uint64 // absolute samples processed so far
}

// NewTagger builds a tagger for the given cycle length; values < 1 fall back
// to DefaultSuperframeSize.
func NewTagger(superframeSize int) *Tagger {
	if superframeSize < 1 {
		superframeSize = DefaultSuperframeSize
	}
	return &Tagger{superframeSize: superframeSize}
}

// Process passes block through unchanged and returns the tags attached at
// this invocation's write position: frame_type "auth" at cycle position 0,
// "voice" otherwise. An empty block advances nothing and emits nothing.
func (t *Tagger) Process(block []float32) []Tag {
	if len(block) == 0 {
		return nil
	}
	frameType := FrameTypeVoice
	if t.frameCounter == 0 {
		frameType = FrameTypeAuth
	}
	tag := Tag{Offset: t.samplePos, FrameType: frameType}
	recordTagEmitted(frameType)
	t.frameCounter = (t.frameCounter + 1) % t.superframeSize
	t.samplePos += uint64(len(block))
	return []Tag{tag}
}

// CyclePosition reports the current 0-based position in the superframe
// cycle, i.e. the classification the next invocation will use.
func (t *Tagger) CyclePosition() int {
	return t.frameCounter
}
