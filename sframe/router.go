package sframe

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// RouterConfig is the static superframe geometry. AuthFrameSize is 32 for
// the legacy truncated signature or 64 for the full signature;
// VoiceFrameSize is 48 in the reference deployment.
type RouterConfig struct {
	EnableSigning  bool
	AuthFrameSize  int
	VoiceFrameSize int
}

func (c RouterConfig) validate() error {
	if c.VoiceFrameSize <= 0 {
		return fmt.Errorf("router: voice frame size %d", c.VoiceFrameSize)
	}
	if c.EnableSigning && c.AuthFrameSize <= 0 {
		return fmt.Errorf("router: auth frame size %d with signing enabled", c.AuthFrameSize)
	}
	return nil
}

// Router splits one concatenated superframe unit into typed sub-frames and
// publishes them on the auth and voice output channels. It keeps no state
// across calls: every decision derives from the configuration and the one
// input unit. The host pipeline must guarantee non-reentrant invocation.
type Router struct {
	cfg      RouterConfig
	authOut  chan<- SubFrame
	voiceOut chan<- SubFrame
	log      zerolog.Logger
}

// NewRouter wires a router to its two output channels. voiceOut is required;
// authOut may be nil only when signing is disabled.
func NewRouter(cfg RouterConfig, authOut, voiceOut chan<- SubFrame, log zerolog.Logger) (*Router, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if voiceOut == nil {
		return nil, errors.New("router: nil voice output channel")
	}
	if cfg.EnableSigning && authOut == nil {
		return nil, errors.New("router: nil auth output channel with signing enabled")
	}
	return &Router{cfg: cfg, authOut: authOut, voiceOut: voiceOut, log: log}, nil
}

// Route consumes one unit. A unit with no payload is dropped with a
// diagnostic; a trailing remainder shorter than one voice frame is discarded
// silently. Neither case is an error and neither interrupts the pipeline.
func (r *Router) Route(u Unit) {
	if u.Payload == nil {
		r.log.Warn().Msg("router: dropping unit with missing payload")
		recordUnitDropped()
		return
	}
	off := 0
	frameNum := 0
	if r.cfg.EnableSigning && len(u.Payload) >= r.cfg.AuthFrameSize {
		r.authOut <- r.subFrame(u, u.Payload[:r.cfg.AuthFrameSize], FrameTypeAuth, 0)
		recordFrameRouted(FrameTypeAuth)
		off = r.cfg.AuthFrameSize
		frameNum = 1
	}
	for len(u.Payload)-off >= r.cfg.VoiceFrameSize {
		r.voiceOut <- r.subFrame(u, u.Payload[off:off+r.cfg.VoiceFrameSize], FrameTypeVoice, frameNum)
		recordFrameRouted(FrameTypeVoice)
		off += r.cfg.VoiceFrameSize
		frameNum++
	}
	if rem := len(u.Payload) - off; rem > 0 {
		recordBytesDiscarded(rem)
	}
}

func (r *Router) subFrame(u Unit, chunk []byte, frameType string, frameNum int) SubFrame {
	payload := make([]byte, len(chunk))
	copy(payload, chunk)
	meta := u.Meta.Clone()
	meta[KeyFrameType] = frameType
	meta[KeyFrameNum] = frameNum
	return SubFrame{Meta: meta, Payload: payload}
}
