package sframe

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, cfg RouterConfig) (*Router, chan SubFrame, chan SubFrame) {
	t.Helper()
	authOut := make(chan SubFrame, 64)
	voiceOut := make(chan SubFrame, 64)
	r, err := NewRouter(cfg, authOut, voiceOut, zerolog.Nop())
	require.NoError(t, err)
	return r, authOut, voiceOut
}

func drain(ch chan SubFrame) []SubFrame {
	var out []SubFrame
	for {
		select {
		case sf := <-ch:
			out = append(out, sf)
		default:
			return out
		}
	}
}

func patternPayload(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i)
	}
	return p
}

func TestRouteSignedSuperframe(t *testing.T) {
	// One 32-byte auth frame followed by 24 voice frames of 48 bytes.
	r, authOut, voiceOut := newTestRouter(t, RouterConfig{
		EnableSigning:  true,
		AuthFrameSize:  32,
		VoiceFrameSize: 48,
	})
	payload := patternPayload(32 + 48*24)
	r.Route(Unit{Meta: Metadata{"src": "modem"}, Payload: payload})

	auth := drain(authOut)
	require.Len(t, auth, 1)
	require.Equal(t, FrameTypeAuth, auth[0].FrameType())
	require.Equal(t, 0, auth[0].FrameNum())
	require.Equal(t, payload[:32], auth[0].Payload)

	voice := drain(voiceOut)
	require.Len(t, voice, 24)
	for i, sf := range voice {
		require.Equal(t, FrameTypeVoice, sf.FrameType())
		require.Equal(t, i+1, sf.FrameNum())
		require.Len(t, sf.Payload, 48)
		require.Equal(t, payload[32+i*48:32+(i+1)*48], sf.Payload)
	}
}

func TestRouteUnsignedSuperframe(t *testing.T) {
	r, authOut, voiceOut := newTestRouter(t, RouterConfig{
		EnableSigning:  false,
		AuthFrameSize:  32,
		VoiceFrameSize: 48,
	})
	r.Route(Unit{Meta: Metadata{}, Payload: patternPayload(48 * 3)})

	require.Empty(t, drain(authOut))
	voice := drain(voiceOut)
	require.Len(t, voice, 3)
	for i, sf := range voice {
		require.Equal(t, FrameTypeVoice, sf.FrameType())
		require.Equal(t, i, sf.FrameNum())
	}
}

func TestRouteDiscardsTrailingRemainder(t *testing.T) {
	r, authOut, voiceOut := newTestRouter(t, RouterConfig{
		EnableSigning:  true,
		AuthFrameSize:  32,
		VoiceFrameSize: 48,
	})
	r.Route(Unit{Meta: Metadata{}, Payload: patternPayload(32 + 48*24 + 10)})

	require.Len(t, drain(authOut), 1)
	require.Len(t, drain(voiceOut), 24)
}

func TestRouteShortPayloadEmitsNothing(t *testing.T) {
	r, authOut, voiceOut := newTestRouter(t, RouterConfig{
		EnableSigning:  false,
		AuthFrameSize:  32,
		VoiceFrameSize: 48,
	})
	r.Route(Unit{Meta: Metadata{}, Payload: patternPayload(47)})
	require.Empty(t, drain(authOut))
	require.Empty(t, drain(voiceOut))
}

func TestRouteMetadataPropagation(t *testing.T) {
	r, authOut, voiceOut := newTestRouter(t, RouterConfig{
		EnableSigning:  true,
		AuthFrameSize:  32,
		VoiceFrameSize: 48,
	})
	meta := Metadata{"channel": 3, "station": "VK2", KeyFrameType: "stale"}
	r.Route(Unit{Meta: meta, Payload: patternPayload(32 + 48*2)})

	auth := drain(authOut)
	voice := drain(voiceOut)
	require.Len(t, auth, 1)
	require.Len(t, voice, 2)

	for _, sf := range append(auth, voice...) {
		require.Equal(t, 3, sf.Meta["channel"])
		require.Equal(t, "VK2", sf.Meta["station"])
	}
	// frame_type is overwritten, never inherited.
	require.Equal(t, FrameTypeAuth, auth[0].Meta[KeyFrameType])
	require.Equal(t, FrameTypeVoice, voice[0].Meta[KeyFrameType])

	// No aliasing: mutating one emission must not leak anywhere.
	voice[0].Meta["station"] = "mutated"
	require.Equal(t, "VK2", voice[1].Meta["station"])
	require.Equal(t, "VK2", auth[0].Meta["station"])
	require.Equal(t, "VK2", meta["station"])
	require.Equal(t, "stale", meta[KeyFrameType])
}

func TestRouteDropsMissingPayload(t *testing.T) {
	r, authOut, voiceOut := newTestRouter(t, RouterConfig{
		EnableSigning:  true,
		AuthFrameSize:  32,
		VoiceFrameSize: 48,
	})
	require.NotPanics(t, func() {
		r.Route(Unit{Meta: Metadata{"k": "v"}})
	})
	require.Empty(t, drain(authOut))
	require.Empty(t, drain(voiceOut))
}

func TestRouteNilMetadata(t *testing.T) {
	// A unit with payload but no metadata still routes; emissions get fresh maps.
	r, _, voiceOut := newTestRouter(t, RouterConfig{
		EnableSigning:  false,
		AuthFrameSize:  32,
		VoiceFrameSize: 48,
	})
	r.Route(Unit{Payload: patternPayload(48)})
	voice := drain(voiceOut)
	require.Len(t, voice, 1)
	require.Equal(t, FrameTypeVoice, voice[0].FrameType())
	require.Equal(t, 0, voice[0].FrameNum())
}

func TestNewRouterConfigValidation(t *testing.T) {
	voiceOut := make(chan SubFrame, 1)
	authOut := make(chan SubFrame, 1)

	_, err := NewRouter(RouterConfig{VoiceFrameSize: 0}, authOut, voiceOut, zerolog.Nop())
	require.Error(t, err)

	_, err = NewRouter(RouterConfig{EnableSigning: true, VoiceFrameSize: 48}, authOut, voiceOut, zerolog.Nop())
	require.Error(t, err)

	_, err = NewRouter(RouterConfig{VoiceFrameSize: 48}, nil, voiceOut, zerolog.Nop())
	require.NoError(t, err)

	_, err = NewRouter(RouterConfig{EnableSigning: true, AuthFrameSize: 32, VoiceFrameSize: 48}, nil, voiceOut, zerolog.Nop())
	require.Error(t, err)
}
