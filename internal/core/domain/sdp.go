package domain

import (
	"encoding/json"

	"github.com/pion/sdp/v3"
)

// IsVideoSignal reports whether a negotiation payload describes a session with
// a video media section. Payloads are commonly the {"type","sdp"} offer shape;
// a bare SDP body is accepted too. Anything that cannot be parsed classifies
// as audio-only, never an error.
func IsVideoSignal(payload []byte) bool {
	if len(payload) == 0 {
		return false
	}

	raw := payload
	var wrapped struct {
		SDP string `json:"sdp"`
	}
	if err := json.Unmarshal(payload, &wrapped); err == nil && wrapped.SDP != "" {
		raw = []byte(wrapped.SDP)
	}

	var desc sdp.SessionDescription
	if err := desc.Unmarshal(raw); err != nil {
		return false
	}
	for _, m := range desc.MediaDescriptions {
		if m.MediaName.Media == "video" {
			return true
		}
	}
	return false
}
