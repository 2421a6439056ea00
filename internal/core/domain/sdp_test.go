package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func sdpBody(media ...string) string {
	lines := []string{
		"v=0",
		"o=- 4611731400430051336 2 IN IP4 127.0.0.1",
		"s=-",
		"c=IN IP4 0.0.0.0",
		"t=0 0",
	}
	for i, m := range media {
		lines = append(lines,
			"m="+m+" 9 UDP/TLS/RTP/SAVPF 96",
			"a=mid:"+string(rune('0'+i)),
		)
	}
	return strings.Join(lines, "\r\n") + "\r\n"
}

func wrap(t *testing.T, sdp string) []byte {
	t.Helper()
	out, err := json.Marshal(map[string]string{"type": "offer", "sdp": sdp})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestIsVideoSignal(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
		want    bool
	}{
		{"audio only", nil, false},
		{"video call", nil, true},
		{"audio and video", nil, true},
		{"empty payload", []byte{}, false},
		{"garbage payload", []byte("not an offer at all"), false},
		{"wrapper without sdp", []byte(`{"type":"offer"}`), false},
	}
	cases[0].payload = wrap(t, sdpBody("audio"))
	cases[1].payload = wrap(t, sdpBody("video"))
	cases[2].payload = wrap(t, sdpBody("audio", "video"))

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsVideoSignal(tc.payload); got != tc.want {
				t.Fatalf("IsVideoSignal = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsVideoSignalBareSDP(t *testing.T) {
	if !IsVideoSignal([]byte(sdpBody("video"))) {
		t.Fatal("bare SDP with a video section should classify as video")
	}
	if IsVideoSignal([]byte(sdpBody("audio"))) {
		t.Fatal("bare audio SDP should classify as audio")
	}
}
