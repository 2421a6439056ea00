package domain

// CallStatus is the lifecycle status of a call-log record.
type CallStatus string

const (
	StatusOngoing   CallStatus = "ongoing"
	StatusMissed    CallStatus = "missed"
	StatusCompleted CallStatus = "completed"
)

// Terminal reason codes carried by failure events.
const (
	ReasonBusy        = "busy"
	ReasonOffline     = "offline"
	ReasonInvalidRoom = "invalid_room"
	ReasonRoomFull    = "room_full"
	ReasonRejected    = "rejected"
	ReasonFailed      = "failed"
)

// Pair is an unordered caller/callee pair, used to correlate a live call with
// its call-log record.
type Pair struct {
	A, B string
}

func NewPair(a, b string) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// PushNote is the wake-up payload handed to the push notifier so an offline
// device can surface the ringing UI.
type PushNote struct {
	From    string `json:"from"`
	RoomID  string `json:"roomId"`
	IsVideo bool   `json:"isVideo"`
}
