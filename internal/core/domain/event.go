package domain

import "encoding/json"

// Event is one outbound protocol message. Every concrete event carries its
// wire tag in the "event" field and a fixed field set for that tag.
type Event interface {
	Name() string
}

type header struct {
	Event string `json:"event"`
}

func (h header) Name() string { return h.Event }

type IncomingCall struct {
	header
	Signal json.RawMessage `json:"signal"`
	From   string          `json:"from"`
	RoomID string          `json:"roomId,omitempty"`
}

func NewIncomingCall(from, roomID string, signal json.RawMessage) IncomingCall {
	return IncomingCall{header{"incomingCall"}, signal, from, roomID}
}

// CallAccepted keeps the legacy bare-signal shape when the answer carries no
// room id: From and RoomID are omitted unless set.
type CallAccepted struct {
	header
	Signal json.RawMessage `json:"signal"`
	From   string          `json:"from,omitempty"`
	RoomID string          `json:"roomId,omitempty"`
}

func NewCallAccepted(from, roomID string, signal json.RawMessage) CallAccepted {
	return CallAccepted{header{"callAccepted"}, signal, from, roomID}
}

type CallRejected struct {
	header
	From   string `json:"from"`
	Reason string `json:"reason"`
}

func NewCallRejected(from, reason string) CallRejected {
	return CallRejected{header{"callRejected"}, from, reason}
}

type CallCanceled struct {
	header
	From string `json:"from"`
}

func NewCallCanceled(from string) CallCanceled {
	return CallCanceled{header{"callCanceled"}, from}
}

type CallEnded struct {
	header
	From string `json:"from"`
}

func NewCallEnded(from string) CallEnded {
	return CallEnded{header{"callEnded"}, from}
}

type CallFailed struct {
	header
	From   string `json:"from"`
	Reason string `json:"reason"`
}

func NewCallFailed(from, reason string) CallFailed {
	return CallFailed{header{"callFailed"}, from, reason}
}

type ICECandidate struct {
	header
	From      string          `json:"from"`
	Candidate json.RawMessage `json:"candidate"`
}

func NewICECandidate(from string, candidate json.RawMessage) ICECandidate {
	return ICECandidate{header{"iceCandidate"}, from, candidate}
}

type RoomInvite struct {
	header
	RoomID       string   `json:"roomId"`
	From         string   `json:"from"`
	Participants []string `json:"participants"`
	IsVideoCall  bool     `json:"isVideoCall"`
}

func NewRoomInvite(roomID, from string, participants []string, isVideo bool) RoomInvite {
	return RoomInvite{header{"roomInvite"}, roomID, from, participants, isVideo}
}

type RoomInviteFailed struct {
	header
	RoomID string `json:"roomId"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

func NewRoomInviteFailed(roomID, to, reason string) RoomInviteFailed {
	return RoomInviteFailed{header{"roomInviteFailed"}, roomID, to, reason}
}

type RoomInviteCanceled struct {
	header
	RoomID string `json:"roomId"`
	From   string `json:"from"`
}

func NewRoomInviteCanceled(roomID, from string) RoomInviteCanceled {
	return RoomInviteCanceled{header{"roomInviteCanceled"}, roomID, from}
}

type RoomInviteDeclined struct {
	header
	RoomID string `json:"roomId"`
	From   string `json:"from"`
}

func NewRoomInviteDeclined(roomID, from string) RoomInviteDeclined {
	return RoomInviteDeclined{header{"roomInviteDeclined"}, roomID, from}
}

type RoomInviteAccepted struct {
	header
	RoomID string `json:"roomId"`
	From   string `json:"from"`
}

func NewRoomInviteAccepted(roomID, from string) RoomInviteAccepted {
	return RoomInviteAccepted{header{"roomInviteAccepted"}, roomID, from}
}

type RoomJoined struct {
	header
	RoomID       string   `json:"roomId"`
	Participants []string `json:"participants"`
	IsVideoCall  bool     `json:"isVideoCall"`
}

func NewRoomJoined(roomID string, participants []string, isVideo bool) RoomJoined {
	return RoomJoined{header{"roomJoined"}, roomID, participants, isVideo}
}

type RoomJoinFailed struct {
	header
	RoomID string `json:"roomId"`
	Reason string `json:"reason"`
}

func NewRoomJoinFailed(roomID, reason string) RoomJoinFailed {
	return RoomJoinFailed{header{"roomJoinFailed"}, roomID, reason}
}

type RoomParticipantJoined struct {
	header
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

func NewRoomParticipantJoined(roomID, userID string) RoomParticipantJoined {
	return RoomParticipantJoined{header{"roomParticipantJoined"}, roomID, userID}
}

type RoomParticipantLeft struct {
	header
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

func NewRoomParticipantLeft(roomID, userID string) RoomParticipantLeft {
	return RoomParticipantLeft{header{"roomParticipantLeft"}, roomID, userID}
}

type RoomSignal struct {
	header
	RoomID string          `json:"roomId"`
	From   string          `json:"from"`
	Signal json.RawMessage `json:"signal"`
}

func NewRoomSignal(roomID, from string, signal json.RawMessage) RoomSignal {
	return RoomSignal{header{"roomSignal"}, roomID, from, signal}
}

type RoomICECandidate struct {
	header
	RoomID    string          `json:"roomId"`
	From      string          `json:"from"`
	Candidate json.RawMessage `json:"candidate"`
}

func NewRoomICECandidate(roomID, from string, candidate json.RawMessage) RoomICECandidate {
	return RoomICECandidate{header{"roomIceCandidate"}, roomID, from, candidate}
}
