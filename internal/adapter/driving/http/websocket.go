package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Hiba-Rafique/Calling-System/internal/core/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// TODO: only for dev
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSClient is one live user connection. Writes are serialized; the coordinator
// may emit from any connection's handler or from a deadline timer.
type WSClient struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex
}

func (c *WSClient) ID() string {
	return c.id
}

func (c *WSClient) Send(ev domain.Event) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(ev)
}

func (c *WSClient) Close() error {
	return c.conn.Close()
}

// inboundEnvelope is the decode vehicle for every inbound event; the dispatch
// switch validates the fixed field set per tag before the coordinator is
// touched.
type inboundEnvelope struct {
	Event       string          `json:"event"`
	User        string          `json:"user,omitempty"`
	CalleeAlias string          `json:"calleeAlias,omitempty"`
	CallerAlias string          `json:"callerAlias,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	To          string          `json:"to,omitempty"`
	From        string          `json:"from,omitempty"`
	Signal      json.RawMessage `json:"signal,omitempty"`
	Candidate   json.RawMessage `json:"candidate,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	RoomID      string          `json:"roomId,omitempty"`
}

// HTTP handler
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	client := &WSClient{
		id:   uuid.NewString(),
		conn: conn,
	}

	l := log.With().Str("conn_id", client.id).Logger()
	l.Info().Msg("New client connected")

	var user string

	defer func() {
		l.Info().Msg("Client disconnected")
		if user != "" {
			h.Coordinator.Unregister(user, client)
		}
		conn.Close()
	}()

	for {
		var req inboundEnvelope
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			break
		}
		user = h.dispatch(l, client, user, req)
	}
}

// dispatch validates one inbound event and invokes the coordinator. An event
// missing a required field is dropped without a reply. Returns the identity
// the connection is registered under.
func (h *Handler) dispatch(l zerolog.Logger, client *WSClient, user string, req inboundEnvelope) string {
	drop := func() string {
		l.Debug().Str("event", req.Event).Msg("Dropping event with missing fields")
		return user
	}

	switch req.Event {
	case "register":
		if req.User == "" {
			return drop()
		}
		if user != "" && user != req.User {
			h.Coordinator.Unregister(user, client)
		}
		h.Coordinator.Register(req.User, client)
		return req.User

	case "callUser":
		if req.CalleeAlias == "" || req.CallerAlias == "" || len(req.Payload) == 0 {
			return drop()
		}
		h.Coordinator.InitiateCall(req.CallerAlias, req.CalleeAlias, req.Payload)

	case "answerCall":
		if req.To == "" || len(req.Signal) == 0 {
			return drop()
		}
		from := req.From
		if from == "" {
			from = user
		}
		h.Coordinator.Answer(from, req.To, req.RoomID, req.Signal)

	case "rejectCall":
		if req.To == "" || req.From == "" {
			return drop()
		}
		h.Coordinator.Reject(req.From, req.To, req.Reason)

	case "cancelCall":
		if req.To == "" || req.From == "" {
			return drop()
		}
		h.Coordinator.Cancel(req.From, req.To)

	case "callFailed":
		if req.To == "" || req.From == "" {
			return drop()
		}
		h.Coordinator.Fail(req.From, req.To, req.Reason)

	case "iceCandidate":
		if req.To == "" || req.From == "" || len(req.Candidate) == 0 {
			return drop()
		}
		h.Coordinator.RelayICECandidate(req.From, req.To, req.Candidate)

	case "endCall":
		if req.To == "" || req.From == "" {
			return drop()
		}
		h.Coordinator.EndCall(req.From, req.To)

	case "inviteToRoom":
		if req.RoomID == "" || req.To == "" || req.From == "" {
			return drop()
		}
		h.Coordinator.InviteToRoom(req.RoomID, req.From, req.To)

	case "cancelRoomInvite":
		if req.RoomID == "" || req.To == "" || req.From == "" {
			return drop()
		}
		h.Coordinator.CancelRoomInvite(req.RoomID, req.From, req.To)

	case "declineRoomInvite":
		if req.RoomID == "" || req.From == "" {
			return drop()
		}
		h.Coordinator.DeclineRoomInvite(req.RoomID, req.From)

	case "acceptRoomInvite":
		if req.RoomID == "" || req.From == "" {
			return drop()
		}
		h.Coordinator.AcceptRoomInvite(req.RoomID, req.From)

	case "roomSignal":
		if req.RoomID == "" || req.To == "" || req.From == "" || len(req.Signal) == 0 {
			return drop()
		}
		h.Coordinator.RelayRoomSignal(req.RoomID, req.From, req.To, req.Signal)

	case "roomIceCandidate":
		if req.RoomID == "" || req.To == "" || req.From == "" || len(req.Candidate) == 0 {
			return drop()
		}
		h.Coordinator.RelayRoomICECandidate(req.RoomID, req.From, req.To, req.Candidate)

	default:
		l.Debug().Str("event", req.Event).Msg("Unknown event")
	}
	return user
}
