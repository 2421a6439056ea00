package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var roomNamespace = uuid.MustParse("9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d")

// NewRoomID derives an opaque room id from the founding participants and the
// moment of creation.
func NewRoomID(participants ...string) string {
	seed := strings.Join(participants, "|") + "|" + strconv.FormatInt(time.Now().UnixNano(), 10)
	return uuid.NewSHA1(roomNamespace, []byte(seed)).String()
}

// NewRecordID reserves an id for a call-log record before the record is
// persisted.
func NewRecordID() string {
	return uuid.NewString()
}
