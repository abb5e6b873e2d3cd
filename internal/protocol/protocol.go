// Package protocol is the JSON wire envelope spoken over the datagram socket.
//
// Requests carry an "action" field and, for join_room, a "room_code". Replies
// echo the same shape. send_transform datagrams are never re-encoded: the
// relay forwards the original bytes.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	ActionCreateRoom    = "create_room"
	ActionJoinRoom      = "join_room"
	ActionLeaveRoom     = "leave_room"
	ActionSendTransform = "send_transform"
	ActionPing          = "ping"

	ActionRoomCreated = "room_created"
	ActionJoinedRoom  = "joined_room"
	ActionLeftRoom    = "left_room"
	ActionPong        = "pong"
	ActionError       = "error"
)

const (
	MsgRoomNotFound = "Room not found"
	MsgNotInRoom    = "Not in a room"
	MsgRateLimited  = "Rate limited"
	MsgUnavailable  = "Room unavailable"
)

var (
	ErrDecode        = errors.New("decode envelope")
	ErrInvalidUTF8   = fmt.Errorf("%w: invalid utf-8", ErrDecode)
	ErrMissingAction = fmt.Errorf("%w: missing action", ErrDecode)
)

// Envelope is the decoded part of a request the router needs. Only action is
// typed; room_code stays raw because transform payloads may reuse the key
// with any shape. Extra fields are ignored.
type Envelope struct {
	Action   string          `json:"action"`
	RoomCode json.RawMessage `json:"room_code,omitempty"`
}

// Code returns room_code when it is a non-empty JSON string.
func (e Envelope) Code() (string, bool) {
	if len(e.RoomCode) == 0 {
		return "", false
	}
	var code string
	if err := json.Unmarshal(e.RoomCode, &code); err != nil {
		return "", false
	}
	return code, code != ""
}

func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if !utf8.Valid(data) {
		return env, ErrInvalidUTF8
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if env.Action == "" {
		return env, ErrMissingAction
	}
	return env, nil
}

// Reply is a server-to-client message.
type Reply struct {
	Action   string `json:"action"`
	RoomCode string `json:"room_code,omitempty"`
	Message  string `json:"message,omitempty"`
}

func RoomCreated(code string) Reply { return Reply{Action: ActionRoomCreated, RoomCode: code} }
func JoinedRoom(code string) Reply  { return Reply{Action: ActionJoinedRoom, RoomCode: code} }
func LeftRoom(code string) Reply    { return Reply{Action: ActionLeftRoom, RoomCode: code} }
func Pong() Reply                   { return Reply{Action: ActionPong} }
func Error(msg string) Reply        { return Reply{Action: ActionError, Message: msg} }

func Encode(r Reply) ([]byte, error) {
	return json.Marshal(r)
}
