package domain

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrNotInRoom    = errors.New("not in a room")
)

// RoomCode is the short public identifier clients use to join a room.
type RoomCode string

type Room struct {
	Code RoomCode
}
