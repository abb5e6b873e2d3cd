package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Envelope
		wantErr error
	}{
		{name: "create", in: `{"action":"create_room"}`, want: Envelope{Action: ActionCreateRoom}},
		{name: "join", in: `{"action":"join_room","room_code":"AB12C"}`, want: Envelope{Action: ActionJoinRoom, RoomCode: json.RawMessage(`"AB12C"`)}},
		{name: "transform with object room_code", in: `{"action":"send_transform","room_code":{"seq":7},"x":1}`, want: Envelope{Action: ActionSendTransform, RoomCode: json.RawMessage(`{"seq":7}`)}},
		{name: "numeric room_code", in: `{"action":"join_room","room_code":12345}`, want: Envelope{Action: ActionJoinRoom, RoomCode: json.RawMessage(`12345`)}},
		{name: "transform extra fields", in: `{"action":"send_transform","x":1,"rot":[0,1,0]}`, want: Envelope{Action: ActionSendTransform}},
		{name: "not json", in: `hello`, wantErr: ErrDecode},
		{name: "array", in: `[1,2]`, wantErr: ErrDecode},
		{name: "non-string action", in: `{"action":5}`, wantErr: ErrDecode},
		{name: "missing action", in: `{"room_code":"AB12C"}`, wantErr: ErrMissingAction},
		{name: "null", in: `null`, wantErr: ErrMissingAction},
		{name: "bad utf-8", in: "{\"action\":\"\xff\"}", wantErr: ErrInvalidUTF8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.in))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrDecode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvelopeCode(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{name: "string", in: `{"action":"join_room","room_code":"AB12C"}`, want: "AB12C", wantOK: true},
		{name: "missing", in: `{"action":"join_room"}`},
		{name: "number", in: `{"action":"join_room","room_code":12345}`},
		{name: "object", in: `{"action":"join_room","room_code":{"seq":7}}`},
		{name: "null", in: `{"action":"join_room","room_code":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Decode([]byte(tt.in))
			require.NoError(t, err)
			got, ok := env.Code()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		reply Reply
		want  string
	}{
		{RoomCreated("AB12C"), `{"action":"room_created","room_code":"AB12C"}`},
		{JoinedRoom("AB12C"), `{"action":"joined_room","room_code":"AB12C"}`},
		{LeftRoom("AB12C"), `{"action":"left_room","room_code":"AB12C"}`},
		{Error(MsgRoomNotFound), `{"action":"error","message":"Room not found"}`},
		{Pong(), `{"action":"pong"}`},
	}
	for _, tt := range tests {
		got, err := Encode(tt.reply)
		require.NoError(t, err)
		assert.JSONEq(t, tt.want, string(got))
		assert.Equal(t, tt.want, string(got))
	}
}
