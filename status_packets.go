package main

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// StatusRequest carries no fields (Form A, id 0x00 inbound, Status state).
type StatusRequest struct{}

func DecodeStatusRequest(r *bytes.Reader) (StatusRequest, error) {
	return StatusRequest{}, nil
}

// PingRequest/PingResponse echo an i64 payload (Form A, ids 0x01 both ways).
type PingRequest struct{ Payload int64 }

func DecodePingRequest(r *bytes.Reader) (PingRequest, error) {
	v, err := ReadI64(r)
	return PingRequest{Payload: v}, err
}

type PingResponse struct{ Payload int64 }

func EncodePingResponse(buf *bytes.Buffer, p PingResponse) {
	WriteI64(buf, p.Payload)
}

// ServerVersion/ServerPlayers/ServerPlayerSingle/ServerStatus mirror the
// original source's serde-derived status JSON shape (proto/handshake.rs),
// translated to Go's encoding/json struct tags (spec.md §6.5).
type ServerVersion struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

type ServerPlayerSingle struct {
	Name string    `json:"name"`
	ID   uuid.UUID `json:"id"`
}

type ServerPlayers struct {
	Max    int32                `json:"max"`
	Online int32                `json:"online"`
	Sample []ServerPlayerSingle `json:"sample"`
}

type ServerStatus struct {
	Version            ServerVersion   `json:"version"`
	Players            ServerPlayers   `json:"players"`
	Description         json.RawMessage `json:"description"`
	Favicon             string          `json:"favicon,omitempty"`
	EnforcesSecureChat bool            `json:"enforcesSecureChat"`
}

// StatusResponse wraps a ServerStatus, serialized as embedded JSON (Form A
// "json" field attribute, spec.md §4.3), id 0x00 outbound.
type StatusResponse struct {
	Status ServerStatus
}

func EncodeStatusResponse(buf *bytes.Buffer, resp StatusResponse) error {
	data, err := json.Marshal(resp.Status)
	if err != nil {
		return protoError{kind: "serialize", msg: err.Error()}
	}
	return WriteJSON(buf, data)
}

// NewServerStatus builds the descriptor sent in reply to StatusRequest,
// given the connection's raw handshake protocol integer (spec.md §6.1's
// "version.protocol = the handshake's raw integer unless Legacy").
func NewServerStatus(versionName string, rawProtocol int32, ver Protocol, maxPlayers, online int32, motd Component) (ServerStatus, error) {
	reported := rawProtocol
	if ver == Legacy {
		reported = int32(Legacy)
	}
	descJSON, err := motd.ToJSON()
	if err != nil {
		return ServerStatus{}, err
	}
	return ServerStatus{
		Version: ServerVersion{Name: versionName, Protocol: reported},
		Players: ServerPlayers{Max: maxPlayers, Online: online, Sample: []ServerPlayerSingle{}},
		Description:        json.RawMessage(descJSON),
		EnforcesSecureChat: false,
	}, nil
}
