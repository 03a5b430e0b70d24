package main

import (
	"bytes"
	"io"

	"github.com/google/uuid"
)

// LoginStart is the sole inbound packet that starts the Login sequence (id
// 0x00). Versions >= V1_19 add an optional player UUID after the username;
// this server never trusts it (players are admitted with server-generated
// identifiers, spec.md §1 Non-goals), but it still has to be consumed off
// the wire so framing stays aligned.
type LoginStart struct {
	Username string
	PlayerID *uuid.UUID
}

func DecodeLoginStart(r *bytes.Reader, ver Protocol) (LoginStart, error) {
	username, err := ReadString(r)
	if err != nil {
		return LoginStart{}, err
	}
	ls := LoginStart{Username: username}
	if ver >= V1_19 {
		id, err := ReadOptionalUUID(r)
		if err != nil {
			return LoginStart{}, err
		}
		ls.PlayerID = id
	}
	return ls, nil
}

func ReadOptionalUUID(r *bytes.Reader) (*uuid.UUID, error) {
	present, err := ReadBool(r)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	var b [16]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return nil, nil //nolint:nilerr // matches ReadOptionalString's swallow-inner-error contract
	}
	id := uuid.UUID(b)
	return &id, nil
}

// LoginPluginResponse answers a LoginPluginRequest this server never sends
// (no plugin-channel login challenge is issued), but decoding it is kept for
// completeness against spec.md §9's "supplement dropped features" guidance.
type LoginPluginResponse struct {
	MessageID  int32
	Successful bool
	Data       []byte
}

func DecodeLoginPluginResponse(r *bytes.Reader) (LoginPluginResponse, error) {
	id, err := ReadVarInt(r)
	if err != nil {
		return LoginPluginResponse{}, err
	}
	ok, err := ReadBool(r)
	if err != nil {
		return LoginPluginResponse{}, err
	}
	data, err := ReadUnprefixedByteArray(r)
	if err != nil {
		return LoginPluginResponse{}, err
	}
	return LoginPluginResponse{MessageID: id, Successful: ok, Data: data}, nil
}

// LoginPluginRequest (out, id 0x04) is never sent by this server (no
// backend-proxy login challenge exists) but its encoder is provided for
// completeness, grounded on original_source's login.rs packet definition.
type LoginPluginRequest struct {
	MessageID int32
	Channel   Identifier
	Data      []byte
}

func EncodeLoginPluginRequest(buf *bytes.Buffer, p LoginPluginRequest) error {
	WriteVarInt(buf, p.MessageID)
	if err := WriteIdentifier(buf, p.Channel); err != nil {
		return err
	}
	WriteUnprefixedByteArray(buf, p.Data)
	return nil
}

// LoginDisconnect (out, id 0x00) closes the connection with a rich-text
// reason - used for the "server full" admission-refusal path.
type LoginDisconnect struct {
	Reason Component
}

func EncodeLoginDisconnect(buf *bytes.Buffer, p LoginDisconnect) error {
	return EncodeComponent(buf, p.Reason)
}
