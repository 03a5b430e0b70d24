package main

import (
	"bytes"

	"github.com/google/uuid"
)

// LoginSuccess (out, id 0x02) admits the client into Play. Field layout is
// uniform except for the trailing empty profile-properties array added in
// V1_19 - grounded on original_source/picolimbo/src/proto/login.rs's
// Encodeable impl, which writes a literal `Varint(0)` rather than a generic
// array, so this does the same instead of reusing a prefixed-array helper.
type LoginSuccess struct {
	UUID     uuid.UUID
	Username string
}

func EncodeLoginSuccess(buf *bytes.Buffer, p LoginSuccess, ver Protocol) error {
	if err := WriteUUID(buf, p.UUID, ver); err != nil {
		return err
	}
	if err := WriteString(buf, p.Username); err != nil {
		return err
	}
	if ver >= V1_19 {
		WriteVarInt(buf, 0) // no profile properties
	}
	return nil
}
