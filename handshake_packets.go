package main

import "bytes"

// HsNextState is the handshake's requested follow-up state: a tiny
// varint-coded enum (original `varint_enum!(in HsNextState {...})`).
type HsNextState int32

const (
	HsNextStatus HsNextState = 1
	HsNextLogin  HsNextState = 2
)

// HandshakeInitial is the sole Handshake-state packet, uniform across every
// supported version (Form A, spec.md §4.3) - id 0x00 inbound only.
type HandshakeInitial struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       HsNextState
}

func DecodeHandshakeInitial(r *bytes.Reader) (HandshakeInitial, error) {
	proto, err := ReadVarInt(r)
	if err != nil {
		return HandshakeInitial{}, err
	}
	addr, err := ReadString(r)
	if err != nil {
		return HandshakeInitial{}, err
	}
	port, err := ReadU16(r)
	if err != nil {
		return HandshakeInitial{}, err
	}
	next, err := ReadVarInt(r)
	if err != nil {
		return HandshakeInitial{}, err
	}
	return HandshakeInitial{
		ProtocolVersion: proto,
		ServerAddress:   addr,
		ServerPort:      port,
		NextState:       HsNextState(next),
	}, nil
}
