package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net"
	"sync"

	"github.com/google/uuid"
)

// handleConn drives one TCP connection through Handshake -> (Status | Login)
// -> Play. Grounded on original_source/picolimbo/src/handle.rs's
// handle_connection, generalized from its single async task into this
// codebase's explicit reader/writer/logic goroutine split (spec.md §5):
// a dedicated writer goroutine owns conn writes, a dedicated reader
// goroutine owns conn reads once in Play state, and this goroutine is the
// "logic" goroutine for the whole lifetime of the connection.
func handleConn(s *Server, conn net.Conn) {
	ctx, cancel := context.WithCancel(context.Background())
	var closeOnce sync.Once
	closeConn := func() {
		closeOnce.Do(func() {
			cancel()
			conn.Close()
		})
	}
	defer closeConn()

	// A blocking net.Conn.Read can only be interrupted by closing the
	// socket, so a small watcher goroutine does that the moment ctx is
	// cancelled from anywhere else (writer failure, logic completion,
	// admission denial).
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	outbound := make(chan []byte, 16)
	go runWriter(ctx, conn, outbound, closeConn)

	send := func(frame []byte) error {
		select {
		case outbound <- frame:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	fr := newFrameReader(conn)

	hs, err := readHandshake(fr)
	if err != nil {
		return
	}

	// Matches handle.rs exactly: the negotiated protocol is whatever
	// from_idx resolves, with no fallback to a configured default - an
	// unrecognized handshake protocol integer downgrades the whole
	// connection to Legacy (spec.md §8 scenario 6), it does not upgrade to
	// any other version.
	ver := FromIndex(hs.ProtocolVersion)

	switch hs.NextState {
	case HsNextStatus:
		handleStatus(s, fr, send, ver)

	case HsNextLogin:
		handleLogin(s, conn, fr, send, ver, ctx, closeConn)

	default:
		return
	}
}

func runWriter(ctx context.Context, conn net.Conn, outbound <-chan []byte, closeConn func()) {
	for {
		select {
		case frame := <-outbound:
			if err := WriteFrame(conn, frame); err != nil {
				closeConn()
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// readHandshake reads exactly one framed Handshake packet - the only packet
// ever expected before the state branches (spec.md §4.2).
func readHandshake(fr *frameReader) (HandshakeInitial, error) {
	payload, err := fr.NextFrame()
	if err != nil {
		return HandshakeInitial{}, err
	}
	r := bytes.NewReader(payload)
	pktID, err := ReadVarInt(r)
	if err != nil {
		return HandshakeInitial{}, err
	}
	if pktID != 0x00 {
		return HandshakeInitial{}, errors.New("limbo: expected handshake packet id 0x00")
	}
	return DecodeHandshakeInitial(r)
}

// handleStatus implements the Status sub-state machine: StatusRequest ->
// StatusResponse, then PingRequest -> PingResponse, then the connection
// closes (spec.md §4.2's Status flow, grounded on handle.rs's status
// branch).
func handleStatus(s *Server, fr *frameReader, send func([]byte) error, ver Protocol) {
	payload, err := fr.NextFrame()
	if err != nil {
		return
	}
	r := bytes.NewReader(payload)
	if _, err := ReadVarInt(r); err != nil { // packet id, always 0x00
		return
	}
	if _, err := DecodeStatusRequest(r); err != nil {
		return
	}

	status, err := NewServerStatus(versionDisplayName(), int32(ver), ver, s.cfg.MaxPlayers, s.Online(), Text(s.cfg.MOTD))
	if err != nil {
		log.Printf("limbo: building status response: %v", err)
		return
	}
	var body bytes.Buffer
	if err := EncodeStatusResponse(&body, StatusResponse{Status: status}); err != nil {
		log.Printf("limbo: encoding status response: %v", err)
		return
	}
	if err := send(buildPacketFrame(0x00, body.Bytes())); err != nil {
		return
	}

	payload, err = fr.NextFrame()
	if err != nil {
		return
	}
	r = bytes.NewReader(payload)
	if _, err := ReadVarInt(r); err != nil {
		return
	}
	ping, err := DecodePingRequest(r)
	if err != nil {
		return
	}
	body.Reset()
	EncodePingResponse(&body, PingResponse{Payload: ping.Payload})
	_ = send(buildPacketFrame(0x01, body.Bytes()))
}

// versionDisplayName renders the status response's "version.name" field the
// way handle.rs does: a fixed "<oldest>-<newest>" range string, independent
// of the connection's actually negotiated protocol (handle.rs builds this
// from Protocol::V1_7_2 and Protocol::latest(), never from the handshake's
// own value).
func versionDisplayName() string {
	return V1_7_2.String() + "-" + Latest().String()
}

// handleLogin implements the Login sub-state machine: LoginStart ->
// admission check -> LoginDisconnect (full) or LoginSuccess, then enters
// Play (spec.md §4.2's Login flow / handle.rs's login branch).
func handleLogin(s *Server, conn net.Conn, fr *frameReader, send func([]byte) error, ver Protocol, ctx context.Context, closeConn func()) {
	payload, err := fr.NextFrame()
	if err != nil {
		return
	}
	r := bytes.NewReader(payload)
	if _, err := ReadVarInt(r); err != nil {
		return
	}
	start, err := DecodeLoginStart(r, ver)
	if err != nil {
		return
	}

	if !s.TryAdmit() {
		var body bytes.Buffer
		msg := s.cfg.ServerFullMessage
		var reason Component
		if msg != "" {
			reason = Text(msg)
		} else {
			reason = Colored("Disconnected: Server is full!", "red")
		}
		if err := EncodeLoginDisconnect(&body, LoginDisconnect{Reason: reason}); err != nil {
			return
		}
		_ = send(buildPacketFrame(0x00, body.Bytes()))
		closeConn()
		return
	}
	defer s.Release()

	playerID := newRandomUUID()
	if start.PlayerID != nil {
		playerID = *start.PlayerID
	}

	var body bytes.Buffer
	if err := EncodeLoginSuccess(&body, LoginSuccess{UUID: playerID, Username: start.Username}, ver); err != nil {
		return
	}
	if err := send(buildPacketFrame(0x02, body.Bytes())); err != nil {
		return
	}

	runPlayState(s, conn, fr, send, ver, playerID, start.Username, ctx, closeConn)
}

// runPlayState spins up the reader goroutine Play state needs (to keep
// consuming - and discarding - inbound KeepAliveServerbound/other frames
// concurrently with the keepalive timer), then drives runPlay to
// completion. Grounded on player.rs's LimboPlayer task racing the
// connection's read loop against its own keepalive interval.
func runPlayState(s *Server, conn net.Conn, fr *frameReader, send func([]byte) error, ver Protocol, playerID uuid.UUID, username string, ctx context.Context, closeConn func()) {
	inbound := make(chan []byte, 16)

	go func() {
		defer close(inbound)
		for {
			payload, err := fr.NextFrame()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					log.Printf("limbo: play read error for %s: %v", username, err)
				}
				closeConn()
				return
			}
			select {
			case inbound <- payload:
			case <-ctx.Done():
				return
			}
		}
	}()

	pc := &playerConn{
		ver:      ver,
		uuid:     playerID,
		username: username,
		srv:      s,
		send:     send,
		inbound:  inbound,
		ctx:      ctx,
	}

	if err := runPlay(pc, s.cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("limbo: play loop ended for %s: %v", username, err)
	}
	closeConn()
}
