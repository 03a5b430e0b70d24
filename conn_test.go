package main

import (
	"bytes"
	"encoding/json"
	"net"
	"testing"
	"time"
)

func testConfig(maxPlayers int32) *Config {
	return &Config{
		Address:    "127.0.0.1:0",
		MaxPlayers: maxPlayers,
		MOTD:       "A Limbo Server",
		Brand:      "limbo",
		Dimension:  "overworld",
	}
}

// sendFrame writes one length-prefixed, packet-id-prefixed frame to conn.
func sendFrame(t *testing.T, conn net.Conn, id int32, body []byte) {
	t.Helper()
	frame := buildPacketFrame(id, body)
	if err := WriteFrame(conn, frame); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
}

func encodeHandshake(protocol int32, addr string, port uint16, next HsNextState) []byte {
	var buf bytes.Buffer
	WriteVarInt(&buf, protocol)
	_ = WriteString(&buf, addr)
	WriteU16(&buf, port)
	WriteVarInt(&buf, int32(next))
	return buf.Bytes()
}

// TestStatusHandshake covers scenario 1 from spec.md §8: a V1_19_4 status
// round-trip.
func TestStatusHandshake(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	srv := NewServer(testConfig(20))
	go handleConn(srv, server)

	sendFrame(t, client, 0x00, encodeHandshake(762, "x", 25565, HsNextStatus))
	sendFrame(t, client, 0x00, nil) // StatusRequest

	fr := newFrameReader(client)
	payload, err := fr.NextFrame()
	if err != nil {
		t.Fatalf("reading StatusResponse: %v", err)
	}
	r := bytes.NewReader(payload)
	if id, _ := ReadVarInt(r); id != 0x00 {
		t.Fatalf("StatusResponse id = %d, want 0", id)
	}
	jsonStr, err := ReadString(r)
	if err != nil {
		t.Fatalf("decoding StatusResponse JSON string: %v", err)
	}
	var status ServerStatus
	if err := json.Unmarshal([]byte(jsonStr), &status); err != nil {
		t.Fatalf("unmarshaling status JSON: %v", err)
	}
	if status.Version.Protocol != 762 {
		t.Errorf("version.protocol = %d, want 762", status.Version.Protocol)
	}
	if status.Players.Max != 20 {
		t.Errorf("players.max = %d, want 20", status.Players.Max)
	}
	if status.Players.Online != 0 {
		t.Errorf("players.online = %d, want 0", status.Players.Online)
	}

	const pingPayload = int64(0x0123456789ABCDEF)
	var pingBody bytes.Buffer
	WriteI64(&pingBody, pingPayload)
	sendFrame(t, client, 0x01, pingBody.Bytes())

	payload, err = fr.NextFrame()
	if err != nil {
		t.Fatalf("reading PingResponse: %v", err)
	}
	r = bytes.NewReader(payload)
	if id, _ := ReadVarInt(r); id != 0x01 {
		t.Fatalf("PingResponse id = %d, want 1", id)
	}
	got, err := ReadI64(r)
	if err != nil || got != pingPayload {
		t.Errorf("PingResponse payload = 0x%X, err=%v, want 0x%X", got, err, pingPayload)
	}
}

// TestLoginThenKeepalive covers scenario 2 from spec.md §8: a V1_8 login
// followed by the initial Play packet sequence and a keepalive within 3.5s.
func TestLoginThenKeepalive(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	srv := NewServer(testConfig(20))
	go handleConn(srv, server)

	sendFrame(t, client, 0x00, encodeHandshake(47, "x", 25565, HsNextLogin))

	var loginBody bytes.Buffer
	_ = WriteString(&loginBody, "alice")
	sendFrame(t, client, 0x00, loginBody.Bytes())

	fr := newFrameReader(client)

	payload, err := fr.NextFrame() // LoginSuccess
	if err != nil {
		t.Fatalf("reading LoginSuccess: %v", err)
	}
	r := bytes.NewReader(payload)
	if id, _ := ReadVarInt(r); id != 0x02 {
		t.Fatalf("LoginSuccess id = %d, want 2", id)
	}
	gotUUID, err := ReadUUID(r, V1_8)
	if err != nil {
		t.Fatalf("decoding LoginSuccess uuid: %v", err)
	}
	if gotUUID.String() == "" {
		t.Error("expected a non-empty uuid")
	}
	gotUsername, err := ReadString(r)
	if err != nil || gotUsername != "alice" {
		t.Errorf("LoginSuccess username = %q, err=%v, want alice", gotUsername, err)
	}

	payload, err = fr.NextFrame() // PlayLogin
	if err != nil {
		t.Fatalf("reading PlayLogin: %v", err)
	}
	r = bytes.NewReader(payload)
	if id, _ := ReadVarInt(r); id != PlayLoginID(V1_8) {
		t.Fatalf("PlayLogin id = %d, want %d", id, PlayLoginID(V1_8))
	}

	payload, err = fr.NextFrame() // PlayerAbilities
	if err != nil {
		t.Fatalf("reading PlayerAbilities: %v", err)
	}
	r = bytes.NewReader(payload)
	if id, _ := ReadVarInt(r); id != PlayerAbilitiesID(V1_8) {
		t.Fatalf("PlayerAbilities id = %d, want %d", id, PlayerAbilitiesID(V1_8))
	}
	flags, _ := ReadU8(r)
	flying, _ := ReadF32(r)
	fov, _ := ReadF32(r)
	if flags != 0x02 || flying != 0 || fov != 0.1 {
		t.Errorf("PlayerAbilities = (0x%02X, %v, %v), want (0x02, 0, 0.1)", flags, flying, fov)
	}

	payload, err = fr.NextFrame() // PlayerPositionRotation
	if err != nil {
		t.Fatalf("reading PlayerPositionRotation: %v", err)
	}
	r = bytes.NewReader(payload)
	if id, _ := ReadVarInt(r); id != PlayerPositionRotationID(V1_8) {
		t.Fatalf("PlayerPositionRotation id = %d, want %d", id, PlayerPositionRotationID(V1_8))
	}
	x, _ := ReadF64(r)
	y, _ := ReadF64(r)
	z, _ := ReadF64(r)
	// The 1.62 eye-height offset applies only below V1_8, so V1_8 sees y=64.
	if x != 0 || y != 64 || z != 0 {
		t.Errorf("position = (%v,%v,%v), want (0, 64, 0)", x, y, z)
	}

	payload, err = fr.NextFrame() // PluginMessageOut ("MC|Brand")
	if err != nil {
		t.Fatalf("reading PluginMessageOut: %v", err)
	}
	r = bytes.NewReader(payload)
	if id, _ := ReadVarInt(r); id != PluginMessageOutID(V1_8) {
		t.Fatalf("PluginMessageOut id = %d, want %d", id, PluginMessageOutID(V1_8))
	}
	channel, err := ReadString(r)
	if err != nil || channel != "MC|Brand" {
		t.Errorf("PluginMessageOut channel = %q, err=%v, want MC|Brand", channel, err)
	}

	done := make(chan struct{})
	go func() {
		payload, err := fr.NextFrame()
		if err != nil {
			return
		}
		r := bytes.NewReader(payload)
		if id, _ := ReadVarInt(r); id == KeepAliveClientboundID(V1_8) {
			close(done)
		}
	}()

	select {
	case <-done:
	case <-time.After(3500 * time.Millisecond):
		t.Fatal("did not receive a KeepAliveClientbound within 3.5s")
	}
}

// TestUnknownPlayInboundDiscarded covers scenario 4 from spec.md §8: a
// well-framed Play-state packet whose id isn't KeepAliveServerbound's is
// consumed by the reader and does not interrupt the keepalive loop.
func TestUnknownPlayInboundDiscarded(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	srv := NewServer(testConfig(20))
	go handleConn(srv, server)

	sendFrame(t, client, 0x00, encodeHandshake(762, "x", 25565, HsNextLogin))
	var loginBody bytes.Buffer
	_ = WriteString(&loginBody, "bob")
	WriteBool(&loginBody, false) // no player UUID (field present from V1_19)
	sendFrame(t, client, 0x00, loginBody.Bytes())

	fr := newFrameReader(client)
	for i := 0; i < 6; i++ { // LoginSuccess, PlayLogin, PlayerAbilities, PlayerPositionRotation, SpawnPosition, PluginMessageOut
		if _, err := fr.NextFrame(); err != nil {
			t.Fatalf("draining initial sequence, frame %d: %v", i, err)
		}
	}

	sendFrame(t, client, 0x7F, []byte("not a real play packet"))

	payload, err := fr.NextFrame()
	if err != nil {
		t.Fatalf("expected a KeepAliveClientbound to still arrive: %v", err)
	}
	r := bytes.NewReader(payload)
	if id, _ := ReadVarInt(r); id != KeepAliveClientboundID(V1_19_4) {
		t.Errorf("got packet id %d, want keepalive id %d", id, KeepAliveClientboundID(V1_19_4))
	}
}

// TestVersionDowngrade covers scenario 6 from spec.md §8: an unknown
// handshake protocol integer downgrades the connection to Legacy, and the
// status reply reports Legacy's numeric id.
func TestVersionDowngrade(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()

	srv := NewServer(testConfig(20))
	go handleConn(srv, server)

	sendFrame(t, client, 0x00, encodeHandshake(int32(0xDEADBEEF), "x", 25565, HsNextStatus))
	sendFrame(t, client, 0x00, nil)

	fr := newFrameReader(client)
	payload, err := fr.NextFrame()
	if err != nil {
		t.Fatalf("reading StatusResponse: %v", err)
	}
	r := bytes.NewReader(payload)
	ReadVarInt(r) // packet id
	jsonStr, err := ReadString(r)
	if err != nil {
		t.Fatalf("decoding StatusResponse JSON string: %v", err)
	}
	var status ServerStatus
	if err := json.Unmarshal([]byte(jsonStr), &status); err != nil {
		t.Fatalf("unmarshaling status JSON: %v", err)
	}
	if status.Version.Protocol != int32(Legacy) {
		t.Errorf("version.protocol = %d, want %d (Legacy)", status.Version.Protocol, int32(Legacy))
	}
}

// TestAdmissionDenialEndToEnd covers scenario 3 from spec.md §8 over an
// actual connection: with max_players=1, a second concurrent login is
// disconnected and current_players settles back to 1.
func TestAdmissionDenialEndToEnd(t *testing.T) {
	srv := NewServer(testConfig(1))

	serverA, clientA := net.Pipe()
	defer clientA.Close()
	go handleConn(srv, serverA)

	sendFrame(t, clientA, 0x00, encodeHandshake(762, "x", 25565, HsNextLogin))
	var bodyA bytes.Buffer
	_ = WriteString(&bodyA, "first")
	WriteBool(&bodyA, false) // no player UUID
	sendFrame(t, clientA, 0x00, bodyA.Bytes())

	frA := newFrameReader(clientA)
	if _, err := frA.NextFrame(); err != nil { // LoginSuccess
		t.Fatalf("first connection's LoginSuccess: %v", err)
	}

	serverB, clientB := net.Pipe()
	defer clientB.Close()
	go handleConn(srv, serverB)

	sendFrame(t, clientB, 0x00, encodeHandshake(762, "x", 25565, HsNextLogin))
	var bodyB bytes.Buffer
	_ = WriteString(&bodyB, "second")
	WriteBool(&bodyB, false) // no player UUID
	sendFrame(t, clientB, 0x00, bodyB.Bytes())

	frB := newFrameReader(clientB)
	payload, err := frB.NextFrame() // LoginDisconnect
	if err != nil {
		t.Fatalf("second connection's LoginDisconnect: %v", err)
	}
	r := bytes.NewReader(payload)
	if id, _ := ReadVarInt(r); id != 0x00 {
		t.Fatalf("expected LoginDisconnect id 0, got %d", id)
	}

	time.Sleep(50 * time.Millisecond)
	if online := srv.Online(); online != 1 {
		t.Errorf("current_players = %d, want 1", online)
	}
}
