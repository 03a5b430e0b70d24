package main

import (
	"bytes"
	"net"
	"testing"
	"time"
)

// newPipe returns both ends of a net.Pipe, each a net.Conn frameReader
// accepts, so tests can drive the reader without a real socket.
func newPipe() (net.Conn, net.Conn) {
	return net.Pipe()
}

// feedInChunks writes data to conn in pieces of size chunkSize (the last
// piece may be shorter), simulating arbitrary TCP segmentation.
func feedInChunks(t *testing.T, conn net.Conn, data []byte, chunkSize int) {
	t.Helper()
	go func() {
		for i := 0; i < len(data); i += chunkSize {
			end := i + chunkSize
			if end > len(data) {
				end = len(data)
			}
			if _, err := conn.Write(data[i:end]); err != nil {
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()
}

// TestFrameReassembly covers spec.md §8's "frame reassembly" property: any
// chunking of the same byte stream yields the same decoded packet sequence.
func TestFrameReassembly(t *testing.T) {
	packets := [][]byte{
		buildPacketFrame(0x00, []byte("first")),
		buildPacketFrame(0x01, []byte("second, a bit longer")),
		buildPacketFrame(0x02, nil),
	}

	var wire bytes.Buffer
	for _, p := range packets {
		WriteVarInt(&wire, int32(len(p)))
		wire.Write(p)
	}
	data := wire.Bytes()

	for _, chunkSize := range []int{1, 2, 7, 64, len(data)} {
		t.Run("", func(t *testing.T) {
			server, client := newPipe()
			defer server.Close()
			defer client.Close()

			feedInChunks(t, client, data, chunkSize)

			fr := newFrameReader(server)
			for i, want := range packets {
				got, err := fr.NextFrame()
				if err != nil {
					t.Fatalf("chunk size %d, packet %d: %v", chunkSize, i, err)
				}
				if !bytes.Equal(got, want) {
					t.Errorf("chunk size %d, packet %d: got %v, want %v", chunkSize, i, got, want)
				}
			}
		})
	}
}

// TestPartialFrameReassembly mirrors scenario 5 from spec.md §8: a single,
// larger StatusResponse-sized frame delivered one byte at a time yields
// exactly one decoded packet equal to the original.
func TestPartialFrameReassembly(t *testing.T) {
	body := bytes.Repeat([]byte{0x42}, 300)
	frame := buildPacketFrame(0x00, body)

	var wire bytes.Buffer
	WriteVarInt(&wire, int32(len(frame)))
	wire.Write(frame)

	server, client := newPipe()
	defer server.Close()
	defer client.Close()

	feedInChunks(t, client, wire.Bytes(), 1)

	fr := newFrameReader(server)
	got, err := fr.NextFrame()
	if err != nil {
		t.Fatalf("NextFrame error: %v", err)
	}
	if !bytes.Equal(got, frame) {
		t.Errorf("got %d bytes, want %d bytes", len(got), len(frame))
	}
}

// TestFramingInvariant checks buildPacketFrame + WriteFrame produce exactly
// Varint(L) ++ body where body starts with Varint(id) and L == len(body).
func TestFramingInvariant(t *testing.T) {
	body := buildPacketFrame(0x05, []byte("payload"))

	server, client := newPipe()
	defer server.Close()
	defer client.Close()

	go func() {
		_ = WriteFrame(client, body)
	}()

	fr := newFrameReader(server)
	got, err := fr.NextFrame()
	if err != nil {
		t.Fatalf("NextFrame error: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("got %v, want %v", got, body)
	}

	r := bytes.NewReader(got)
	id, err := ReadVarInt(r)
	if err != nil {
		t.Fatalf("decoding leading id varint: %v", err)
	}
	if id != 0x05 {
		t.Errorf("leading packet id = %d, want 5", id)
	}
}
