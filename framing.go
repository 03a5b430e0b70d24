package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// readTimeout bounds every socket read in Handshake/Status/Login/Play
// (spec.md §4.5/§5 "every socket read is wrapped in a 5-second timeout").
const readTimeout = 5 * time.Second

// stagingSize is the scratch buffer used for each raw socket read.
const stagingSize = 512

var errReadTimeout = errors.New("framing: read timed out")

// frameReader extracts length-prefixed frames (Varint(len) ++ payload) from
// a TCP stream, buffering partial frames across reads. Grounded on the
// teacher's handleConnection accumulation loop, generalized to the
// Varint-framed shape original_source's BufferingCodec implements
// (picolimbo/src/client.rs).
type frameReader struct {
	conn    net.Conn
	buf     []byte
	staging [stagingSize]byte
}

func newFrameReader(conn net.Conn) *frameReader {
	return &frameReader{conn: conn}
}

// tryDecodeFrame attempts to pull one complete frame out of fr.buf without
// touching the socket. ok=false means "need more bytes".
func (fr *frameReader) tryDecodeFrame() (payload []byte, ok bool, err error) {
	r := bytes.NewReader(fr.buf)
	length, err := ReadVarInt(r)
	if err != nil {
		if errors.Is(err, errVarintTooBig) {
			return nil, false, err
		}
		return nil, false, nil // not enough bytes yet for the length varint
	}
	if length < 0 {
		return nil, false, fmt.Errorf("framing: negative frame length %d", length)
	}
	lenFieldSize := len(fr.buf) - r.Len()
	total := lenFieldSize + int(length)
	if len(fr.buf) < total {
		return nil, false, nil
	}
	frame := fr.buf[lenFieldSize:total]
	fr.buf = append([]byte(nil), fr.buf[total:]...)
	return frame, true, nil
}

// NextFrame blocks until one full frame is available, reading from the
// socket as needed. Returns io.EOF on clean peer close, errReadTimeout on a
// stalled read.
func (fr *frameReader) NextFrame() ([]byte, error) {
	for {
		frame, ok, err := fr.tryDecodeFrame()
		if err != nil {
			return nil, err
		}
		if ok {
			return frame, nil
		}
		if err := fr.conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return nil, err
		}
		n, err := fr.conn.Read(fr.staging[:])
		if err != nil {
			if ne, isNetErr := err.(net.Error); isNetErr && ne.Timeout() {
				return nil, errReadTimeout
			}
			return nil, err
		}
		if n == 0 {
			return nil, io.EOF
		}
		fr.buf = append(fr.buf, fr.staging[:n]...)
	}
}

// WriteFrame prepends the varint length prefix to payload and writes it in
// one call; a short write or error is treated as "peer closed".
func WriteFrame(conn net.Conn, payload []byte) error {
	var out bytes.Buffer
	WriteVarInt(&out, int32(len(payload)))
	out.Write(payload)
	_, err := conn.Write(out.Bytes())
	return err
}

// buildPacketFrame writes Varint(id) ++ body into a fresh scratch buffer and
// returns its bytes - the payload half of "Varint(payload_len) ++
// Varint(packet_id) ++ payload_bytes" (spec.md §4.3).
func buildPacketFrame(id int32, body []byte) []byte {
	var buf bytes.Buffer
	WriteVarInt(&buf, id)
	buf.Write(body)
	return buf.Bytes()
}
