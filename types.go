package main

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"

	"github.com/google/uuid"
)

const (
	maxStringLen    = 32767
	maxComponentLen = 262144
)

// --- booleans & fixed-width primitives ---
// Mirrors the teacher's WriteBool/WriteByte/WriteLong/WriteInt/WriteFloat/
// WriteDouble free functions in protocol.go, generalized into a matching
// read/write pair for every primitive the packet definitions need.

func WriteBool(buf *bytes.Buffer, b bool) {
	if b {
		buf.WriteByte(0x01)
	} else {
		buf.WriteByte(0x00)
	}
}

func ReadBool(r *bytes.Reader) (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	return b == 0x01, nil
}

func WriteU8(buf *bytes.Buffer, v uint8)  { buf.WriteByte(v) }
func WriteI8(buf *bytes.Buffer, v int8)   { buf.WriteByte(byte(v)) }
func WriteU16(buf *bytes.Buffer, v uint16) { _ = binary.Write(buf, binary.BigEndian, v) }
func WriteI16(buf *bytes.Buffer, v int16)  { _ = binary.Write(buf, binary.BigEndian, v) }
func WriteI32(buf *bytes.Buffer, v int32)  { _ = binary.Write(buf, binary.BigEndian, v) }
func WriteU32(buf *bytes.Buffer, v uint32) { _ = binary.Write(buf, binary.BigEndian, v) }
func WriteI64(buf *bytes.Buffer, v int64)  { _ = binary.Write(buf, binary.BigEndian, v) }
func WriteU64(buf *bytes.Buffer, v uint64) { _ = binary.Write(buf, binary.BigEndian, v) }
func WriteF32(buf *bytes.Buffer, v float32) { _ = binary.Write(buf, binary.BigEndian, v) }
func WriteF64(buf *bytes.Buffer, v float64) { _ = binary.Write(buf, binary.BigEndian, v) }

func ReadU8(r *bytes.Reader) (uint8, error) { return r.ReadByte() }
func ReadI8(r *bytes.Reader) (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}
func ReadU16(r *bytes.Reader) (v uint16, err error) { err = binary.Read(r, binary.BigEndian, &v); return }
func ReadI16(r *bytes.Reader) (v int16, err error) { err = binary.Read(r, binary.BigEndian, &v); return }
func ReadI32(r *bytes.Reader) (v int32, err error) { err = binary.Read(r, binary.BigEndian, &v); return }
func ReadU32(r *bytes.Reader) (v uint32, err error) { err = binary.Read(r, binary.BigEndian, &v); return }
func ReadI64(r *bytes.Reader) (v int64, err error) { err = binary.Read(r, binary.BigEndian, &v); return }
func ReadU64(r *bytes.Reader) (v uint64, err error) { err = binary.Read(r, binary.BigEndian, &v); return }
func ReadF32(r *bytes.Reader) (v float32, err error) { err = binary.Read(r, binary.BigEndian, &v); return }
func ReadF64(r *bytes.Reader) (v float64, err error) { err = binary.Read(r, binary.BigEndian, &v); return }

// --- strings ---

// WriteString writes a Minecraft string: Varint(byte_len) + UTF-8 bytes.
// Rejects lengths beyond maxStringLen before touching the buffer, per
// spec.md §4.1.
func WriteString(buf *bytes.Buffer, s string) error {
	if len(s) > maxStringLen {
		return newStringTooLongError(len(s), maxStringLen)
	}
	WriteVarInt(buf, int32(len(s)))
	buf.WriteString(s)
	return nil
}

// ReadString decodes a Minecraft string, rejecting the length before
// allocating the backing buffer.
func ReadString(r *bytes.Reader) (string, error) {
	n, err := ReadVarInt(r)
	if err != nil {
		return "", err
	}
	if n > maxStringLen {
		return "", newStringTooLongError(int(n), maxStringLen)
	}
	if n < 0 {
		return "", protoError{kind: "string_len", msg: "negative string length"}
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

// --- identifier ---

// Identifier is a namespace:path pair (spec.md §3). Parsing splits at the
// first colon; the colon itself is not part of either half.
type Identifier struct {
	Namespace string
	Path      string
}

func NewIdentifier(namespace, path string) Identifier {
	return Identifier{Namespace: namespace, Path: path}
}

// ParseIdentifier splits "namespace:path" at the first colon. A string with
// no colon is treated as an empty namespace (matches the source's
// find(':').unwrap() only in that it assumes well-formed input from trusted
// config; untrusted wire input always supplies a colon in practice for this
// server's fixed identifier set).
func ParseIdentifier(s string) Identifier {
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		return Identifier{Namespace: s[:idx], Path: s[idx+1:]}
	}
	return Identifier{Namespace: "", Path: s}
}

func (id Identifier) String() string {
	return id.Namespace + ":" + id.Path
}

func WriteIdentifier(buf *bytes.Buffer, id Identifier) error {
	return WriteString(buf, id.String())
}

func ReadIdentifier(r *bytes.Reader) (Identifier, error) {
	s, err := ReadString(r)
	if err != nil {
		return Identifier{}, err
	}
	return ParseIdentifier(s), nil
}

// --- UUID, three wire forms (spec.md §3) ---

// WriteUUID encodes id using the wire form appropriate to ver: two
// big-endian u64 halves for >= V1_16, hyphenated string for V1_7_6..V1_15_2,
// unhyphenated string below that.
func WriteUUID(buf *bytes.Buffer, id uuid.UUID, ver Protocol) error {
	switch {
	case ver >= V1_16:
		b := id[:]
		WriteI64(buf, int64(binary.BigEndian.Uint64(b[0:8])))
		WriteI64(buf, int64(binary.BigEndian.Uint64(b[8:16])))
		return nil
	case ver >= V1_7_6:
		return WriteString(buf, id.String())
	default:
		return WriteString(buf, strings.ReplaceAll(id.String(), "-", ""))
	}
}

func ReadUUID(r *bytes.Reader, ver Protocol) (uuid.UUID, error) {
	switch {
	case ver >= V1_16:
		var b [16]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return uuid.UUID{}, err
		}
		return uuid.UUID(b), nil
	case ver >= V1_7_6:
		s, err := ReadString(r)
		if err != nil {
			return uuid.UUID{}, err
		}
		return uuid.Parse(s)
	default:
		s, err := ReadString(r)
		if err != nil {
			return uuid.UUID{}, err
		}
		return uuid.Parse(s)
	}
}

// --- optional ---

// WriteOptionalString writes a bool-presence flag then the string if
// present.
func WriteOptionalString(buf *bytes.Buffer, v *string) error {
	if v == nil {
		WriteBool(buf, false)
		return nil
	}
	WriteBool(buf, true)
	return WriteString(buf, *v)
}

// ReadOptionalString mirrors the source's Option<T> decode: a false
// presence bit yields none, and - faithfully replicating an observed
// (possibly buggy) source behavior documented in spec.md §4.1/§9 - an error
// while decoding the inner value is also swallowed into "none" rather than
// propagated. This hides real framing errors behind a false "absent" value,
// but is intentional: see SPEC_FULL.md §10 Open Question #2.
func ReadOptionalString(r *bytes.Reader) (*string, error) {
	present, err := ReadBool(r)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	s, err := ReadString(r)
	if err != nil {
		return nil, nil //nolint:nilerr // intentional: see doc comment above
	}
	return &s, nil
}

func WriteOptionalUUID(buf *bytes.Buffer, v *uuid.UUID, ver Protocol) error {
	if v == nil {
		WriteBool(buf, false)
		return nil
	}
	WriteBool(buf, true)
	return WriteUUID(buf, *v, ver)
}

// --- unprefixed byte array: consumes the remainder of the current frame ---

// WriteUnprefixedByteArray writes raw bytes with no length prefix. Only
// meaningful as the final field of a framed packet.
func WriteUnprefixedByteArray(buf *bytes.Buffer, data []byte) {
	buf.Write(data)
}

// ReadUnprefixedByteArray reads every remaining byte in r.
func ReadUnprefixedByteArray(r *bytes.Reader) ([]byte, error) {
	rest := make([]byte, r.Len())
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, err
	}
	return rest, nil
}

// --- prefixed arrays: Varint, u16 or u64 count prefix ---
// Go has no const-generic trait dispatch over the prefix kind the way the
// source's ArrayPrefix trait does, so each prefix kind gets its own pair of
// free functions (spec.md §4.1's PrefixedArray<P, V> generalized the
// idiomatic Go way: one function set per concrete P).

func WriteVarintPrefixedStrings(buf *bytes.Buffer, items []string) error {
	WriteVarInt(buf, int32(len(items)))
	for _, s := range items {
		if err := WriteString(buf, s); err != nil {
			return err
		}
	}
	return nil
}

func ReadVarintPrefixedStrings(r *bytes.Reader) ([]string, error) {
	n, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := int32(0); i < n; i++ {
		s, err := ReadString(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func WriteU16PrefixedBytes(buf *bytes.Buffer, data []byte) {
	WriteU16(buf, uint16(len(data)))
	buf.Write(data)
}

func ReadU16PrefixedBytes(r *bytes.Reader) ([]byte, error) {
	n, err := ReadU16(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func WriteU64PrefixedStrings(buf *bytes.Buffer, items []string) error {
	WriteU64(buf, uint64(len(items)))
	for _, s := range items {
		if err := WriteString(buf, s); err != nil {
			return err
		}
	}
	return nil
}

func ReadU64PrefixedStrings(r *bytes.Reader) ([]string, error) {
	n, err := ReadU64(r)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := uint64(0); i < n; i++ {
		s, err := ReadString(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// newRandomUUID generates a fresh random (v4) identifier, used anywhere the
// server stands in for a client-identity value it doesn't actually have
// (login admission, chat sender, bossbar instance id).
func newRandomUUID() uuid.UUID {
	return uuid.New()
}

// --- JSON-out: serialize a Go value to JSON, then write as a String ---

// WriteJSON writes already-marshaled JSON bytes length-prefixed, like any
// other Minecraft string; callers run json.Marshal themselves. No size
// prediction is made for this shape: callers write into a growable
// bytes.Buffer instead of relying on an exact count.
func WriteJSON(buf *bytes.Buffer, jsonBytes []byte) error {
	return WriteString(buf, string(jsonBytes))
}
