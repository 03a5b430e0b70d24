package main

import (
	"bytes"
	"encoding/json"
)

// Component is the opaque rich-text value spec.md §1 delegates to an
// external text library. This repository has no such dependency in scope
// (none of the retrieval pack's example repos vendor a chat-component
// library), so a minimal built-in type satisfies the one contract the wire
// codec actually needs: producing a JSON string (spec.md §4.1's
// `to_json_string`). Anything richer (click events, hover text, nested
// extra[] runs) is out of scope for a limbo server and is not modeled.
type Component interface {
	// ToJSON renders the component as raw JSON bytes; EncodeComponent adds
	// the length prefix the wire format expects.
	ToJSON() ([]byte, error)
}

// textComponent is a flat "{"text": "...", "color": "..."}" component,
// enough to express MOTD, messages, titles and bossbar text built from
// plain config strings.
type textComponent struct {
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
	Bold  bool   `json:"bold,omitempty"`
}

// Text builds a plain, uncolored component.
func Text(s string) Component {
	return textComponent{Text: s}
}

// Colored builds a component with a named color (e.g. "red", "aqua").
func Colored(s, color string) Component {
	return textComponent{Text: s, Color: color}
}

func (c textComponent) ToJSON() ([]byte, error) {
	return json.Marshal(c)
}

// EncodeComponent writes a Component as a length-prefixed JSON string,
// capped at maxComponentLen bytes per spec.md §4.1.
func EncodeComponent(buf *bytes.Buffer, c Component) error {
	data, err := c.ToJSON()
	if err != nil {
		return protoError{kind: "serialize", msg: err.Error()}
	}
	if len(data) > maxComponentLen {
		return newStringTooLongError(len(data), maxComponentLen)
	}
	WriteVarInt(buf, int32(len(data)))
	buf.Write(data)
	return nil
}
