// Package json provides a JSON codec for anonym configuration documents.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/zoobzio/anonym"
)

// jsonCodec implements anonym.Codec for JSON.
type jsonCodec struct{}

// New returns a JSON codec.
func New() anonym.Codec {
	return &jsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as JSON.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes a single JSON document into v.
// Unknown object keys are rejected so a misspelled config key fails at load
// time instead of silently disabling a transformer.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON document")
	}
	return nil
}
