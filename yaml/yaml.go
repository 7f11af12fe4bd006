// Package yaml provides a YAML codec for anonym configuration documents.
package yaml

import (
	"bytes"
	"errors"
	"io"

	"github.com/zoobzio/anonym"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements anonym.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() anonym.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v. Mapping keys with no matching struct
// field are rejected. An empty document leaves v untouched.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
