package anonym

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaskChar is the mask character used when none is configured.
	DefaultMaskChar = '*'

	redactedPrefixLen = 3
	redactedPadLen    = 10
)

// redactedPad is always built from '*'. The configured mask character is
// carried in RedactedOptions but not applied to the padding.
var redactedPad = strings.Repeat("*", redactedPadLen)

// RedactedOptions configures the redacted transformer.
// Options are shared read-only between transformers and must not be mutated
// after construction.
type RedactedOptions struct {
	Char rune
}

// DefaultRedactedOptions returns options with the '*' mask character.
func DefaultRedactedOptions() *RedactedOptions {
	return &RedactedOptions{Char: DefaultMaskChar}
}

// redactedOptionsDoc is the wire form of RedactedOptions: { "char": "*" }.
type redactedOptionsDoc struct {
	Char *string `json:"char" yaml:"char" msgpack:"char"`
}

func (d redactedOptionsDoc) options() (*RedactedOptions, error) {
	if d.Char == nil {
		return DefaultRedactedOptions(), nil
	}
	c, err := parseMaskChar(*d.Char)
	if err != nil {
		return nil, err
	}
	return &RedactedOptions{Char: c}, nil
}

// parseMaskChar accepts exactly one character.
func parseMaskChar(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: char must be a single character, got %q", ErrInvalidOption, s)
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size == 1 {
		return 0, fmt.Errorf("%w: char %q is not valid UTF-8", ErrInvalidOption, s)
	}
	return r, nil
}

// DecodeRedactedOptions decodes options encoded with codec.
// Empty data yields the defaults.
func DecodeRedactedOptions(codec Codec, data []byte) (*RedactedOptions, error) {
	if len(data) == 0 {
		return DefaultRedactedOptions(), nil
	}
	var doc redactedOptionsDoc
	if err := codec.Unmarshal(data, &doc); err != nil {
		return nil, newCodecError(ErrUnmarshal, err)
	}
	return doc.options()
}

// UnmarshalJSON decodes { "char": "*" }.
func (o *RedactedOptions) UnmarshalJSON(data []byte) error {
	var doc redactedOptionsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	opts, err := doc.options()
	if err != nil {
		return err
	}
	*o = *opts
	return nil
}

// MarshalJSON encodes the options as { "char": "*" }.
func (o RedactedOptions) MarshalJSON() ([]byte, error) {
	c := string(o.Char)
	return json.Marshal(redactedOptionsDoc{Char: &c})
}

// UnmarshalYAML decodes a mapping with a char key.
func (o *RedactedOptions) UnmarshalYAML(value *yaml.Node) error {
	var doc redactedOptionsDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}
	opts, err := doc.options()
	if err != nil {
		return err
	}
	*o = *opts
	return nil
}

// Redacted keeps the first three characters of a string and replaces the
// rest with ten mask characters: 4242 4242 4242 4242 -> 424**********
//
// Strings of three characters or fewer and non-string values are returned
// unchanged. Lengths are counted in characters, not bytes.
type Redacted struct {
	Target
	options *RedactedOptions
}

// NewRedacted returns a redacted transformer bound to target.
// A nil options pointer selects DefaultRedactedOptions.
func NewRedacted(target Target, options *RedactedOptions) *Redacted {
	if options == nil {
		options = DefaultRedactedOptions()
	}
	return &Redacted{Target: target, options: options}
}

// ID returns "redacted".
func (r *Redacted) ID() string { return string(TransformerRedacted) }

// Description returns a short explanation with an example.
func (r *Redacted) Description() string {
	return "Obfuscate your sensitive data (string only). [4242 4242 4242 4242]->[424**********]"
}

// Options returns the shared options the transformer was built with.
func (r *Redacted) Options() *RedactedOptions { return r.options }

// Transform redacts string values and passes every other kind through.
func (r *Redacted) Transform(value Column) Column {
	s, ok := stringValue(value)
	if !ok {
		return value
	}
	return StringValue{Name: s.Name, Value: redactString(s.Value)}
}

func redactString(s string) string {
	if utf8.RuneCountInString(s) <= redactedPrefixLen {
		return s
	}
	end := 0
	for i := 0; i < redactedPrefixLen; i++ {
		_, size := utf8.DecodeRuneInString(s[end:])
		end += size
	}
	return s[:end] + redactedPad
}

// newRedactedFactory builds redacted transformers from encoded options.
func newRedactedFactory(target Target, options []byte, codec Codec) (Transformer, error) {
	opts, err := DecodeRedactedOptions(codec, options)
	if err != nil {
		return nil, err
	}
	return NewRedacted(target, opts), nil
}
