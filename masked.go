package anonym

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaskType represents a known data format with masking rules.
type MaskType string

const (
	MaskSSN   MaskType = "ssn"   // 123-45-6789 -> ***-**-6789
	MaskEmail MaskType = "email" // alice@example.com -> a***@example.com
	MaskPhone MaskType = "phone" // (555) 123-4567 -> (***) ***-4567
	MaskCard  MaskType = "card"  // 4111111111111111 -> ************1111
	MaskIP    MaskType = "ip"    // 192.168.1.100 -> 192.168.xxx.xxx
	MaskUUID  MaskType = "uuid"  // 550e8400-e29b-41d4-a716-446655440000 -> 550e8400-****-****-****-************
	MaskIBAN  MaskType = "iban"  // GB82WEST12345698765432 -> GB82**************5432
	MaskName  MaskType = "name"  // John Smith -> J*** S****
)

// Masker applies content-aware masking.
type Masker interface {
	Mask(value string) string
}

// MaskerFunc adapts a function to the Masker interface.
type MaskerFunc func(value string) string

// Mask calls f(value).
func (f MaskerFunc) Mask(value string) string { return f(value) }

// maskers maps each MaskType to its masking rule.
var maskers = map[MaskType]Masker{
	MaskSSN:   MaskerFunc(maskSSN),
	MaskEmail: MaskerFunc(maskEmail),
	MaskPhone: MaskerFunc(maskPhone),
	MaskCard:  MaskerFunc(maskCard),
	MaskIP:    MaskerFunc(maskIP),
	MaskUUID:  MaskerFunc(maskUUID),
	MaskIBAN:  MaskerFunc(maskIBAN),
	MaskName:  MaskerFunc(maskName),
}

// IsValidMaskType returns true if the type is a known mask type.
func IsValidMaskType(mt MaskType) bool {
	_, ok := maskers[mt]
	return ok
}

// MaskerFor returns the builtin masker for mt.
func MaskerFor(mt MaskType) (Masker, bool) {
	m, ok := maskers[mt]
	return m, ok
}

// maskAll replaces every character of value with '*'.
func maskAll(value string) string {
	return strings.Repeat("*", utf8.RuneCountInString(value))
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func lastDigits(value string, n int) (string, int, bool) {
	d := digitsOf(value)
	if len(d) < n {
		return "", len(d), false
	}
	return d[len(d)-n:], len(d), true
}

func maskSSN(value string) string {
	last4, _, ok := lastDigits(value, 4)
	if !ok {
		return maskAll(value)
	}
	return "***-**-" + last4
}

func maskEmail(value string) string {
	at := strings.LastIndex(value, "@")
	if at < 1 {
		return maskAll(value)
	}
	first, _ := utf8.DecodeRuneInString(value)
	return string(first) + "***" + value[at:]
}

func maskPhone(value string) string {
	last4, n, ok := lastDigits(value, 4)
	switch {
	case !ok:
		return maskAll(value)
	case strings.HasPrefix(value, "(") && n >= 10:
		return "(***) ***-" + last4
	case n >= 10:
		return "***-***-" + last4
	default:
		return "***-" + last4
	}
}

func maskCard(value string) string {
	last4, n, ok := lastDigits(value, 4)
	if !ok {
		return maskAll(value)
	}
	var sep string
	switch {
	case strings.Contains(value, " "):
		sep = " "
	case strings.Contains(value, "-"):
		sep = "-"
	default:
		return strings.Repeat("*", n-4) + last4
	}
	groups := make([]string, (n-4+3)/4, (n-4+3)/4+1)
	for i := range groups {
		groups[i] = "****"
	}
	return strings.Join(append(groups, last4), sep)
}

// maskIP keeps the network half of an address.
// IPv4 keeps two octets, IPv6 keeps the 64-bit prefix.
func maskIP(value string) string {
	if parts := strings.Split(value, "."); len(parts) == 4 {
		return parts[0] + "." + parts[1] + ".xxx.xxx"
	}
	if !strings.Contains(value, ":") {
		return maskAll(value)
	}
	groups, ok := expandIPv6(value)
	if !ok {
		return maskAll(value)
	}
	return strings.Join(groups[:4], ":") + ":xxxx:xxxx:xxxx:xxxx"
}

// expandIPv6 returns the eight groups of an address, expanding "::".
func expandIPv6(value string) ([]string, bool) {
	head, tail, compressed := strings.Cut(value, "::")
	if !compressed {
		groups := strings.Split(value, ":")
		return groups, len(groups) == 8
	}
	if strings.Contains(tail, "::") {
		return nil, false
	}
	var left, right []string
	if head != "" {
		left = strings.Split(head, ":")
	}
	if tail != "" {
		right = strings.Split(tail, ":")
	}
	missing := 8 - len(left) - len(right)
	if missing < 0 {
		return nil, false
	}
	groups := make([]string, 0, 8)
	groups = append(groups, left...)
	for i := 0; i < missing; i++ {
		groups = append(groups, "0000")
	}
	return append(groups, right...), true
}

func maskUUID(value string) string {
	parts := strings.Split(value, "-")
	if len(parts) != 5 {
		return maskAll(value)
	}
	return parts[0] + "-****-****-****-************"
}

func maskIBAN(value string) string {
	runes := []rune(value)
	if len(runes) <= 8 {
		return maskAll(value)
	}
	return string(runes[:4]) + strings.Repeat("*", len(runes)-8) + string(runes[len(runes)-4:])
}

func maskName(value string) string {
	words := strings.Fields(value)
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(first) + strings.Repeat("*", utf8.RuneCountInString(w[size:]))
	}
	return strings.Join(words, " ")
}

// MaskedOptions selects the masking rule.
type MaskedOptions struct {
	Type MaskType `json:"type" yaml:"type" msgpack:"type"`
}

// Masked applies a content-aware mask to string values.
// Non-string values are returned unchanged.
type Masked struct {
	Target
	maskType MaskType
	masker   Masker
}

// NewMasked returns a masked transformer for a builtin mask type.
func NewMasked(target Target, mt MaskType) (*Masked, error) {
	m, ok := MaskerFor(mt)
	if !ok {
		return nil, fmt.Errorf("%w: unknown mask type %q", ErrInvalidOption, mt)
	}
	return &Masked{Target: target, maskType: mt, masker: m}, nil
}

// NewMaskedWith returns a masked transformer using a custom masker.
func NewMaskedWith(target Target, mt MaskType, m Masker) *Masked {
	return &Masked{Target: target, maskType: mt, masker: m}
}

// ID returns "masked".
func (m *Masked) ID() string { return string(TransformerMasked) }

// Description returns a short explanation with an example.
func (m *Masked) Description() string {
	return "Mask a known format and keep its shape (string only). [alice@example.com]->[a***@example.com]"
}

// MaskType returns the configured mask type.
func (m *Masked) MaskType() MaskType { return m.maskType }

// Transform masks string values and passes every other kind through.
func (m *Masked) Transform(value Column) Column {
	s, ok := stringValue(value)
	if !ok {
		return value
	}
	return StringValue{Name: s.Name, Value: m.masker.Mask(s.Value)}
}

func newMaskedFactory(target Target, options []byte, codec Codec) (Transformer, error) {
	var opts MaskedOptions
	if len(options) > 0 {
		if err := codec.Unmarshal(options, &opts); err != nil {
			return nil, newCodecError(ErrUnmarshal, err)
		}
	}
	if opts.Type == "" {
		return nil, fmt.Errorf("%w: masked transformer requires a type", ErrInvalidOption)
	}
	return NewMasked(target, opts.Type)
}
