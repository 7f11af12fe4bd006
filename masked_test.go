package anonym

import (
	"errors"
	"testing"
)

func TestMaskers(t *testing.T) {
	tests := []struct {
		mt    MaskType
		input string
		want  string
	}{
		{MaskSSN, "123-45-6789", "***-**-6789"},
		{MaskSSN, "123456789", "***-**-6789"},
		{MaskSSN, "123", "***"},

		{MaskEmail, "alice@example.com", "a***@example.com"},
		{MaskEmail, "a@b.com", "a***@b.com"},
		{MaskEmail, "élodie@example.fr", "é***@example.fr"},
		{MaskEmail, "noatsign", "********"},
		{MaskEmail, "@example.com", "************"},

		{MaskPhone, "(555) 123-4567", "(***) ***-4567"},
		{MaskPhone, "555-123-4567", "***-***-4567"},
		{MaskPhone, "123-4567", "***-4567"},
		{MaskPhone, "123", "***"},

		{MaskCard, "4111111111111111", "************1111"},
		{MaskCard, "4111 1111 1111 1111", "**** **** **** 1111"},
		{MaskCard, "4111-1111-1111-1111", "****-****-****-1111"},
		{MaskCard, "123", "***"},

		{MaskIP, "192.168.1.100", "192.168.xxx.xxx"},
		{MaskIP, "2001:0db8:85a3:0000:0000:8a2e:0370:7334", "2001:0db8:85a3:0000:xxxx:xxxx:xxxx:xxxx"},
		{MaskIP, "2001:db8:85a3::8a2e:370:7334", "2001:db8:85a3:0000:xxxx:xxxx:xxxx:xxxx"},
		{MaskIP, "::1", "0000:0000:0000:0000:xxxx:xxxx:xxxx:xxxx"},
		{MaskIP, "::", "0000:0000:0000:0000:xxxx:xxxx:xxxx:xxxx"},
		{MaskIP, "1::2::3", "*******"},
		{MaskIP, "invalid", "*******"},

		{MaskUUID, "550e8400-e29b-41d4-a716-446655440000", "550e8400-****-****-****-************"},
		{MaskUUID, "invalid", "*******"},

		{MaskIBAN, "GB82WEST12345698765432", "GB82**************5432"},
		{MaskIBAN, "SHORT", "*****"},

		{MaskName, "John Smith", "J*** S****"},
		{MaskName, "Bob Jones Jr", "B** J**** J*"},
		{MaskName, "Zoë", "Z**"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mt)+"/"+tt.input, func(t *testing.T) {
			m, ok := MaskerFor(tt.mt)
			if !ok {
				t.Fatalf("MaskerFor(%q) not found", tt.mt)
			}
			if got := m.Mask(tt.input); got != tt.want {
				t.Errorf("Mask(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidMaskType(t *testing.T) {
	for _, mt := range []MaskType{MaskSSN, MaskEmail, MaskPhone, MaskCard, MaskIP, MaskUUID, MaskIBAN, MaskName} {
		if !IsValidMaskType(mt) {
			t.Errorf("IsValidMaskType(%q) = false", mt)
		}
	}
	if IsValidMaskType("unknown") {
		t.Error("IsValidMaskType(unknown) = true")
	}
}

func TestMasked_Transform(t *testing.T) {
	m, err := NewMasked(Target{Column: "email"}, MaskEmail)
	if err != nil {
		t.Fatalf("NewMasked() error: %v", err)
	}
	if m.ID() != "masked" {
		t.Errorf("ID() = %q, want %q", m.ID(), "masked")
	}
	if m.MaskType() != MaskEmail {
		t.Errorf("MaskType() = %q, want %q", m.MaskType(), MaskEmail)
	}

	out := m.Transform(StringValue{Name: "email", Value: "bob@test.org"})
	if s, _ := StringOf(out); s != "b***@test.org" {
		t.Errorf("Transform() = %q, want %q", s, "b***@test.org")
	}
	if out.ColumnName() != "email" {
		t.Errorf("ColumnName() = %q, want %q", out.ColumnName(), "email")
	}

	n := NumberValue{Name: "id", Value: 7}
	if got := m.Transform(n); got != n {
		t.Errorf("Transform(%#v) = %#v, want unchanged", n, got)
	}
}

func TestMasked_Custom(t *testing.T) {
	m := NewMaskedWith(Target{}, "upper", MaskerFunc(func(string) string { return "X" }))
	if s, _ := StringOf(m.Transform(StringValue{Value: "anything"})); s != "X" {
		t.Errorf("Transform() = %q, want %q", s, "X")
	}
}

func TestNewMasked_UnknownType(t *testing.T) {
	_, err := NewMasked(Target{}, "passport")
	if !errors.Is(err, ErrInvalidOption) {
		t.Errorf("NewMasked(passport) error = %v, want ErrInvalidOption", err)
	}
}

func TestMasked_PointerString(t *testing.T) {
	m, err := NewMasked(Target{Column: "email"}, MaskEmail)
	if err != nil {
		t.Fatalf("NewMasked() error: %v", err)
	}
	got, _ := StringOf(m.Transform(&StringValue{Name: "email", Value: "alice@example.com"}))
	if got != "a***@example.com" {
		t.Errorf("Transform(*StringValue) = %q, want %q", got, "a***@example.com")
	}
}
