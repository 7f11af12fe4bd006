package anonym

import (
	"strings"
	"sync"
	"testing"
	"unicode/utf8"
)

func testRedacted() *Redacted {
	return NewRedacted(Target{Database: "github", Table: "users", Column: "credit_card_number"}, DefaultRedactedOptions())
}

func TestRedacted_Scenarios(t *testing.T) {
	r := testRedacted()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"card number", "4242 4242 4242 4242", "424**********"},
		{"three chars", "abc", "abc"},
		{"two chars", "ab", "ab"},
		{"empty", "", ""},
		{"four chars", "abcd", "abc**********"},
		{"exactly thirteen", "abcdefghijklm", "abc**********"},
		{"multi-byte prefix", "日本語テキスト", "日本語**********"},
		{"three multi-byte", "日本語", "日本語"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := r.Transform(StringValue{Name: "credit_card_number", Value: tt.input})
			got, ok := StringOf(out)
			if !ok {
				t.Fatalf("Transform() returned %T, want StringValue", out)
			}
			if got != tt.want {
				t.Errorf("Transform(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRedacted_FixedWidth(t *testing.T) {
	r := testRedacted()

	for n := 4; n <= 64; n++ {
		input := strings.Repeat("x", n-1) + "y"
		got, _ := StringOf(r.Transform(StringValue{Name: "c", Value: input}))

		if utf8.RuneCountInString(got) != 13 {
			t.Errorf("len(Transform(%d chars)) = %d, want 13", n, utf8.RuneCountInString(got))
		}
		if got[:3] != input[:3] {
			t.Errorf("prefix = %q, want %q", got[:3], input[:3])
		}
		if got[3:] != "**********" {
			t.Errorf("padding = %q, want 10 '*'", got[3:])
		}
	}
}

func TestRedacted_ShortStringsUnchanged(t *testing.T) {
	r := testRedacted()

	for _, s := range []string{"", "a", "ab", "abc", "é", "éé", "ééé", "***"} {
		got, _ := StringOf(r.Transform(StringValue{Name: "c", Value: s}))
		if got != s {
			t.Errorf("Transform(%q) = %q, want unchanged", s, got)
		}
	}
}

func TestRedacted_NonStringPassThrough(t *testing.T) {
	r := testRedacted()

	values := []Column{
		NumberValue{Name: "age", Value: 42},
		FloatValue{Name: "score", Value: 4.2},
		CharValue{Name: "grade", Value: 'A'},
		BoolValue{Name: "admin", Value: true},
		NullValue{Name: "deleted_at"},
	}

	for _, v := range values {
		t.Run(string(v.Kind()), func(t *testing.T) {
			if got := r.Transform(v); got != v {
				t.Errorf("Transform(%#v) = %#v, want unchanged", v, got)
			}
		})
	}
}

func TestRedacted_ColumnNamePreserved(t *testing.T) {
	r := testRedacted()

	values := []Column{
		StringValue{Name: "first", Value: "4242 4242 4242 4242"},
		StringValue{Name: "second", Value: "ab"},
		NumberValue{Name: "third", Value: 1},
	}
	for _, v := range values {
		if got := r.Transform(v).ColumnName(); got != v.ColumnName() {
			t.Errorf("ColumnName() = %q, want %q", got, v.ColumnName())
		}
	}
}

func TestRedacted_IdempotentAtFixedWidth(t *testing.T) {
	r := testRedacted()

	once := r.Transform(StringValue{Name: "c", Value: "4242 4242 4242 4242"})
	twice := r.Transform(once)
	if once != twice {
		t.Errorf("Transform(Transform(x)) = %#v, want %#v", twice, once)
	}
	if s, _ := StringOf(twice); s != "424**********" {
		t.Errorf("Transform(Transform(x)) = %q, want %q", s, "424**********")
	}
}

// The configured mask character is kept on the options but the padding is
// always '*'. This pins that behavior so changing it is a deliberate decision.
func TestRedacted_ConfiguredCharNotApplied(t *testing.T) {
	opts := &RedactedOptions{Char: '#'}
	r := NewRedacted(Target{}, opts)

	got, _ := StringOf(r.Transform(StringValue{Name: "c", Value: "4242 4242 4242 4242"}))
	if got != "424**********" {
		t.Errorf("Transform() = %q, want %q", got, "424**********")
	}
	if strings.ContainsRune(got, '#') {
		t.Errorf("Transform() = %q, configured char should not appear", got)
	}
	if r.Options() != opts {
		t.Error("Options() should return the shared options pointer")
	}
	if opts.Char != '#' {
		t.Error("options must not be mutated")
	}
}

func TestRedacted_Identity(t *testing.T) {
	target := Target{Database: "github", Table: "users", Column: "credit_card_number"}
	r := NewRedacted(target, nil)

	if r.ID() != "redacted" {
		t.Errorf("ID() = %q, want %q", r.ID(), "redacted")
	}
	if NewRedacted(Target{}, nil).ID() != r.ID() {
		t.Error("ID() should not vary across instances")
	}
	if r.Description() == "" {
		t.Error("Description() should not be empty")
	}
	if r.DatabaseName() != "github" || r.TableName() != "users" || r.ColumnName() != "credit_card_number" {
		t.Errorf("target = %s, want github.users.credit_card_number", r.Target)
	}
	if r.Options().Char != DefaultMaskChar {
		t.Errorf("nil options should default to %q, got %q", DefaultMaskChar, r.Options().Char)
	}

	empty := NewRedacted(Target{}, nil)
	if empty.DatabaseName() != "" || empty.TableName() != "" || empty.ColumnName() != "" {
		t.Error("empty target names should be accepted as-is")
	}
}

func TestRedacted_Concurrent(t *testing.T) {
	r := testRedacted()

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := strings.Repeat(string(rune('a'+i%26)), 5+i)
			got, _ := StringOf(r.Transform(StringValue{Name: "c", Value: input}))
			if got != input[:3]+"**********" {
				errs <- got
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent Transform() = %q", got)
	}
}

func TestParseMaskChar(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"*", '*', false},
		{"#", '#', false},
		{"█", '█', false},
		{"", 0, true},
		{"**", 0, true},
		{"\xff", 0, true},
	}

	for _, tt := range tests {
		got, err := parseMaskChar(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseMaskChar(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseMaskChar(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestRedactedOptions_JSON(t *testing.T) {
	var opts RedactedOptions
	if err := opts.UnmarshalJSON([]byte(`{"char":"#"}`)); err != nil {
		t.Fatalf("UnmarshalJSON() error: %v", err)
	}
	if opts.Char != '#' {
		t.Errorf("Char = %q, want '#'", opts.Char)
	}

	data, err := opts.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	if string(data) != `{"char":"#"}` {
		t.Errorf("MarshalJSON() = %s, want %s", data, `{"char":"#"}`)
	}

	if err := opts.UnmarshalJSON([]byte(`{}`)); err != nil {
		t.Fatalf("UnmarshalJSON({}) error: %v", err)
	}
	if opts.Char != DefaultMaskChar {
		t.Errorf("missing char should default to %q, got %q", DefaultMaskChar, opts.Char)
	}
}

func TestRedacted_PointerString(t *testing.T) {
	r := testRedacted()

	out := r.Transform(&StringValue{Name: "credit_card_number", Value: "4242 4242 4242 4242"})
	got, ok := StringOf(out)
	if !ok {
		t.Fatalf("Transform(*StringValue) returned %T, want a string variant", out)
	}
	if got != "424**********" {
		t.Errorf("Transform(*StringValue) = %q, want %q", got, "424**********")
	}
	if out.ColumnName() != "credit_card_number" {
		t.Errorf("ColumnName() = %q, want %q", out.ColumnName(), "credit_card_number")
	}

	var nilString *StringValue
	if got := r.Transform(nilString); got != Column(nilString) {
		t.Errorf("Transform(nil *StringValue) = %#v, want it unchanged", got)
	}
}
