package anonym

// Transient keeps every value as-is. It marks columns that were reviewed and
// deliberately left untouched.
type Transient struct {
	Target
}

// NewTransient returns a transient transformer bound to target.
func NewTransient(target Target) *Transient {
	return &Transient{Target: target}
}

// ID returns "transient".
func (t *Transient) ID() string { return string(TransformerTransient) }

// Description returns a short explanation with an example.
func (t *Transient) Description() string {
	return "Keep the value unchanged. [4242 4242 4242 4242]->[4242 4242 4242 4242]"
}

// Transform returns value.
func (t *Transient) Transform(value Column) Column { return value }

func newTransientFactory(target Target, _ []byte, _ Codec) (Transformer, error) {
	return NewTransient(target), nil
}
