package anonym

// Transformer converts one column value into its anonymized replacement.
//
// A transformer is bound to a single (database, table, column) target. The
// target is descriptive metadata used for routing; Transform never consults it.
//
// Transform must be total and safe for concurrent use. Variants that only
// understand some kinds must return other values unchanged.
type Transformer interface {
	// ID returns the stable identifier used to select the transformer in config.
	ID() string

	// Description returns a human readable explanation with an example.
	Description() string

	DatabaseName() string
	TableName() string
	ColumnName() string

	// Transform returns the replacement for value.
	Transform(value Column) Column
}

// Target identifies the column a transformer is bound to.
// Empty names are accepted.
type Target struct {
	Database string `json:"database" yaml:"database"`
	Table    string `json:"table" yaml:"table"`
	Column   string `json:"column" yaml:"column"`
}

// DatabaseName returns the bound database name.
func (t Target) DatabaseName() string { return t.Database }

// TableName returns the bound table name.
func (t Target) TableName() string { return t.Table }

// ColumnName returns the bound column name.
func (t Target) ColumnName() string { return t.Column }

func (t Target) String() string {
	return t.Database + "." + t.Table + "." + t.Column
}

// TransformerID names a builtin transformer.
// Use these constants in config files and in struct tags: `anonymize:"redacted"`
type TransformerID string

const (
	// TransformerRedacted keeps a 3 character prefix and masks the rest.
	TransformerRedacted TransformerID = "redacted"

	// TransformerMasked applies a content-aware mask (email, card, ...).
	TransformerMasked TransformerID = "masked"

	// TransformerHashed replaces the value with a digest.
	TransformerHashed TransformerID = "hashed"

	// TransformerTransient keeps the value as-is.
	TransformerTransient TransformerID = "transient"
)

// validTransformerIDs contains all builtin transformer identifiers.
var validTransformerIDs = map[TransformerID]bool{
	TransformerRedacted:  true,
	TransformerMasked:    true,
	TransformerHashed:    true,
	TransformerTransient: true,
}

// IsValidTransformerID returns true if id names a builtin transformer.
func IsValidTransformerID(id TransformerID) bool {
	return validTransformerIDs[id]
}
