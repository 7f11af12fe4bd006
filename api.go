// Package anonym provides pluggable column-value transformers for database
// anonymization pipelines.
//
// A pipeline reads rows, hands each value to the transformer bound to its
// (database, table, column) target and forwards the replacement. This package
// supplies the transformer contract, the tagged value type it operates on and
// the builtin strategies. Reading and writing databases is left to the caller.
//
// # Values
//
// Column is a closed sum type. Each variant carries the column name and a
// payload:
//
//	StringValue, NumberValue, FloatValue, CharValue, BoolValue, NullValue
//
// Transformers only act on the kinds they understand and return every other
// value unchanged. The column name is never modified.
//
// # Transformers
//
// Every strategy implements Transformer:
//
//	ID() string
//	Description() string
//	DatabaseName() string
//	TableName() string
//	ColumnName() string
//	Transform(Column) Column
//
// Transform is total and safe for concurrent use.
//
// Builtin strategies:
//
//   - redacted: 4242 4242 4242 4242 → 424********** (3 visible characters, 10 '*')
//   - masked: alice@example.com → a***@example.com (ssn, email, phone, card, ip, uuid, iban, name)
//   - hashed: secret → 2bb80d53... (sha256, sha512, argon2, bcrypt)
//   - transient: value kept as-is
//
// # Redaction
//
// Strings longer than three characters become their first three characters
// followed by exactly ten '*', so every redacted value is 13 characters wide.
// Shorter strings are returned unchanged. RedactedOptions accepts a mask
// character ({"char": "#"}) but the padding is always '*'.
//
// # Basic Usage
//
//	card := anonym.NewRedacted(anonym.Target{
//	    Database: "github",
//	    Table:    "users",
//	    Column:   "credit_card_number",
//	}, anonym.DefaultRedactedOptions())
//
//	out := card.Transform(anonym.StringValue{Name: "credit_card_number", Value: "4242 4242 4242 4242"})
//	// out == StringValue{Name: "credit_card_number", Value: "424**********"}
//
// # Configuration
//
// Transformers are usually selected by ID from a config document and built
// through a Registry:
//
//	cfg, _ := anonym.LoadConfigFile(ctx, yaml.New(), "anonym.yaml")
//	set, _ := cfg.Build(ctx, anonym.Default(), yaml.New())
//
//	value = set.Transform(ctx, "github", "users", value)
//
// Custom strategies are added with Registry.Register.
//
// # Structs
//
// Anonymizer applies transformers to tagged struct fields:
//
//	type User struct {
//	    Card  string `db:"credit_card_number" anonymize:"redacted"`
//	    Email string `anonymize:"masked,email"`
//	}
//
// # Codec Providers
//
// Configuration documents and transformer options are decoded through a
// Codec. Implementations are available as subpackages:
//
//   - json - JSON encoding (application/json)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//
// # Events
//
// The package does not log. It emits capitan signals (SignalTransformerCreated,
// SignalValueTransformed, SignalHashFailed, SignalConfigLoaded,
// SignalRecordAnonymized) that callers can observe.
package anonym
