package anonym

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for anonymization events.
var (
	SignalTransformerCreated = capitan.NewSignal("anonym.transformer.created", "Transformer bound to a column")
	SignalValueTransformed   = capitan.NewSignal("anonym.value.transformed", "Column value replaced")
	SignalHashFailed         = capitan.NewSignal("anonym.hash.failed", "Hashing failed, value redacted instead")
	SignalConfigLoaded       = capitan.NewSignal("anonym.config.loaded", "Transformer configuration decoded")
	SignalRecordAnonymized   = capitan.NewSignal("anonym.record.anonymized", "Struct fields transformed")
)

// Keys for typed event data.
var (
	KeyTransformer = capitan.NewStringKey("transformer")
	KeyDatabase    = capitan.NewStringKey("database")
	KeyTable       = capitan.NewStringKey("table")
	KeyColumn      = capitan.NewStringKey("column")
	KeyKind        = capitan.NewStringKey("kind")
	KeyAlgorithm   = capitan.NewStringKey("algorithm")
	KeyContentType = capitan.NewStringKey("content_type")
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyCount       = capitan.NewIntKey("count")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

func targetFields(t Target) []capitan.Field {
	return []capitan.Field{
		KeyDatabase.Field(t.Database),
		KeyTable.Field(t.Table),
		KeyColumn.Field(t.Column),
	}
}

// emitTransformerCreated emits an event when a registry builds a transformer.
func emitTransformerCreated(ctx context.Context, t Transformer) {
	target := Target{Database: t.DatabaseName(), Table: t.TableName(), Column: t.ColumnName()}
	fields := append(targetFields(target), KeyTransformer.Field(t.ID()))
	capitan.Emit(ctx, SignalTransformerCreated, fields...)
}

// emitValueTransformed emits an event when a set replaces a value.
func emitValueTransformed(ctx context.Context, t Transformer, kind Kind) {
	target := Target{Database: t.DatabaseName(), Table: t.TableName(), Column: t.ColumnName()}
	fields := append(targetFields(target),
		KeyTransformer.Field(t.ID()),
		KeyKind.Field(string(kind)),
	)
	capitan.Emit(ctx, SignalValueTransformed, fields...)
}

// emitHashFailed reports a hashing failure.
func emitHashFailed(ctx context.Context, target Target, algo HashAlgo, err error) {
	fields := append(targetFields(target),
		KeyAlgorithm.Field(string(algo)),
		KeyError.Field(err),
	)
	capitan.Error(ctx, SignalHashFailed, fields...)
}

// emitConfigLoaded emits an event when a configuration document is decoded.
func emitConfigLoaded(ctx context.Context, contentType string, columns int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyCount.Field(columns),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalConfigLoaded, fields...)
	} else {
		capitan.Emit(ctx, SignalConfigLoaded, fields...)
	}
}

// emitRecordAnonymized emits an event when a struct has been processed.
func emitRecordAnonymized(ctx context.Context, typeName string, fields int, duration time.Duration) {
	capitan.Emit(ctx, SignalRecordAnonymized,
		KeyTypeName.Field(typeName),
		KeyCount.Field(fields),
		KeyDuration.Field(duration),
	)
}
