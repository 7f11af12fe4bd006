package anonym

import (
	"context"
	"sync"
)

// Set routes column values to the transformer bound to their target.
// A Set is safe for concurrent use; Transform only takes a read lock.
type Set struct {
	mu           sync.RWMutex
	transformers map[Target]Transformer
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{transformers: make(map[Target]Transformer)}
}

// Add binds t to its own target. A target can only be bound once.
func (s *Set) Add(t Transformer) error {
	target := Target{Database: t.DatabaseName(), Table: t.TableName(), Column: t.ColumnName()}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.transformers[target]; ok {
		return newConfigError(ErrDuplicateTarget, existing.ID(), target.String(), nil)
	}
	s.transformers[target] = t
	return nil
}

// Lookup returns the transformer bound to (database, table, column).
func (s *Set) Lookup(database, table, column string) (Transformer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.transformers[Target{Database: database, Table: table, Column: column}]
	return t, ok
}

// Len returns the number of bound targets.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transformers)
}

// Transformers returns every bound transformer in no particular order.
func (s *Set) Transformers() []Transformer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Transformer, 0, len(s.transformers))
	for _, t := range s.transformers {
		out = append(out, t)
	}
	return out
}

// Transform applies the transformer bound to the value's column.
// Values of unbound columns are returned unchanged, and so are nil values.
func (s *Set) Transform(ctx context.Context, database, table string, value Column) Column {
	if deref(value) == nil {
		return value
	}
	t, ok := s.Lookup(database, table, value.ColumnName())
	if !ok {
		return value
	}
	out := t.Transform(value)
	emitValueTransformed(ctx, t, value.Kind())
	return out
}

// TransformRow applies Transform to every value of a row.
// The input slice is not modified; nil entries are kept as nil.
func (s *Set) TransformRow(ctx context.Context, database, table string, row []Column) []Column {
	out := make([]Column, len(row))
	for i, v := range row {
		out[i] = s.Transform(ctx, database, table, v)
	}
	return out
}
