package anonym

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/zoobzio/sentinel"
)

const (
	// TagAnonymize selects the transformer for a struct field:
	// `anonymize:"redacted"`, `anonymize:"masked,email"`, `anonymize:"hashed,sha512"`.
	TagAnonymize = "anonymize"

	// TagColumn overrides the column name a field is bound to.
	// Defaults to the Go field name.
	TagColumn = "db"
)

func init() {
	sentinel.Tag(TagAnonymize)
	sentinel.Tag(TagColumn)
}

// tagOptionKeys maps a transformer ID to the option set by the tag argument.
var tagOptionKeys = map[string]string{
	string(TransformerRedacted): "char",
	string(TransformerMasked):   "type",
	string(TransformerHashed):   "algo",
}

// Anonymizer applies transformers to the tagged fields of T.
//
// Supported field types are string, []string and map[K]string. Fields are
// bound to Target{database, table, column}, where column is the `db` tag or
// the field name.
//
// Anonymizers are immutable after construction and safe for concurrent use.
type Anonymizer[T Cloner[T]] struct {
	typeName string
	plans    []fieldPlan
}

// fieldPlan describes how to transform a single field.
type fieldPlan struct {
	index       []int
	name        string
	transformer Transformer
	isSlice     bool
	isMap       bool
}

// NewAnonymizer scans T and builds a transformer for every tagged field.
// codec encodes tag arguments into transformer options.
func NewAnonymizer[T Cloner[T]](ctx context.Context, reg *Registry, codec Codec, database, table string) (*Anonymizer[T], error) {
	if err := checkUnexported(reflect.TypeFor[T]()); err != nil {
		return nil, err
	}

	spec := sentinel.Scan[T]()
	a := &Anonymizer[T]{typeName: spec.TypeName}

	for _, field := range spec.Fields {
		tag, ok := field.Tags[TagAnonymize]
		if !ok {
			continue
		}

		rt := field.ReflectType
		isString := rt.Kind() == reflect.String
		isSlice := rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.String
		isMap := rt.Kind() == reflect.Map && rt.Elem().Kind() == reflect.String
		if !isString && !isSlice && !isMap {
			return nil, newConfigError(ErrInvalidTag, tag, field.Name,
				fmt.Errorf("unsupported field type %s", rt))
		}

		column := field.Name
		if c := field.Tags[TagColumn]; c != "" {
			column = c
		}
		target := Target{Database: database, Table: table, Column: column}

		id, arg, _ := strings.Cut(tag, ",")
		options, err := tagOptions(codec, id, arg)
		if err != nil {
			return nil, newConfigError(ErrInvalidTag, id, field.Name, err)
		}

		t, err := reg.New(ctx, id, target, options, codec)
		if err != nil {
			return nil, err
		}

		a.plans = append(a.plans, fieldPlan{
			index:       field.Index,
			name:        field.Name,
			transformer: t,
			isSlice:     isSlice,
			isMap:       isMap,
		})
	}

	return a, nil
}

// checkUnexported rejects tagged fields that cannot be set. Metadata scans
// skip unexported fields, which would leave them in plaintext.
func checkUnexported(rt reflect.Type) error {
	if rt.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.IsExported() {
			continue
		}
		if tag, ok := f.Tag.Lookup(TagAnonymize); ok {
			id, _, _ := strings.Cut(tag, ",")
			return newConfigError(ErrInvalidTag, id, f.Name, errors.New("field is unexported"))
		}
	}
	return nil
}

func tagOptions(codec Codec, id, arg string) ([]byte, error) {
	if arg == "" {
		return nil, nil
	}
	key, ok := tagOptionKeys[id]
	if !ok {
		return nil, fmt.Errorf("transformer %q takes no tag argument", id)
	}
	if codec == nil {
		return nil, fmt.Errorf("tag argument %q needs a codec", arg)
	}
	data, err := codec.Marshal(map[string]string{key: arg})
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// Fields returns the names of the transformed fields.
func (a *Anonymizer[T]) Fields() []string {
	names := make([]string, len(a.plans))
	for i, p := range a.plans {
		names[i] = p.name
	}
	return names
}

// Anonymize returns a transformed clone of obj. obj itself is not modified.
func (a *Anonymizer[T]) Anonymize(ctx context.Context, obj *T) *T {
	if obj == nil {
		return nil
	}
	start := time.Now()

	clone := (*obj).Clone()
	rv := reflect.ValueOf(&clone).Elem()

	for _, plan := range a.plans {
		field := rv.FieldByIndex(plan.index)
		switch {
		case plan.isSlice:
			if field.IsNil() {
				continue
			}
			for i := 0; i < field.Len(); i++ {
				elem := field.Index(i)
				elem.SetString(plan.apply(elem.String()))
			}
		case plan.isMap:
			if field.IsNil() {
				continue
			}
			iter := field.MapRange()
			for iter.Next() {
				v := reflect.New(field.Type().Elem()).Elem()
				v.SetString(plan.apply(iter.Value().String()))
				field.SetMapIndex(iter.Key(), v)
			}
		default:
			field.SetString(plan.apply(field.String()))
		}
	}

	emitRecordAnonymized(ctx, a.typeName, len(a.plans), time.Since(start))
	return &clone
}

// apply runs the transformer on a single string. A transformer that returns a
// non-string variant leaves the field unchanged.
func (p fieldPlan) apply(s string) string {
	out, ok := StringOf(p.transformer.Transform(StringValue{Name: p.transformer.ColumnName(), Value: s}))
	if !ok {
		return s
	}
	return out
}
