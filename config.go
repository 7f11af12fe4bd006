package anonym

import (
	"context"
	"os"
)

// Config declares which transformer applies to which column.
//
//	transformers:
//	  - database: github
//	    table: users
//	    columns:
//	      - name: credit_card_number
//	        transformer: redacted
//	        options:
//	          char: "*"
type Config struct {
	Transformers []TableConfig `json:"transformers" yaml:"transformers" msgpack:"transformers"`
}

// TableConfig lists the transformed columns of one table.
type TableConfig struct {
	Database string         `json:"database" yaml:"database" msgpack:"database"`
	Table    string         `json:"table" yaml:"table" msgpack:"table"`
	Columns  []ColumnConfig `json:"columns" yaml:"columns" msgpack:"columns"`
}

// ColumnConfig selects a transformer for one column.
// Options are passed to the transformer's factory re-encoded with the codec
// the config was loaded with.
type ColumnConfig struct {
	Name        string         `json:"name" yaml:"name" msgpack:"name"`
	Transformer string         `json:"transformer" yaml:"transformer" msgpack:"transformer"`
	Options     map[string]any `json:"options,omitempty" yaml:"options,omitempty" msgpack:"options,omitempty"`
}

// Columns returns the number of configured columns.
func (c *Config) Columns() int {
	n := 0
	for _, t := range c.Transformers {
		n += len(t.Columns)
	}
	return n
}

// LoadConfig decodes a configuration document.
func LoadConfig(ctx context.Context, codec Codec, data []byte) (*Config, error) {
	var cfg Config
	if err := codec.Unmarshal(data, &cfg); err != nil {
		err = newCodecError(ErrUnmarshal, err)
		emitConfigLoaded(ctx, codec.ContentType(), 0, err)
		return nil, err
	}
	emitConfigLoaded(ctx, codec.ContentType(), cfg.Columns(), nil)
	return &cfg, nil
}

// LoadConfigFile reads and decodes the configuration file at path.
func LoadConfigFile(ctx context.Context, codec Codec, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfig(ctx, codec, data)
}

// Build resolves every configured column through reg and returns the
// resulting set. It fails on the first unknown transformer, invalid option
// or duplicated column.
func (c *Config) Build(ctx context.Context, reg *Registry, codec Codec) (*Set, error) {
	set := NewSet()
	for _, tbl := range c.Transformers {
		for _, col := range tbl.Columns {
			target := Target{Database: tbl.Database, Table: tbl.Table, Column: col.Name}

			var options []byte
			if len(col.Options) > 0 {
				if codec == nil {
					return nil, newConfigError(ErrInvalidOption, col.Transformer, target.String(), nil)
				}
				data, err := codec.Marshal(col.Options)
				if err != nil {
					return nil, newConfigError(ErrInvalidOption, col.Transformer, target.String(),
						newCodecError(ErrMarshal, err))
				}
				options = data
			}

			t, err := reg.New(ctx, col.Transformer, target, options, codec)
			if err != nil {
				return nil, err
			}
			if err := set.Add(t); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
