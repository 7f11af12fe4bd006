package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/zoobzio/anonym"
)

type transformFlags struct {
	config   string
	database string
	table    string
}

func newTransformCmd(logger hclog.Logger) *cobra.Command {
	var flags transformFlags

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Transform JSON lines rows read from stdin",
		Long: "Reads one JSON object per line (column name to value), applies the transformers\n" +
			"configured for --database and --table and writes the rows to stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTransform(cmd.Context(), logger, flags, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "transformer config file (.yaml, .json, .msgpack)")
	cmd.Flags().StringVar(&flags.database, "database", "", "database the rows belong to")
	cmd.Flags().StringVar(&flags.table, "table", "", "table the rows belong to")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}

func runTransform(ctx context.Context, logger hclog.Logger, flags transformFlags, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	codec, err := codecFor(flags.config)
	if err != nil {
		return err
	}
	cfg, err := anonym.LoadConfigFile(ctx, codec, flags.config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	set, err := cfg.Build(ctx, anonym.Default(), codec)
	if err != nil {
		return fmt.Errorf("build transformers: %w", err)
	}
	logger.Info("loaded transformers", "config", flags.config, "columns", set.Len())

	dec := json.NewDecoder(bufio.NewReader(in))
	dec.UseNumber()
	enc := json.NewEncoder(out)

	rows := 0
	for {
		var row map[string]any
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("row %d: %w", rows+1, err)
		}

		if err := enc.Encode(transformRow(ctx, set, flags, row)); err != nil {
			return fmt.Errorf("row %d: %w", rows+1, err)
		}
		rows++
	}

	logger.Info("transformed rows", "database", flags.database, "table", flags.table, "rows", rows)
	return nil
}

// transformRow replaces the scalar values of bound columns. Unbound columns,
// nested objects and arrays, and numbers that do not fit int64 or float64
// are copied byte for byte.
func transformRow(ctx context.Context, set *anonym.Set, flags transformFlags, row map[string]any) map[string]any {
	names := make([]string, 0, len(row))
	for name := range row {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]any, len(row))
	for _, name := range names {
		raw := row[name]
		out[name] = raw

		if _, bound := set.Lookup(flags.database, flags.table, name); !bound {
			continue
		}
		v, ok := scalar(raw)
		if !ok {
			continue
		}
		col, ok := anonym.ColumnFromAny(name, v)
		if !ok {
			continue
		}
		if res := set.Transform(ctx, flags.database, flags.table, col); res != col {
			out[name] = anonym.ColumnValue(res)
		}
	}
	return out
}

// scalar converts json.Number to int64 or float64. It reports false for
// integers outside int64 and for numbers outside float64, which would lose
// precision or change type.
func scalar(v any) (any, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return v, true
	}
	if i, err := n.Int64(); err == nil {
		return i, true
	}
	if !strings.ContainsAny(n.String(), ".eE") {
		return nil, false
	}
	if f, err := n.Float64(); err == nil {
		return f, true
	}
	return nil, false
}
