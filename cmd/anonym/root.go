package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/zoobzio/anonym"
	"github.com/zoobzio/anonym/json"
	"github.com/zoobzio/anonym/msgpack"
	"github.com/zoobzio/anonym/yaml"
)

// newRootCmd builds the anonym command tree.
func newRootCmd(logger hclog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "anonym",
		Short:         "Anonymize column values",
		Long:          "anonym applies configured transformers (redacted, masked, hashed, transient) to rows read as JSON lines.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTransformCmd(logger), newListCmd())
	return root
}

// codecFor picks a codec from the config file extension.
func codecFor(path string) (anonym.Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.New(), nil
	case ".json":
		return json.New(), nil
	case ".msgpack", ".mpk":
		return msgpack.New(), nil
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .yaml, .json or .msgpack)", filepath.Ext(path))
	}
}
