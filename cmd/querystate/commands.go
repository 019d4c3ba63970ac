package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/querystate"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type options struct {
	encoding   string
	facetsFile string
	path       string
	asJSON     bool
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "querystate",
		Short: "Inspect and normalize storefront filter query strings",
		Long: `querystate works on the query strings the storefront puts in product URLs.

Keys with no value are dropped, repeated values are merged, and output keys
are sorted, so the printed query is the canonical URL for a selection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.encoding, "encoding", "repeated", "list encoding: repeated (size=M&size=L) or comma (size=M,L)")
	flags.StringVar(&opts.facetsFile, "facets", "", "YAML facet table (defaults to the built-in table)")
	flags.StringVar(&opts.path, "path", "/products", "path prefixed to printed hrefs")
	flags.BoolVar(&opts.asJSON, "json", false, "print the decoded state as JSON instead of YAML")

	root.AddCommand(
		decodeCmd(opts),
		encodeCmd(opts),
		toggleCmd(opts),
		setCmd(opts),
	)
	return root
}

func (o *options) codec() (*querystate.Codec, error) {
	enc, err := querystate.ParseEncoding(o.encoding)
	if err != nil {
		return nil, err
	}
	facets := querystate.DefaultFacets()
	if o.facetsFile != "" {
		f, err := os.Open(o.facetsFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if facets, err = querystate.LoadFacets(f); err != nil {
			return nil, fmt.Errorf("%s: %w", o.facetsFile, err)
		}
	}
	return querystate.NewCodec(enc, facets), nil
}

func decodeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <query>",
		Short: "Print the decoded state and its canonical query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := opts.codec()
			if err != nil {
				return err
			}
			state := codec.Decode(strings.TrimPrefix(args[0], "?"))
			return printState(cmd.OutOrStdout(), opts, codec, state)
		},
	}
}

func encodeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [key=value ...]",
		Short: "Encode key=value pairs, or a YAML map read from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := opts.codec()
			if err != nil {
				return err
			}

			var state querystate.State
			if len(args) > 0 {
				pairs := make([]querystate.Pair, 0, len(args))
				for _, arg := range args {
					k, v, ok := strings.Cut(arg, "=")
					if !ok {
						return fmt.Errorf("expected key=value, got %q", arg)
					}
					pairs = append(pairs, querystate.Pair{Key: k, Value: v})
				}
				state = codec.DecodePairs(pairs)
			} else {
				var m map[string]any
				if err := yaml.NewDecoder(cmd.InOrStdin()).Decode(&m); err != nil && err != io.EOF {
					return fmt.Errorf("read YAML from stdin: %w", err)
				}
				state = codec.DecodeMap(m)
			}

			fmt.Fprintln(cmd.OutOrStdout(), codec.Encode(state))
			return nil
		},
	}
}

func toggleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <query> <facet> <value>",
		Short: "Add or remove a value of a multi-select facet",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := opts.codec()
			if err != nil {
				return err
			}
			if !codec.Facets().IsMulti(args[1]) {
				return fmt.Errorf("%q is not a multi-select facet", args[1])
			}
			next := querystate.ToggleMultiValue(codec.Decode(args[0]), args[1], args[2])
			fmt.Fprintln(cmd.OutOrStdout(), codec.Href(opts.path, next))
			return nil
		},
	}
}

func setCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set <query> <key> [value]",
		Short: "Replace a single-valued key; omit the value to clear it",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := opts.codec()
			if err != nil {
				return err
			}
			value := ""
			if len(args) == 3 {
				value = args[2]
			}
			next := querystate.SetSingleValue(codec.Decode(args[0]), args[1], value)
			fmt.Fprintln(cmd.OutOrStdout(), codec.Href(opts.path, next))
			return nil
		},
	}
}

func printState(w io.Writer, opts *options, codec *querystate.Codec, state querystate.State) error {
	doc := struct {
		Query string              `json:"query" yaml:"query"`
		Href  string              `json:"href" yaml:"href"`
		State map[string][]string `json:"state" yaml:"state"`
	}{
		Query: codec.Encode(state),
		Href:  codec.Href(opts.path, state),
		State: state.Map(),
	}

	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
