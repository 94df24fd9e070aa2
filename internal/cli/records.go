package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nmtools/nmrec/internal/logging"
	"github.com/nmtools/nmrec/pkg/grammar"
)

type recordsFlags struct {
	format string
}

const formatJSON = "json"

// recordInfo represents a record grammar in JSON output.
type recordInfo struct {
	Name    string       `json:"name"`
	Aliases []string     `json:"aliases"`
	Options []optionInfo `json:"options"`
}

// optionInfo represents one option of a record grammar.
type optionInfo struct {
	Keyword string   `json:"keyword"`
	MinLen  int      `json:"minLen"`
	Shape   string   `json:"shape"`
	Values  []string `json:"values,omitempty"`
}

func newRecordsCommand() *cobra.Command {
	flags := &recordsFlags{}

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List supported record grammars",
		Long: `List all supported record types with their option keywords,
minimum abbreviation lengths, and value shapes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grammars := grammar.Default().Grammars()

			if flags.format == formatJSON {
				return outputRecordsJSON(cmd.OutOrStdout(), grammars)
			}

			logger := logging.NewInteractive()

			for _, g := range grammars {
				logger.Info("$"+g.Name, "aliases", aliasNames(g))

				for _, opt := range g.Options {
					keyvals := []any{
						"min", opt.Keyword.MinLen,
						"shape", opt.Kind.String(),
					}
					if len(opt.Allowed) > 0 {
						keyvals = append(keyvals, "values", strings.Join(opt.Allowed, "|"))
					}
					logger.Info("  "+opt.Keyword.Full, keyvals...)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func aliasNames(g *grammar.RecordGrammar) string {
	names := make([]string, 0, len(g.Aliases))
	for _, a := range g.Aliases {
		names = append(names, a.Full)
	}
	return strings.Join(names, ", ")
}

func outputRecordsJSON(w io.Writer, grammars []*grammar.RecordGrammar) error {
	infos := make([]recordInfo, 0, len(grammars))

	for _, g := range grammars {
		info := recordInfo{
			Name:    g.Name,
			Aliases: make([]string, 0, len(g.Aliases)),
			Options: make([]optionInfo, 0, len(g.Options)),
		}
		for _, a := range g.Aliases {
			info.Aliases = append(info.Aliases, a.Full)
		}
		for _, opt := range g.Options {
			info.Options = append(info.Options, optionInfo{
				Keyword: opt.Keyword.Full,
				MinLen:  opt.Keyword.MinLen,
				Shape:   opt.Kind.String(),
				Values:  opt.Allowed,
			})
		}
		infos = append(infos, info)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(infos); err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	return nil
}
