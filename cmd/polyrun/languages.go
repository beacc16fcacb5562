// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/polyrun/polyrun/internal/toolchain"

	"github.com/spf13/cobra"
)

// newLanguagesCommand creates the `polyrun languages` command.
func newLanguagesCommand(app *App, root *rootFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "languages",
		Aliases: []string{"langs"},
		Short:   "List supported languages",
		Long: `List every supported language with its aliases, file extensions, protocol
and command templates, including overrides from the config file.

Templates use these placeholders:
  {code}      the code itself, passed as one argument
  {source}    the source file written to the work directory
  {artifact}  the compiler output inside the work directory
  {workdir}   the per-run scratch directory`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.finish(cmd, root.verbose, runLanguages(cmd, app, root, asJSON))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the registry as JSON")

	return cmd
}

func runLanguages(cmd *cobra.Command, app *App, root *rootFlags, asJSON bool) error {
	s, err := app.open(cmd, root)
	if err != nil {
		return err
	}
	defer s.Close()

	specs := s.registry.Specs()
	if asJSON {
		data, err := json.MarshalIndent(specs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(app.stdout, string(data))
		return nil
	}

	rows := make([][]string, len(specs))
	for i, spec := range specs {
		rows[i] = []string{
			string(spec.Language),
			strings.Join(spec.Aliases, ", "),
			strings.Join(spec.Extensions, " "),
			spec.Protocol.String(),
			commandTemplates(spec),
		}
	}
	fmt.Fprintln(app.stdout, newTable([]string{"Language", "Aliases", "Extensions", "Protocol", "Commands"}, rows, nil).String())
	return nil
}

// commandTemplates lists the compile and run templates, one per line.
func commandTemplates(spec toolchain.Spec) string {
	if !spec.IsCompiled() {
		return shellJoin(spec.Run)
	}
	return shellJoin(spec.Compile) + "\n" + shellJoin(spec.Run)
}
