// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/polyrun/polyrun/internal/issue"
	"github.com/polyrun/polyrun/internal/runtime"
	"github.com/polyrun/polyrun/internal/toolchain"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const colAvailability = 2

// availabilityReport is the JSON shape of one `check` row.
type availabilityReport struct {
	Language  toolchain.Language `json:"language"`
	Probe     []string           `json:"probe"`
	Available bool               `json:"available"`
}

// newCheckCommand creates the `polyrun check` command.
func newCheckCommand(app *App, root *rootFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check [LANGUAGE...]",
		Short: "Show which toolchains are installed",
		Long: `Probe the toolchain of every supported language (or only the named ones)
and report whether it is installed. Probes run concurrently, each bounded by
probe_timeout.

When languages are named and any of them is missing, the exit code is 127.`,
		Example: `  polyrun check
  polyrun check python go c++
  polyrun check --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.finish(cmd, root.verbose, runCheck(cmd, app, root, args, asJSON))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the results as JSON")

	return cmd
}

func runCheck(cmd *cobra.Command, app *App, root *rootFlags, languages []string, asJSON bool) error {
	s, err := app.open(cmd, root)
	if err != nil {
		return err
	}
	defer s.Close()

	specs, err := selectSpecs(s.registry, languages)
	if err != nil {
		return err
	}

	results := s.dispatcher("").Checker().VerifyAll(cmd.Context(), specs)

	if asJSON {
		reports := make([]availabilityReport, len(results))
		for i, r := range results {
			reports[i] = availabilityReport{Language: r.Spec.Language, Probe: r.Spec.Probe, Available: r.Available}
		}
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(app.stdout, string(data))
	} else {
		renderAvailability(app, results)
	}

	if len(languages) > 0 {
		for _, r := range results {
			if !r.Available {
				return &ExitError{Code: int(runtime.ExitNotFound)}
			}
		}
	}
	return nil
}

// selectSpecs resolves the named languages, or returns every spec when none
// are named. Duplicates (including aliases of the same language) collapse.
func selectSpecs(reg *toolchain.Registry, languages []string) ([]toolchain.Spec, error) {
	if len(languages) == 0 {
		return reg.Specs(), nil
	}
	seen := make(map[toolchain.Language]bool, len(languages))
	specs := make([]toolchain.Spec, 0, len(languages))
	for _, name := range languages {
		spec, err := reg.Lookup(name)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("check toolchain").
				WithResource(name).
				WithSuggestion("Run 'polyrun languages' to list the supported languages").
				WithIssue(issue.UnsupportedLanguageId).
				Wrap(err).
				BuildError()
		}
		if seen[spec.Language] {
			continue
		}
		seen[spec.Language] = true
		specs = append(specs, spec)
	}
	return specs, nil
}

func renderAvailability(app *App, results []runtime.Availability) {
	rows := make([][]string, len(results))
	available := 0
	for i, r := range results {
		status := "missing"
		if r.Available {
			status = "installed"
			available++
		}
		rows[i] = []string{string(r.Spec.Language), shellJoin(r.Spec.Probe), status}
	}

	t := newTable([]string{"Language", "Probe", "Status"}, rows, func(row, col int) lipgloss.Style {
		if col != colAvailability {
			return lipgloss.NewStyle()
		}
		if results[row].Available {
			return SuccessStyle
		}
		return WarningStyle
	})

	fmt.Fprintln(app.stdout, t.String())
	fmt.Fprintln(app.stdout, SubtitleStyle.Render(fmt.Sprintf("%d of %d toolchains installed", available, len(results))))
}
