// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/polyrun/polyrun/internal/watch"
)

// runWatch runs FILE once, then again after every change until the context
// is cancelled (e.g. Ctrl+C). Failed runs are reported and watching goes on,
// since the user is expected to fix the code and save again.
func runWatch(ctx context.Context, app *App, s *session, flags *runFlags, src inputSource) error {
	rerun := func(ctx context.Context) {
		err := runOnce(ctx, app, s, flags, src)
		var exitErr *ExitError
		if err == nil || errors.As(err, &exitErr) {
			return
		}
		fmt.Fprintf(app.stderr, "%s %s\n", WarningStyle.Render("!"), formatErrorForDisplay(err, s.verbose))
	}

	arrow := VerboseHighlightStyle.Render("→")
	fmt.Fprintf(app.stderr, "%s Watch mode: initial run of %s\n", arrow, src.file)
	rerun(ctx)
	fmt.Fprintf(app.stderr, "\n%s Watching for changes (Ctrl+C to stop)...\n\n", arrow)

	w, err := watch.New(watch.Config{
		Files:       []string{src.file},
		Patterns:    flags.patterns,
		BaseDir:     filepath.Dir(src.file),
		ClearScreen: isTerminal(app.stdout),
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Fprintf(app.stderr, "%s Detected %d change(s). Re-running %s...\n", arrow, len(changed), src.file)
			s.log.Info("watch", "file", src.file, "changed", changed)
			rerun(ctx)
			fmt.Fprintf(app.stderr, "\n%s Watching for changes...\n\n", arrow)
			return nil
		},
		Stdout: app.stdout,
		Stderr: app.stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	return w.Run(ctx)
}
