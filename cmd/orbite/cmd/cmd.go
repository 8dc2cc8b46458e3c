// Package cmd implements the orbite subcommands. Commands receive
// their dependencies through appcontext.Interface so they stay
// testable against a mock application.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/entityscope/orbite/internal/appcontext"
	"github.com/entityscope/orbite/internal/cli"
	"github.com/entityscope/orbite/pkg/reconcile"
)

// Command group ids, matching the groups registered on the root command.
const (
	groupDossier    = "dossier"
	groupProjection = "projection"
)

// formatter builds the output formatter for the app's configured
// format, auto-detecting table vs JSON when none is set.
func formatter(app appcontext.Interface) cli.Formatter {
	return cli.NewFormatter(cli.DetectFormat(app.OutputFormat()))
}

// tableFormat reports whether output renders as a table, which is when
// commands substitute purpose-built table data for raw structs.
func tableFormat(app appcontext.Interface) bool {
	return cli.DetectFormat(app.OutputFormat()) == cli.FormatTable
}

// progressf prints progress chatter to stderr unless quiet.
func progressf(app appcontext.Interface, format string, args ...any) {
	if app.Quiet() {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// outputWriter opens the -o target, or stdout when path is empty.
func outputWriter(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// reportChanges prints a one-merge summary to stderr and emits the
// structured changes on stdout for machine formats.
func reportChanges(app appcontext.Interface, changes reconcile.Changes) error {
	progressf(app, "merged %s: %d field(s) assigned, %d conflict(s), %d relation(s) harvested",
		changes.Source, len(changes.Assigned), len(changes.Conflicts), len(changes.Harvested))

	if tableFormat(app) {
		if len(changes.Conflicts) > 0 {
			return formatter(app).Format(os.Stdout, cli.ConflictsToTableData(changes.Conflicts))
		}
		return nil
	}
	return formatter(app).Format(os.Stdout, changes)
}
