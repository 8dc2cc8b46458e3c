package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewManCommand creates the hidden man command.
func NewManCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate man page",
		Hidden: true, // mainly for packaging
		RunE: func(cmd *cobra.Command, _ []string) error {
			header := &doc.GenManHeader{
				Title:   "ORBITE",
				Section: "1",
				Source:  "orbite",
				Manual:  "orbite Manual",
			}
			return doc.GenMan(cmd.Root(), header, os.Stdout)
		},
	}
}
