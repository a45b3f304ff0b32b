package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mmcdole/readtrack/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultPrintWidth = 80

func newListCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the reading list and exit",
		Long: `List fetches the items once, optionally scoped with --project, and prints
them as cards. Use --json to print the decoded items instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			err = tui.PrintList(cmd.Context(), a.itemSvc.ListItems, cmd.OutOrStdout(), cmd.ErrOrStderr(), tui.PrintOptions{
				Scope:   flags.project,
				Width:   outputWidth(cmd.OutOrStdout()),
				JSON:    asJSON,
				Timeout: a.cfg.Server.Timeout,
				Logger:  a.logger,
			})
			if err != nil {
				return fmt.Errorf("%w: %w", errReported, err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print items as JSON")
	return cmd
}

func newProjectsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "Print reading projects and their ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			projects, err := a.itemSvc.ListProjects(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch projects: %w", err)
			}
			tui.PrintProjects(cmd.OutOrStdout(), projects)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "readtrack %s\n", Version)
		},
	}
}

// outputWidth is the terminal width when w is a terminal, otherwise 80
func outputWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultPrintWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultPrintWidth
	}
	return width
}
