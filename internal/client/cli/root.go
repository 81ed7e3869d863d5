package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal is a seam for tests.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// NewRootCmd builds the command tree around app. The config file has already
// been applied to app's config; --addr and --timeout override it.
func NewRootCmd(app *App) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:          "todo",
		Short:        "Command-line client for the todolist server",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  todo show
  todo show groceries
  todo add groceries oat milk
  todo delete Groceries 0b6f3c1e-...
  todo lists`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && isTerminal() {
				return runShell(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}
		app.out = cmd.OutOrStdout()
		return app.connect()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.close()
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file (JSON or YAML)")
	cmd.PersistentFlags().StringVar(&app.config.ServerEndpointAddr, "addr", app.config.ServerEndpointAddr, "Server address (host:port)")
	cmd.PersistentFlags().DurationVar(&app.config.RequestTimeout, "timeout", app.config.RequestTimeout, "Per-request timeout")

	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newDeleteCmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newBackupCmd(app))
	cmd.AddCommand(newReplCmd(app))

	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [list]",
		Short: "Show a list; Today when no name is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Show(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <list> <item...>",
		Short: "Add an item to a list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Add(cmd.Context(), args[0], strings.Join(args[1:], " "))
		},
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <list> <id>",
		Short: "Delete an item by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Delete(cmd.Context(), args[0], args[1])
		},
	}
}

func newListsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Print the names of all custom lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Lists(cmd.Context())
		},
	}
}

func newBackupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Store a backup of all lists in object storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Backup(cmd.Context())
		},
	}
}

func newReplCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, app)
		},
	}
}

func runShell(cmd *cobra.Command, app *App) error {
	w := cmd.OutOrStdout()
	if err := app.client.Ping(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(w, "todolist shell (type 'help' for commands)")
	runREPL(cmd.Context(), app, app.prompt, bufio.NewScanner(cmd.InOrStdin()), w)
	return nil
}
