package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/vitibrasil/internal/catalog"
	"github.com/dmitrijs2005/vitibrasil/internal/client/config"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the client command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "vitibrasil-client",
		Short:         "Download the VitiBrasil CSV files through the download server.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := config.BindFlags(root.PersistentFlags())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every request to stderr")

	newApp := func(cmd *cobra.Command) (*App, error) {
		cfg, err := flags.Load()
		if err != nil {
			return nil, err
		}
		return NewApp(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), verbose)
	}

	root.RunE = func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return app.Download(cmd.Context(), catalog.Keys())
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "download [category...]",
			Short: "Download the given categories, all of them when none is given.",
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := newApp(cmd)
				if err != nil {
					return err
				}
				if len(args) == 0 {
					args = catalog.Keys()
				}
				return app.Download(cmd.Context(), args)
			},
		},
		&cobra.Command{
			Use:   "login",
			Short: "Log in and print an access token.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := newApp(cmd)
				if err != nil {
					return err
				}
				return app.Login(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "categories",
			Short: "List the category keys.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, k := range catalog.Keys() {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			},
		},
	)

	return root
}

// Execute runs the client with args and reports errors on stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return err
	}
	return nil
}
