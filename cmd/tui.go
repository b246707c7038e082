package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"movie-catalog/internal/adaptor"
	"movie-catalog/internal/usecase"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Browse the catalog, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTerminal(cmd, func(routes usecase.Routes) string {
			return routes.List
		})
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Register a new movie using an interactive form",
	Long: `Register a new movie using an interactive terminal form.

The form uses keyboard navigation:
  - Tab/Shift+Tab: Move between fields
  - Enter: Submit the form (on the last field)
  - Ctrl+C: Cancel and exit
  - Arrow keys: Navigate within the genre select`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTerminal(cmd, func(routes usecase.Routes) string {
			return routes.NewEditor()
		})
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing movie",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseMovieID(args[0])
		if err != nil {
			return err
		}
		return runTerminal(cmd, func(routes usecase.Routes) string {
			return routes.Editor(id)
		})
	},
}

var viewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show a movie with its edit and delete actions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseMovieID(args[0])
		if err != nil {
			return err
		}
		return runTerminal(cmd, func(routes usecase.Routes) string {
			return routes.Viewer(id)
		})
	},
}

func parseMovieID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid movie id %q", arg)
	}
	return id, nil
}

func runTerminal(cmd *cobra.Command, start func(usecase.Routes) string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	service := usecase.NewService(repo, config, logger)
	term := adaptor.NewTerminal(service.Movie, config, cmd.OutOrStdout(), logger)

	if err := term.Run(ctx, start(service.Movie.Routes())); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), adaptor.RenderError(err))
		return err
	}
	return nil
}
