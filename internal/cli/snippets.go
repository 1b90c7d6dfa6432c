package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"snipman/internal/app"
	"snipman/internal/domain"
	"snipman/internal/state"
	"snipman/internal/store"
)

// errNoSnippet is returned when a command line index addresses no snippet
var errNoSnippet = errors.New("no such snippet")

// parseIndex converts a 1-based command line index to a list position
func parseIndex(arg string, appState *state.AppState) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", arg, err)
	}
	if n < 1 || n > appState.Len() {
		return 0, fmt.Errorf("%w: #%d (have %d)", errNoSnippet, n, appState.Len())
	}
	return n - 1, nil
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add <command> [description]",
		Short: "Add a snippet",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			s, appState, err := openState(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			var description string
			if len(args) > 1 {
				description = args[1]
			}
			snippet := domain.NewSnippet(args[0], description, category)
			if err := app.NewExecutor(appState, nil, nil, nil, logr.Discard()).ExecuteAdd(snippet); err != nil {
				return err
			}
			if err := store.SaveState(cmd.Context(), s, appState); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s\n", appState.Len(), snippet.Command)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category of the snippet")
	return cmd
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a snippet by its list index",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			s, appState, err := openState(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			pos, err := parseIndex(args[0], appState)
			if err != nil {
				return err
			}
			removed, err := appState.RemoveSnippet(pos)
			if err != nil {
				return err
			}
			if err := store.SaveState(cmd.Context(), s, appState); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed #%d %s\n", pos+1, removed.Command)
			return nil
		},
	}
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var (
		command     string
		description string
		category    string
		uncategory  bool
	)

	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Change the command, description or category of a snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if category != "" && uncategory {
				return errors.New("--category and --no-category are mutually exclusive")
			}

			cfg, err := opts.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			s, appState, err := openState(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			pos, err := parseIndex(args[0], appState)
			if err != nil {
				return err
			}
			snippet, err := appState.Snippet(pos)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("command") {
				snippet.Command = command
			}
			if flags.Changed("description") {
				snippet.Description = description
			}
			switch {
			case uncategory:
				snippet.Category = nil
			case flags.Changed("category"):
				snippet = domain.NewSnippet(snippet.Command, snippet.Description, category)
			}

			if _, err := appState.ReplaceSnippet(pos, snippet); err != nil {
				return err
			}
			if err := store.SaveState(cmd.Context(), s, appState); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated #%d %s\n", pos+1, snippet.Command)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&command, "command", "", "new command text")
	flags.StringVar(&description, "description", "", "new description")
	flags.StringVarP(&category, "category", "c", "", "move the snippet to this category")
	flags.BoolVar(&uncategory, "no-category", false, "remove the snippet's category")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List snippets",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			s, appState, err := openState(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			positions, err := listPositions(appState, category)
			if err != nil {
				return err
			}
			return writeList(cmd.OutOrStdout(), appState, positions)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only list snippets in this category")
	return cmd
}

// listPositions returns every position, or those owned by category
func listPositions(appState *state.AppState, category string) ([]int, error) {
	if category == "" {
		positions := make([]int, appState.Len())
		for i := range positions {
			positions[i] = i
		}
		return positions, nil
	}

	for _, c := range appState.Categories() {
		if c.Name == category {
			return c.Positions, nil
		}
	}
	return nil, fmt.Errorf("unknown category %q", category)
}

func writeList(w io.Writer, appState *state.AppState, positions []int) error {
	if len(positions) == 0 {
		_, err := fmt.Fprintln(w, "No snippets")
		return err
	}

	rows := make([][]string, 0, len(positions))
	for _, pos := range positions {
		s, err := appState.Snippet(pos)
		if err != nil {
			return err
		}
		category := ""
		if s.HasCategory() {
			category = *s.Category
		}
		rows = append(rows, []string{strconv.Itoa(pos + 1), s.Command, category, s.Description})
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		Headers("#", "COMMAND", "CATEGORY", "DESCRIPTION").
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
