package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"taskboard/internal/board"
	"taskboard/internal/task"
	"taskboard/internal/theme"
)

type listFlags struct {
	query        string
	descriptions bool
}

func (f *listFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.query, "query", "q", "", "only show tasks matching this text")
	fs.BoolVar(&f.descriptions, "descriptions", false, "match the query against descriptions too")
}

func newListCommand(g *globalFlags) *cobra.Command {
	f := &listFlags{}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the board",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), g.resolve())
			if err != nil {
				return err
			}
			defer a.Close()

			opts := a.filter()
			if cmd.Flags().Changed("descriptions") {
				opts.IncludeDescription = f.descriptions
			}
			ctrl := a.controller(opts)
			ctrl.Dispatch(cmd.Context(), board.Search{Query: f.query})

			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderList(ctrl.Layout(), isTerminal(out)))
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

type addFlags struct {
	description string
	priority    string
	due         string
}

func (f *addFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.description, "description", "d", "", "task description (markdown)")
	fs.StringVarP(&f.priority, "priority", "p", string(task.DefaultPriority), "low, medium or high")
	fs.StringVar(&f.due, "due", "", "due date, YYYY-MM-DD")
}

func newAddCommand(g *globalFlags) *cobra.Command {
	f := &addFlags{}
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to To Do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), g.resolve())
			if err != nil {
				return err
			}
			defer a.Close()

			ctrl := a.controller(a.filter())
			before := ctrl.Store().Len()
			notes := ctrl.Dispatch(cmd.Context(), board.Submit{Draft: task.Draft{
				Title:       args[0],
				Description: f.description,
				Priority:    f.priority,
				DueDate:     f.due,
			}})
			if ctrl.Store().Len() == before {
				return failure(notes)
			}
			printNotes(cmd.OutOrStdout(), notes)
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newMoveCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move a task to todo, in-progress or done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, err := task.ParseStatus(args[1])
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), g.resolve())
			if err != nil {
				return err
			}
			defer a.Close()

			ctrl := a.controller(a.filter())
			if _, ok := ctrl.Store().Find(id); !ok {
				return fmt.Errorf("task %d not found", id)
			}
			ctrl.Dispatch(cmd.Context(), board.DragStart{TaskID: id})
			ctrl.Dispatch(cmd.Context(), board.DragEnter{Status: status})
			notes := ctrl.Dispatch(cmd.Context(), board.Drop{Status: status})
			if t, _ := ctrl.Store().Find(id); t.Status != status {
				return failure(notes)
			}
			printNotes(cmd.OutOrStdout(), notes)
			return nil
		},
	}
}

func newDeleteCommand(g *globalFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), g.resolve())
			if err != nil {
				return err
			}
			defer a.Close()

			ctrl := a.controller(a.filter())
			ctrl.Dispatch(cmd.Context(), board.RequestDelete{TaskID: id})
			t, ok := ctrl.Pending()
			if !ok {
				return fmt.Errorf("task %d not found", id)
			}
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete \"%s\"? [y/N] ", t.Title)) {
				ctrl.Dispatch(cmd.Context(), board.DeclineDelete{})
				return nil
			}
			notes := ctrl.Dispatch(cmd.Context(), board.ConfirmDelete{})
			if _, still := ctrl.Store().Find(id); still {
				return failure(notes)
			}
			printNotes(cmd.OutOrStdout(), notes)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

func newThemeCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Print or set the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(theme.Light), string(theme.Dark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), g.resolve())
			if err != nil {
				return err
			}
			defer a.Close()

			ctrl := a.controller(a.filter())
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ctrl.Theme())
				return nil
			}
			want, ok := theme.Parse(args[0])
			if !ok {
				return fmt.Errorf("unknown theme %q", args[0])
			}
			if ctrl.Theme() == want {
				return nil
			}
			notes := ctrl.Dispatch(cmd.Context(), board.ToggleTheme{})
			if ctrl.Theme() != want {
				return failure(notes)
			}
			printNotes(cmd.OutOrStdout(), notes)
			return nil
		},
	}
}

func parseID(v string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(v, "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", v)
	}
	return id, nil
}

// confirm prints prompt and reports whether the answer starts with y.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var (
	listHeader = lipgloss.NewStyle().Bold(true).Underline(true)
	listSubtle = lipgloss.NewStyle().Faint(true)
)

// renderList prints each column with its count, one task per line.
func renderList(layout board.Layout, styled bool) string {
	var b strings.Builder
	for i, col := range layout.Columns {
		if i > 0 {
			b.WriteString("\n")
		}
		header := fmt.Sprintf("%s (%d)", col.Label, col.Count)
		if styled {
			header = listHeader.Render(header)
		}
		b.WriteString(header + "\n")
		if col.Empty() {
			placeholder := board.EmptyPlaceholder
			if styled {
				placeholder = listSubtle.Render(placeholder)
			}
			b.WriteString("  " + placeholder + "\n")
			continue
		}
		for _, t := range col.Tasks {
			line := fmt.Sprintf("  #%d [%s] %s", t.ID, t.Priority, t.Title)
			if !t.DueDate.IsZero() {
				line += " (due " + t.DueDate.String() + ")"
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
