// Package cli wires config, logging and storage into the board controller and
// exposes it as cobra commands. The root command runs the TUI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/logging"
	"taskboard/internal/notify"
	"taskboard/internal/storage"
	"taskboard/internal/ui"
)

// IO is where commands read prompts from and write output to.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func StdIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

type globalFlags struct {
	configPath string
}

func (g *globalFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&g.configPath, "config", "", "config file (default $TASKBOARD_CONFIG or the user config dir)")
}

func (g *globalFlags) resolve() string {
	if g.configPath != "" {
		return g.configPath
	}
	return config.ResolveConfigPath()
}

// NewRootCommand builds the command tree.
func NewRootCommand(stdio IO) *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "taskboard",
		Short:         "Kanban task board for the terminal",
		Long:          "taskboard keeps tasks in To Do, In Progress and Done columns.\n\nRun without a command to open the interactive board.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), g.resolve())
			if err != nil {
				return err
			}
			defer a.Close()
			return ui.Run(a.controller(a.filter()), a.cfg, a.log)
		},
	}
	root.SetIn(stdio.In)
	root.SetOut(stdio.Out)
	root.SetErr(stdio.Err)
	g.register(root.PersistentFlags())

	root.AddCommand(
		newListCommand(g),
		newAddCommand(g),
		newMoveCommand(g),
		newDeleteCommand(g),
		newThemeCommand(g),
	)
	return root
}

// Execute runs the command tree against the process's stdio.
func Execute() error {
	return NewRootCommand(StdIO()).ExecuteContext(context.Background())
}

// app is one opened board: config, logger, backend and the loaded tasks.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	kv       storage.KV
	adapter  *storage.Adapter
	store    *board.Store
	closeLog func() error
}

func openApp(ctx context.Context, configPath string) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	kv, err := storage.Open(ctx, cfg)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	adapter := storage.NewAdapter(kv)

	loaded := adapter.LoadTasks(ctx)
	if loaded.Err != nil {
		logger.Warn("stored tasks unreadable, starting empty", "err", loaded.Err)
	}
	logger.Info("board opened", "backend", cfg.Backend, "tasks", len(loaded.OrEmpty()))

	return &app{
		cfg:      cfg,
		log:      logger,
		kv:       kv,
		adapter:  adapter,
		store:    board.NewStore(adapter, loaded.OrEmpty()),
		closeLog: closeLog,
	}, nil
}

func (a *app) filter() board.FilterOptions {
	return board.FilterOptions{IncludeDescription: a.cfg.Search.IncludeDescriptions}
}

func (a *app) controller(filter board.FilterOptions) *board.Controller {
	return board.NewController(a.store, board.Options{
		Filter: filter,
		Theme:  a.adapter.LoadTheme(context.Background()),
		Themes: a.adapter,
		Logger: a.log,
	})
}

func (a *app) Close() error {
	return errors.Join(a.kv.Close(), a.closeLog())
}

// printNotes writes each notification on its own line.
func printNotes(w io.Writer, notes []notify.Notification) {
	for _, n := range notes {
		fmt.Fprintln(w, n.Message)
	}
}

// failure turns the notifications of a mutation that did not apply into an
// error.
func failure(notes []notify.Notification) error {
	for _, n := range notes {
		if n.Kind == notify.Error {
			return errors.New(n.Message)
		}
	}
	return errors.New("no change")
}
