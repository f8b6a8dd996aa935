// Package main is the entry point for the penv command, which creates and
// inspects project and workspace documents.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/penv/internal/config"
	"github.com/dshills/penv/internal/logging"
	"github.com/dshills/penv/internal/notify"
	"github.com/dshills/penv/internal/project"
	"github.com/dshills/penv/internal/project/vfs"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}

// app carries the state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	fs  vfs.VFS
	cfg *config.Config
	log *zap.Logger
	env *project.Env
	bus *notify.Bus
}

func newRootCmd() *cobra.Command {
	a := &app{fs: vfs.NewOSFS()}

	root := &cobra.Command{
		Use:   "penv",
		Short: "Manage project and workspace documents",
		Long: `penv creates, inspects and rearranges project hierarchies.

A workspace document lists projects by relative path. Each project document
holds a tree of files, directories, linked groups and sub-projects.

Examples:
  penv init-workspace ./dev.penvws dev
  penv init-project ./app/app.penvprj app --workspace ./dev.penvws
  penv add ./app/app.penvprj ./app/main.go
  penv prop ./app/app.penvprj lang go
  penv tree ./dev.penvws`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = logging.Sync(a.log)
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", config.FileName, "configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		a.initWorkspaceCmd(),
		a.initProjectCmd(),
		a.addCmd(),
		a.treeCmd(),
		a.propCmd(),
		a.transferCmd("mv", "Move an item between projects of a workspace"),
		a.transferCmd("cp", "Copy an item between projects of a workspace"),
	)
	return root
}

// setup loads configuration and builds the logger, environment and
// notification bus.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.fs, a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}

	log, err := logging.NewWithSink(cfg.Logging, zapcore.AddSync(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.env = project.NewEnv(
		project.WithFS(a.fs),
		project.WithLogger(log),
		project.WithIndent(cfg.Document.Indent),
	)
	a.bus = notify.NewBus(notify.WithLogger(log))

	out := cmd.OutOrStdout()
	_, err = a.bus.Subscribe("project.**", func(ev notify.Event) {
		fmt.Fprintln(out, describe(ev))
	})
	return err
}
