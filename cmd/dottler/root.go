// Package dottler builds the dottler command line.
package dottler

import (
	"io"
	"os"

	"github.com/arthur-debert/dottler/internal/version"
	"github.com/arthur-debert/dottler/pkg/commands"
	"github.com/arthur-debert/dottler/pkg/config"
	"github.com/arthur-debert/dottler/pkg/errors"
	"github.com/arthur-debert/dottler/pkg/logging"
	"github.com/arthur-debert/dottler/pkg/paths"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/arthur-debert/dottler/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// cli holds the global flag values shared by every subcommand.
type cli struct {
	verbosity  int
	formatFlag string
	configFile string

	format ui.Format
	stderr io.Writer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	root, _ := newRoot(os.Stderr)
	return root
}

func newRoot(stderr io.Writer) (*cobra.Command, *cli) {
	initTemplateFormatting()
	c := &cli{stderr: stderr}

	rootCmd := &cobra.Command{
		Use:     "dottler",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format, err := ui.ParseFormat(c.formatFlag)
			if err != nil {
				return err
			}
			c.format = format

			logFile := ""
			if p, err := paths.FromEnv(os.LookupEnv); err == nil {
				logFile = p.LogFilePath()
			}
			logging.SetupLoggerTo(c.stderr, c.verbosity, logFile)
			logging.LogCommand(cmd.Name(), args)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, "no command specified").WithHint(MsgUsageHint)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&c.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&c.formatFlag, "format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", MsgFlagConfig)
	_ = rootCmd.RegisterFlagCompletionFunc("format", completeFormat)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid flag").WithHint(MsgUsageHint)
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newLinkCmd())
	rootCmd.AddCommand(c.newCloneCmd())
	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newPushCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newGenConfigCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := initTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd, c
}

// Run executes the command line in args and returns the process exit
// status. Reports go to stdout, errors to stderr in the selected format.
func Run(args []string, stdout, stderr io.Writer) int {
	root, c := newRoot(stderr)
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	if _, ok := errors.AsDottlerError(err); !ok {
		// cobra's own argument and command errors
		err = errors.New(errors.ErrInvalidInput, err.Error()).WithHint(MsgUsageHint)
	}

	renderer, rerr := ui.NewRenderer(c.format, stderr)
	if rerr != nil {
		renderer, _ = ui.NewRenderer(ui.FormatText, stderr)
	}
	_ = renderer.RenderError(err)
	return errors.ExitCode(err)
}

// env resolves paths and configuration for a command run.
func (c *cli) env() (commands.Env, error) {
	p, err := paths.FromEnv(os.LookupEnv)
	if err != nil {
		return commands.Env{}, err
	}

	file, required := p.ConfigFile(), false
	if c.configFile != "" {
		file, required = p.ExpandHome(c.configFile), true
	}
	cfg, err := config.Load(file, required)
	if err != nil {
		return commands.Env{}, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return commands.Env{}, errors.Wrap(err, errors.ErrEnvironment, "cannot determine the current directory")
	}

	log.Debug().
		Str("home", p.Home()).
		Str("config", file).
		Str("cwd", cwd).
		Msg("Environment resolved")
	return commands.Env{Paths: p, Config: cfg, Cwd: cwd}, nil
}

// render writes a command report to the command's output.
func (c *cli) render(cmd *cobra.Command, report *types.Report) error {
	renderer, err := ui.NewRenderer(c.format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return renderer.RenderResult(report)
}

func completeFormat(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, name := range ui.FormatNames() {
		f, _ := ui.ParseFormat(name)
		out = append(out, name+"\t"+f.Usage())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
