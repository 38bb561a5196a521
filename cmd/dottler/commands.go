package dottler

import (
	"fmt"

	"github.com/arthur-debert/dottler/internal/version"
	"github.com/arthur-debert/dottler/pkg/commands"
	"github.com/arthur-debert/dottler/pkg/types"
	"github.com/arthur-debert/dottler/pkg/ui"
	"github.com/spf13/cobra"
)

// run resolves the environment, calls fn and renders its report.
func (c *cli) run(cmd *cobra.Command, fn func(commands.Env) (*types.Report, error)) error {
	env, err := c.env()
	if err != nil {
		return err
	}
	report, err := fn(env)
	if err != nil {
		return err
	}
	return c.render(cmd, report)
}

func (c *cli) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(env commands.Env) (*types.Report, error) {
				return commands.Init(commands.InitOptions{Env: env})
			})
		},
	}
}

func (c *cli) newLinkCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "link <url>",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(env commands.Env) (*types.Report, error) {
				return commands.Link(commands.LinkOptions{Env: env, URL: args[0], Force: force})
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	return cmd
}

func (c *cli) newCloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "clone <url>",
		Short:   MsgCloneShort,
		Long:    MsgCloneLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(env commands.Env) (*types.Report, error) {
				return commands.Clone(commands.CloneOptions{Env: env, URL: args[0]})
			})
		},
	}
}

func (c *cli) newAddCmd() *cobra.Command {
	var push bool
	cmd := &cobra.Command{
		Use:     "add <path>...",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(env commands.Env) (*types.Report, error) {
				return commands.Add(commands.AddOptions{Env: env, Paths: args, Push: push})
			})
		},
	}
	cmd.Flags().BoolVarP(&push, "push", "p", false, MsgFlagPush)
	return cmd
}

func (c *cli) newSyncCmd() *cobra.Command {
	var push bool
	cmd := &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(env commands.Env) (*types.Report, error) {
				return commands.Sync(commands.SyncOptions{Env: env, Push: push})
			})
		},
	}
	cmd.Flags().BoolVarP(&push, "push", "p", false, MsgFlagPush)
	return cmd
}

func (c *cli) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <path>...",
		Aliases: []string{"rm"},
		Short:   MsgRemoveShort,
		Long:    MsgRemoveLong,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(env commands.Env) (*types.Report, error) {
				return commands.Remove(commands.RemoveOptions{Env: env, Paths: args})
			})
		},
	}
}

func (c *cli) newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "push",
		Short:   MsgPushShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(env commands.Env) (*types.Report, error) {
				return commands.Push(commands.PushOptions{Env: env})
			})
		},
	}
}

func (c *cli) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"st"},
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(env commands.Env) (*types.Report, error) {
				return commands.Status(commands.StatusOptions{Env: env})
			})
		},
	}
}

func (c *cli) newGenConfigCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := c.env()
			if err != nil {
				return err
			}
			report, err := commands.GenConfig(commands.GenConfigOptions{Env: env, Write: write})
			if err != nil {
				return err
			}
			// The bare configuration is meant to be redirected into a file.
			if !write && c.format != ui.FormatJSON {
				_, err = fmt.Fprint(cmd.OutOrStdout(), report.Message)
				return err
			}
			return c.render(cmd, report)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics [name]",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd == cmd.Root() || helpCmd.Run == nil {
				return fmt.Errorf("help command not found")
			}
			if len(args) == 0 {
				args = []string{"topics"}
			}
			helpCmd.SetOut(cmd.OutOrStdout())
			helpCmd.Run(helpCmd, args)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionLine, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
