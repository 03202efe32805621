package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "act",
		Short:         "auto-close-tabs (act): evict inactive tmux panes",
		Long:          "act watches the panes of your tmux workspace and closes the ones that sit inactive past a configurable threshold, keeping pinned and focused panes untouched and recording every eviction in a bounded history log.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newSweepCmd(app),
		newStatusCmd(app),
		newHistoryCmd(app),
		newConfigCmd(app),
		newWatchCmd(app),
	)

	return rootCmd
}
