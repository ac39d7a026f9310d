package cmd

import (
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "todo",
		Short:         "todo: manage your task list from the terminal",
		Long:          "todo keeps a task list on a remote task service: sign in once, then add, complete, rename, edit and remove tasks from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp(stderrOf{cmd: rootCmd})
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newSignupCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newListCmd(app),
		newAddCmd(app),
		newDoneCmd(app),
		newRenameCmd(app),
		newRemoveCmd(app),
		newEditCmd(app),
		newThemeCmd(app),
	)

	return rootCmd
}

// stderrOf resolves the command's error writer on every write, so output set
// with SetErr after construction still receives log lines.
type stderrOf struct {
	cmd *cobra.Command
}

func (w stderrOf) Write(p []byte) (int, error) {
	return w.cmd.ErrOrStderr().Write(p)
}
