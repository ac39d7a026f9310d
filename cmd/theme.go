package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThemeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light]",
		Short:     "Show or set the list color theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"dark", "light"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				dark, err := app.prefs.DarkMode(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), themeName(dark))
				return err
			}

			dark := args[0] == "dark"
			if err := app.prefs.SetDarkMode(cmd.Context(), dark); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s.\n", themeName(dark))
			return err
		},
	}
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
