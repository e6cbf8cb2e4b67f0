package main

import (
	"fmt"

	"real-estate-system/storefront/internal/core/store"

	"github.com/spf13/cobra"
)

func newThemeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Interface theme helpers",
	}

	var current string
	next := &cobra.Command{
		Use:   "next",
		Short: "Print the theme that follows --current in the cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, err := store.ParseTheme(current)
			if err != nil {
				return err
			}
			if err := c.app.Store.SetTheme(theme); err != nil {
				return err
			}
			fmt.Fprintln(c.out(cmd), c.app.Store.CycleTheme())
			return nil
		},
	}
	next.Flags().StringVar(&current, "current", string(store.ThemeLight), "current theme: light, dark or system")

	cmd.AddCommand(next)
	return cmd
}
