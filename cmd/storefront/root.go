package main

import (
	"context"
	"fmt"
	"io"

	"real-estate-system/storefront/internal"
	"real-estate-system/storefront/internal/configs"
	"real-estate-system/storefront/internal/contextkeys"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// cli — состояние одного запуска: флаги и собранная витрина.
type cli struct {
	apiURL string
	lang   string

	app     *internal.Storefront
	printer *message.Printer
	tag     language.Tag
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Real-estate storefront client",
		Long:          "Browse and manage properties, owners, images and sale traces of the real-estate API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.teardown(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "API base URL (overrides API_URL)")
	rootCmd.PersistentFlags().StringVar(&c.lang, "lang", "en-US", "language tag for price formatting")

	rootCmd.AddCommand(newPropertiesCmd(c))
	rootCmd.AddCommand(newOwnersCmd(c))
	rootCmd.AddCommand(newImagesCmd(c))
	rootCmd.AddCommand(newTracesCmd(c))
	rootCmd.AddCommand(newThemeCmd(c))

	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := configs.LoadClientConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	if c.apiURL != "" {
		cfg.APIURL = c.apiURL
	}

	tag, err := language.Parse(c.lang)
	if err != nil {
		return fmt.Errorf("invalid --lang %q: %w", c.lang, err)
	}
	c.tag = tag
	c.printer = message.NewPrinter(tag)

	app, err := internal.NewStorefront(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	c.app = app

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(contextkeys.ContextWithLogger(ctx, app.Logger))
	return nil
}

// teardown выводит накопленные уведомления и закрывает логгер.
func (c *cli) teardown(cmd *cobra.Command) error {
	if c.app == nil {
		return nil
	}
	printToasts(cmd.ErrOrStderr(), c.app.Store.SelectToasts())
	return c.app.Close()
}

func (c *cli) out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
