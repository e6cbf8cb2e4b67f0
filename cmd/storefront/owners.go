package main

import (
	"fmt"
	"strings"

	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/store"

	"github.com/spf13/cobra"
)

func newOwnersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "owners",
		Aliases: []string{"owner", "o"},
		Short:   "Browse and manage property owners",
	}
	cmd.AddCommand(
		newOwnersListCmd(c),
		newOwnersShowCmd(c),
		newOwnersCreateCmd(c),
		newOwnersDeleteCmd(c),
	)
	return cmd
}

func newOwnersListCmd(c *cli) *cobra.Command {
	var (
		page, limit int
		search      string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List owners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := c.app.Owners.List(cmd.Context(), domain.OwnerFilters{Search: search}, domain.PageRequest{Page: page, Limit: limit})
			warnFallback(cmd.ErrOrStderr(), result.Err)

			out := c.out(cmd)
			printOwners(out, result.Value.Owners)
			p := result.Value.Pagination
			fmt.Fprintf(out, "Page %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", domain.DefaultPage, "page number")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultOwnerPageLimit, "page size")
	cmd.Flags().StringVarP(&search, "search", "q", "", "search in name and address")
	return cmd
}

func newOwnersShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show owner details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := c.app.Owners.Get(cmd.Context(), args[0])
			if result.Value == nil {
				if result.Err != nil {
					return result.Err
				}
				return fmt.Errorf("owner %s: %w", args[0], domain.ErrNotFound)
			}
			printOwner(c.out(cmd), *result.Value)
			return nil
		},
	}
}

func newOwnersCreateCmd(c *cli) *cobra.Command {
	var name, address, birthday, photo string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			born, err := domain.ParseBirthday(birthday)
			if err != nil {
				return domain.NewValidationError("invalid owner", map[string][]string{"birthday": {err.Error()}})
			}

			created, err := c.app.Owners.Create(cmd.Context(), domain.Owner{
				Name:     strings.TrimSpace(name),
				Address:  strings.TrimSpace(address),
				Photo:    photo,
				Birthday: born,
			})
			if err != nil {
				return err
			}
			c.app.Store.AddToast(store.ToastSuccess, fmt.Sprintf("Owner %s created", created.ID))
			printOwner(c.out(cmd), *created)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "owner name")
	cmd.Flags().StringVar(&address, "address", "", "owner address")
	cmd.Flags().StringVar(&birthday, "birthday", "", "birthday, YYYY-MM-DD")
	cmd.Flags().StringVar(&photo, "photo", "", "photo URL")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("birthday")
	return cmd
}

func newOwnersDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an owner without properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Owners.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			c.app.Store.AddToast(store.ToastSuccess, fmt.Sprintf("Owner %s deleted", args[0]))
			return nil
		},
	}
}
