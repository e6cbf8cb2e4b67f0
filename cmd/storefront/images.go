package main

import (
	"fmt"

	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/store"

	"github.com/spf13/cobra"
)

func newImagesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "images",
		Aliases: []string{"image"},
		Short:   "Manage property images",
	}
	cmd.AddCommand(
		newImagesListCmd(c),
		newImagesAddCmd(c),
		newImagesToggleCmd(c),
		newImagesDeleteCmd(c),
	)
	return cmd
}

func newImagesListCmd(c *cli) *cobra.Command {
	var enabledOnly bool
	cmd := &cobra.Command{
		Use:   "list <property-id>",
		Short: "List images of a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := c.app.Media.ListImages(cmd.Context(), args[0], enabledOnly)
			warnFallback(cmd.ErrOrStderr(), result.Err)
			printImages(c.out(cmd), result.Value)
			return nil
		},
	}
	cmd.Flags().BoolVar(&enabledOnly, "enabled-only", false, "show only enabled images")
	return cmd
}

func newImagesAddCmd(c *cli) *cobra.Command {
	var (
		file     string
		disabled bool
	)
	cmd := &cobra.Command{
		Use:   "add <property-id>",
		Short: "Attach an image to a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := c.app.Media.AddImage(cmd.Context(), args[0], file, !disabled)
			if err != nil {
				return err
			}
			c.app.Store.AddToast(store.ToastSuccess, fmt.Sprintf("Image %s added", image.ID))
			printImages(c.out(cmd), []domain.PropertyImage{*image})
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "image URL")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "add the image hidden")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newImagesToggleCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <property-id> <image-id>",
		Short: "Show or hide an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			propertyID, imageID := args[0], args[1]

			images := c.app.Media.ListImages(cmd.Context(), propertyID, false)
			if images.Err != nil {
				return images.Err
			}
			var current *domain.PropertyImage
			for i := range images.Value {
				if images.Value[i].ID == imageID {
					current = &images.Value[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("image %s: %w", imageID, domain.ErrNotFound)
			}

			updated, err := c.app.Media.SetImageEnabled(cmd.Context(), propertyID, imageID, !current.Enabled)
			if err != nil {
				return err
			}
			printImages(c.out(cmd), []domain.PropertyImage{*updated})
			return nil
		},
	}
}

func newImagesDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <property-id> <image-id>",
		Short: "Remove an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Media.DeleteImage(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			c.app.Store.AddToast(store.ToastSuccess, fmt.Sprintf("Image %s deleted", args[1]))
			return nil
		},
	}
}
