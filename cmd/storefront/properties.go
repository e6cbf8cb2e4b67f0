package main

import (
	"fmt"
	"strings"

	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/store"

	"github.com/spf13/cobra"
)

func newPropertiesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "properties",
		Aliases: []string{"property", "p"},
		Short:   "Browse and manage properties",
	}
	cmd.AddCommand(
		newPropertiesListCmd(c),
		newPropertiesShowCmd(c),
		newPropertiesCreateCmd(c),
		newPropertiesUpdateCmd(c),
		newPropertiesDeleteCmd(c),
	)
	return cmd
}

func newPropertiesListCmd(c *cli) *cobra.Command {
	var (
		page, limit        int
		filter             string
		search, typeName   string
		minPrice, maxPrice float64
		force              bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties with search filters and a quick filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.app.Store

			quick, err := store.ParseFilter(filter)
			if err != nil {
				return err
			}
			if err := s.SetFilter(quick); err != nil {
				return err
			}

			var patch store.SearchFiltersPatch
			if cmd.Flags().Changed("search") {
				patch.Search = &search
			}
			if cmd.Flags().Changed("min-price") {
				patch.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				patch.MaxPrice = &maxPrice
			}
			if cmd.Flags().Changed("type") {
				propertyType, err := domain.ParsePropertyType(typeName)
				if err != nil {
					return err
				}
				patch.PropertyType = &propertyType
			}
			s.SetSearchFilters(patch)

			result := c.app.LoadProperties.Execute(cmd.Context(), domain.PageRequest{Page: page, Limit: limit}, force)
			warnFallback(cmd.ErrOrStderr(), result.Err)

			out := c.out(cmd)
			c.printProperties(out, result.Value)
			printPagination(out, s)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", domain.DefaultPage, "page number")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultPropertyPageLimit, "page size")
	cmd.Flags().StringVar(&filter, "filter", string(store.FilterAll), "quick filter: all, available or expensive")
	cmd.Flags().StringVarP(&search, "search", "q", "", "search in name, description and address")
	cmd.Flags().StringVar(&typeName, "type", "", "property type: apartment, house, commercial or land")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "minimum price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum price")
	cmd.Flags().BoolVar(&force, "force", false, "bypass the list cache")
	return cmd
}

func newPropertiesShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show property details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := c.app.GetPropertyDetail.Execute(cmd.Context(), args[0])
			selected := c.app.Store.SelectSelectedProperty()
			if selected == nil {
				if result.Err != nil {
					return result.Err
				}
				return fmt.Errorf("property %s: %w", args[0], domain.ErrNotFound)
			}
			c.printProperty(c.out(cmd), *selected)
			return nil
		},
	}
}

// propertyFlags — поля объекта, общие для create и update.
type propertyFlags struct {
	name, description   string
	amount              float64
	currency            string
	address, city       string
	country             string
	typeName            string
	bedrooms, bathrooms int
	area                float64
	areaUnit            string
	status              string
	ownerID             string
	codeInternal        string
	year                int
	features            []string
}

func (f *propertyFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.name, "name", "", "property name")
	flags.StringVar(&f.description, "description", "", "description")
	flags.Float64Var(&f.amount, "price", 0, "price amount")
	flags.StringVar(&f.currency, "currency", "USD", "ISO 4217 currency code")
	flags.StringVar(&f.address, "address", "", "street address")
	flags.StringVar(&f.city, "city", "", "city")
	flags.StringVar(&f.country, "country", "", "country")
	flags.StringVar(&f.typeName, "type", "", "property type: apartment, house, commercial or land")
	flags.IntVar(&f.bedrooms, "bedrooms", 0, "number of bedrooms")
	flags.IntVar(&f.bathrooms, "bathrooms", 0, "number of bathrooms")
	flags.Float64Var(&f.area, "area", 0, "area")
	flags.StringVar(&f.areaUnit, "area-unit", string(domain.AreaUnitSquareMeters), "area unit: m2 or sqft")
	flags.StringVar(&f.status, "status", string(domain.PropertyStatusAvailable), "status: available, sold or rented")
	flags.StringVar(&f.ownerID, "owner", "", "owner id")
	flags.StringVar(&f.codeInternal, "code", "", "internal code")
	flags.IntVar(&f.year, "year", 0, "year built")
	flags.StringSliceVar(&f.features, "feature", nil, "feature (repeatable)")
}

// apply переносит в p флаги, заданные явно. Для create применяются все флаги.
func (f *propertyFlags) apply(cmd *cobra.Command, p *domain.Property, all bool) error {
	set := func(name string) bool { return all || cmd.Flags().Changed(name) }

	if set("name") {
		p.Name = strings.TrimSpace(f.name)
	}
	if set("description") {
		p.Description = f.description
	}
	if set("price") {
		p.Price.Amount = f.amount
	}
	if set("currency") {
		p.Price.Currency = strings.ToUpper(f.currency)
	}
	if set("address") {
		p.Location.Address = f.address
	}
	if set("city") {
		p.Location.City = f.city
	}
	if set("country") {
		p.Location.Country = f.country
	}
	if set("type") {
		propertyType, err := domain.ParsePropertyType(f.typeName)
		if err != nil {
			return domain.NewValidationError("invalid property", map[string][]string{"propertyType": {err.Error()}})
		}
		p.Type = propertyType
	}
	if set("bedrooms") {
		p.Bedrooms = f.bedrooms
	}
	if set("bathrooms") {
		p.Bathrooms = f.bathrooms
	}
	if set("area") {
		p.Area = f.area
	}
	if set("area-unit") {
		p.AreaUnit = domain.AreaUnit(f.areaUnit)
	}
	if set("status") {
		p.Status = domain.PropertyStatus(f.status)
	}
	if set("owner") {
		p.OwnerID = f.ownerID
	}
	if set("code") {
		p.CodeInternal = f.codeInternal
	}
	if set("year") {
		p.Year = f.year
	}
	if set("feature") {
		p.Features = f.features
	}
	return nil
}

func newPropertiesCreateCmd(c *cli) *cobra.Command {
	flags := &propertyFlags{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var property domain.Property
			if err := flags.apply(cmd, &property, true); err != nil {
				return err
			}

			created, err := c.app.CreateProperty.Execute(cmd.Context(), property)
			if err != nil {
				return err
			}
			c.app.Store.AddToast(store.ToastSuccess, fmt.Sprintf("Property %s created", created.ID))
			c.printProperty(c.out(cmd), *created)
			return nil
		},
	}
	flags.bind(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newPropertiesUpdateCmd(c *cli) *cobra.Command {
	flags := &propertyFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			current := c.app.GetPropertyDetail.Execute(cmd.Context(), id)
			if current.Err != nil {
				return current.Err
			}
			if current.Value == nil {
				return fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
			}

			property := current.Value.Clone()
			if err := flags.apply(cmd, &property, false); err != nil {
				return err
			}

			updated, err := c.app.UpdateProperty.Execute(cmd.Context(), id, property)
			if err != nil {
				return err
			}
			c.app.Store.AddToast(store.ToastSuccess, fmt.Sprintf("Property %s updated", updated.ID))
			c.printProperty(c.out(cmd), *updated)
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func newPropertiesDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a property with its images and traces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.DeleteProperty.Execute(cmd.Context(), args[0]); err != nil {
				return err
			}
			c.app.Store.AddToast(store.ToastSuccess, fmt.Sprintf("Property %s deleted", args[0]))
			return nil
		},
	}
}
