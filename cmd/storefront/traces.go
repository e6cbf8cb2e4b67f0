package main

import (
	"fmt"
	"time"

	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/store"

	"github.com/spf13/cobra"
)

func newTracesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "traces",
		Aliases: []string{"trace"},
		Short:   "Manage property sale history",
	}
	cmd.AddCommand(
		newTracesListCmd(c),
		newTracesAddCmd(c),
		newTracesDeleteCmd(c),
	)
	return cmd
}

func newTracesListCmd(c *cli) *cobra.Command {
	var sortBy, order string
	cmd := &cobra.Command{
		Use:   "list <property-id>",
		Short: "List sale traces of a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := domain.TraceQuery{SortBy: domain.TraceSortField(sortBy), Order: domain.SortOrder(order)}
			result := c.app.Media.ListTraces(cmd.Context(), args[0], query)
			warnFallback(cmd.ErrOrStderr(), result.Err)
			c.printTraces(c.out(cmd), result.Value)
			return nil
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort-by", string(domain.TraceSortByDateSale), "sort field: dateSale or value")
	cmd.Flags().StringVar(&order, "order", string(domain.SortDesc), "sort order: asc or desc")
	return cmd
}

func newTracesAddCmd(c *cli) *cobra.Command {
	var (
		date       string
		name       string
		value, tax float64
	)
	cmd := &cobra.Command{
		Use:   "add <property-id>",
		Short: "Record a sale of a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateSale, err := parseSaleDate(date)
			if err != nil {
				return domain.NewValidationError("invalid trace", map[string][]string{"dateSale": {err.Error()}})
			}

			trace, err := c.app.Media.AddTrace(cmd.Context(), domain.PropertyTrace{
				PropertyID: args[0],
				DateSale:   dateSale,
				Name:       name,
				Value:      value,
				Tax:        tax,
			})
			if err != nil {
				return err
			}
			c.app.Store.AddToast(store.ToastSuccess, fmt.Sprintf("Trace %s added", trace.ID))
			c.printTraces(c.out(cmd), []domain.PropertyTrace{*trace})
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "sale date, YYYY-MM-DD or RFC 3339")
	cmd.Flags().StringVar(&name, "name", "", "buyer or transaction name")
	cmd.Flags().Float64Var(&value, "value", 0, "sale value")
	cmd.Flags().Float64Var(&tax, "tax", 0, "tax paid")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("value")
	_ = cmd.MarkFlagRequired("tax")
	return cmd
}

func newTracesDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <property-id> <trace-id>",
		Short: "Remove a sale trace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Media.DeleteTrace(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			c.app.Store.AddToast(store.ToastSuccess, fmt.Sprintf("Trace %s deleted", args[1]))
			return nil
		},
	}
}

func parseSaleDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD or RFC 3339 date, got %q", raw)
	}
	return t, nil
}
