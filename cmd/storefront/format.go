package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"real-estate-system/storefront/internal/core/domain"
	"real-estate-system/storefront/internal/core/store"

	"golang.org/x/text/cases"
	"golang.org/x/text/number"
)

const dateLayout = "2006-01-02"

// formatPrice печатает сумму с разделителями разрядов выбранного языка.
func (c *cli) formatPrice(p domain.Price) string {
	amount := c.printer.Sprint(number.Decimal(p.Amount, number.MaxFractionDigits(2)))
	if p.Currency == "" {
		return amount
	}
	return amount + " " + p.Currency
}

func (c *cli) formatType(t domain.PropertyType) string {
	return cases.Title(c.tag).String(string(t))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func (c *cli) printProperties(w io.Writer, properties []domain.Property) {
	if len(properties) == 0 {
		fmt.Fprintln(w, "No properties found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tCITY\tPRICE\tSTATUS")
	for _, p := range properties {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, c.formatType(p.Type), p.Location.City, c.formatPrice(p.Price), p.Status)
	}
	tw.Flush()
}

func (c *cli) printProperty(w io.Writer, p domain.Property) {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", p.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", p.Description)
	}
	fmt.Fprintf(tw, "Type:\t%s\n", c.formatType(p.Type))
	fmt.Fprintf(tw, "Status:\t%s\n", p.Status)
	fmt.Fprintf(tw, "Price:\t%s\n", c.formatPrice(p.Price))
	fmt.Fprintf(tw, "Address:\t%s\n", joinNonEmpty(", ", p.Location.Address, p.Location.City, p.Location.Country))
	fmt.Fprintf(tw, "Rooms:\t%d bed / %d bath\n", p.Bedrooms, p.Bathrooms)
	if p.Area > 0 {
		fmt.Fprintf(tw, "Area:\t%s %s\n", c.printer.Sprint(number.Decimal(p.Area)), p.AreaUnit)
	}
	if p.Year > 0 {
		fmt.Fprintf(tw, "Year:\t%d\n", p.Year)
	}
	if p.OwnerID != "" {
		fmt.Fprintf(tw, "Owner:\t%s\n", p.OwnerID)
	}
	if len(p.Features) > 0 {
		fmt.Fprintf(tw, "Features:\t%s\n", strings.Join(p.Features, ", "))
	}
	tw.Flush()
}

func printPagination(w io.Writer, s *store.Store) {
	pagination := s.SelectPagination()
	if pagination == nil {
		return
	}
	fmt.Fprintf(w, "Page %d of %d (%d total)\n", s.SelectCurrentPage(), s.SelectTotalPages(), pagination.Total)
}

func printOwners(w io.Writer, owners []domain.Owner) {
	if len(owners) == 0 {
		fmt.Fprintln(w, "No owners found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tADDRESS\tBIRTHDAY")
	for _, o := range owners {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.ID, o.Name, o.Address, formatDate(o.Birthday))
	}
	tw.Flush()
}

func printOwner(w io.Writer, o domain.Owner) {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", o.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", o.Name)
	fmt.Fprintf(tw, "Address:\t%s\n", o.Address)
	fmt.Fprintf(tw, "Birthday:\t%s\n", formatDate(o.Birthday))
	if o.Photo != "" {
		fmt.Fprintf(tw, "Photo:\t%s\n", o.Photo)
	}
	tw.Flush()
}

func printImages(w io.Writer, images []domain.PropertyImage) {
	if len(images) == 0 {
		fmt.Fprintln(w, "No images found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tENABLED\tFILE")
	for _, img := range images {
		fmt.Fprintf(tw, "%s\t%t\t%s\n", img.ID, img.Enabled, img.File)
	}
	tw.Flush()
}

func (c *cli) printTraces(w io.Writer, traces []domain.PropertyTrace) {
	if len(traces) == 0 {
		fmt.Fprintln(w, "No traces found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tNAME\tVALUE\tTAX")
	for _, tr := range traces {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", tr.ID, formatDate(tr.DateSale), tr.Name,
			c.formatPrice(domain.Price{Amount: tr.Value}), c.formatPrice(domain.Price{Amount: tr.Tax}))
	}
	tw.Flush()
}

func printToasts(w io.Writer, toasts []store.Toast) {
	for _, t := range toasts {
		fmt.Fprintf(w, "[%s] %s\n", t.Kind, t.Message)
	}
}

// warnFallback сообщает, что чтение не удалось и показаны данные по умолчанию.
func warnFallback(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "Warning: request failed, showing fallback data: %s\n", describeError(err))
}

// describeError раскрывает ошибку API вместе с нарушениями по полям.
func describeError(err error) string {
	apiErr, ok := domain.AsAPIError(err)
	if !ok || len(apiErr.Fields) == 0 {
		return err.Error()
	}

	fields := make([]string, 0, len(apiErr.Fields))
	for field := range apiErr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString(apiErr.Message)
	for _, field := range fields {
		fmt.Fprintf(&b, "\n  %s: %s", field, strings.Join(apiErr.Fields[field], "; "))
	}
	return b.String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
