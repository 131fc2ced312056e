package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/01moynul/inventory-dashboard/pkg/client"
)

type cli struct {
	server string
	api    *client.Client
}

func newRootCmd() *cobra.Command {
	app := &cli{}

	root := &cobra.Command{
		Use:           "inventoryctl",
		Short:         "Manage inventory products from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.api = client.New(app.server)
		},
	}
	root.PersistentFlags().StringVar(&app.server, "server", envOr("INVENTORY_SERVER", "http://localhost:5000"), "inventory API base URL")

	root.AddCommand(
		app.listCmd(),
		app.getCmd(),
		app.createCmd(),
		app.updateCmd(),
		app.deleteCmd(),
		app.statsCmd(),
		app.reportCmd(),
		app.exportCmd(),
	)
	return root
}

func (a *cli) listCmd() *cobra.Command {
	var params client.ListParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.api.ListProducts(cmd.Context(), params)
			if err != nil {
				return err
			}
			renderProducts(cmd.OutOrStdout(), products...)
			return nil
		},
	}
	cmd.Flags().StringVar(&params.Search, "search", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&params.SortBy, "sort-by", "", "name|description|supplier|sales|price|quantity")
	cmd.Flags().StringVar(&params.SortOrder, "order", "", "asc|desc")
	return cmd
}

func (a *cli) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := a.api.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderProducts(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func (a *cli) createCmd() *cobra.Command {
	var (
		in    client.InsertProduct
		price string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := client.ParsePrice(price)
			if err != nil {
				return fmt.Errorf("invalid --price %q: %w", price, err)
			}
			in.Price = p
			created, err := a.api.CreateProduct(cmd.Context(), in)
			if err != nil {
				return err
			}
			renderProducts(cmd.OutOrStdout(), created)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "product name")
	f.StringVar(&in.Description, "description", "", "product description")
	f.StringVar(&in.Supplier, "supplier", "", "supplier name")
	f.IntVar(&in.Sales, "sales", 0, "units sold")
	f.StringVar(&price, "price", "", "unit price, e.g. 12.50")
	f.IntVar(&in.Quantity, "quantity", 0, "units in stock")
	for _, name := range []string{"name", "supplier", "price", "quantity"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *cli) updateCmd() *cobra.Command {
	var (
		name, description, supplier, price string
		sales, quantity                    int
	)
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change some fields of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var up client.UpdateProduct
			f := cmd.Flags()
			if f.Changed("name") {
				up.Name = &name
			}
			if f.Changed("description") {
				up.Description = &description
			}
			if f.Changed("supplier") {
				up.Supplier = &supplier
			}
			if f.Changed("sales") {
				up.Sales = &sales
			}
			if f.Changed("quantity") {
				up.Quantity = &quantity
			}
			if f.Changed("price") {
				p, err := client.ParsePrice(price)
				if err != nil {
					return fmt.Errorf("invalid --price %q: %w", price, err)
				}
				up.Price = &p
			}

			updated, err := a.api.UpdateProduct(cmd.Context(), id, up)
			if err != nil {
				return err
			}
			renderProducts(cmd.OutOrStdout(), updated)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "product name")
	f.StringVar(&description, "description", "", "product description")
	f.StringVar(&supplier, "supplier", "", "supplier name")
	f.IntVar(&sales, "sales", 0, "units sold")
	f.StringVar(&price, "price", "", "unit price, e.g. 12.50")
	f.IntVar(&quantity, "quantity", 0, "units in stock")
	return cmd
}

func (a *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.api.DeleteProduct(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Product %d deleted\n", id)
			return nil
		},
	}
}

func (a *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.api.GetProductStats(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Total products", "Total sales", "Low stock", "Suppliers"})
			t.AppendRow(table.Row{s.TotalProducts, s.TotalSales, s.LowStock, s.Suppliers})
			t.Render()
			return nil
		},
	}
}

func (a *cli) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show inventory by supplier, best sellers and stock status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.api.GetInventoryReport(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			suppliers := newTable(out)
			suppliers.SetTitle("Inventory by supplier")
			suppliers.AppendHeader(table.Row{"Supplier", "Quantity", "Value"})
			for _, s := range r.InventoryBySupplier {
				suppliers.AppendRow(table.Row{s.Supplier, s.Quantity, s.Value})
			}
			suppliers.Render()

			top := newTable(out)
			top.SetTitle("Top products")
			top.AppendHeader(table.Row{"ID", "Name", "Sales", "Revenue"})
			for _, p := range r.TopProducts {
				top.AppendRow(table.Row{p.ID, p.Name, p.Sales, p.Revenue})
			}
			top.Render()

			status := newTable(out)
			status.SetTitle("Stock status")
			status.AppendHeader(table.Row{"In stock", "Low stock", "Out of stock"})
			status.AppendRow(table.Row{r.StockStatus.InStock, r.StockStatus.LowStock, r.StockStatus.OutOfStock})
			status.Render()
			return nil
		},
	}
}

func (a *cli) exportCmd() *cobra.Command {
	var search, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download products as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return a.api.ExportProductsCSV(cmd.Context(), search, w)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name filter")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "file to write, - for stdout")
	return cmd
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderProducts(w io.Writer, products ...client.Product) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Description", "Supplier", "Sales", "Price", "Quantity"})
	for _, p := range products {
		t.AppendRow(table.Row{p.ID, p.Name, p.Description, p.Supplier, p.Sales, p.Price.String(), p.Quantity})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Rows", len(products)})
	t.Render()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product ID %q", s)
	}
	return id, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
