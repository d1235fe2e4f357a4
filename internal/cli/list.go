// internal/cli/list.go
package cli

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"teahigh/internal/clients"
	"teahigh/internal/tea"
)

type listOptions struct {
	server  string
	query   string
	types   []string
	inStock string
	sort    string
	desc    bool
}

func newListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the tea collection",
		Long: `Print the tea collection followed by its statistics. Without --server the
demo collection is listed.`,
		Example: `  teahigh list --type Green --sort rating --desc
  teahigh list --server http://localhost:8080 --in-stock false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.toQuery()
			if err != nil {
				return err
			}

			var (
				teas  []tea.Tea
				stats tea.Stats
			)
			if opts.server != "" {
				client := clients.NewTeaClient(opts.server)
				if teas, err = client.ListTeas(cmd.Context(), q); err != nil {
					return fmt.Errorf("failed to list teas: %w", err)
				}
				s, err := client.Stats(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to fetch stats: %w", err)
				}
				stats = *s
			} else {
				svc := tea.NewService(nil, tea.WithTeas(tea.SeedTeas()))
				teas = slices.Collect(svc.List(cmd.Context(), q))
				stats = svc.Aggregate(cmd.Context())
			}

			return printTeas(cmd.OutOrStdout(), teas, stats)
		},
	}

	cmd.Flags().StringVar(&opts.server, "server", "", "base URL of a running teahigh server")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "match name or supplier")
	cmd.Flags().StringSliceVar(&opts.types, "type", nil, "only these tea types")
	cmd.Flags().StringVar(&opts.inStock, "in-stock", "", "true or false")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort field: name, type, supplier, rating, purchaseDate, harvestYear, createdAt")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "sort descending")
	return cmd
}

func (o listOptions) toQuery() (tea.Query, error) {
	var q tea.Query
	q.Filters.Search = o.query
	for _, t := range o.types {
		if !tea.Type(t).Valid() {
			return tea.Query{}, fmt.Errorf("unknown tea type %q", t)
		}
		q.Filters.Types = append(q.Filters.Types, tea.Type(t))
	}
	if o.inStock != "" {
		b, err := strconv.ParseBool(o.inStock)
		if err != nil {
			return tea.Query{}, fmt.Errorf("invalid --in-stock %q", o.inStock)
		}
		q.Filters.InStock = &b
	}
	if o.sort != "" {
		dir := string(tea.Asc)
		if o.desc {
			dir = string(tea.Desc)
		}
		s, err := tea.ParseSort(o.sort, dir)
		if err != nil {
			return tea.Query{}, err
		}
		q.Sort = s
	}
	return q, nil
}

func printTeas(w io.Writer, teas []tea.Tea, stats tea.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tSUPPLIER\tSTOCK\tRATING")
	for _, t := range teas {
		stock := "out"
		if t.InStock {
			stock = "in"
		}
		rating := "-"
		if t.Rated() {
			rating = strconv.Itoa(t.Rating) + "/10"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.Name, t.Type, t.Supplier, stock, rating)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d teas, %d in stock, %d out of stock, average rating %.1f over %d rated\n",
		stats.Total, stats.InStock, stats.OutOfStock, stats.AverageRating, stats.Rated)
	return err
}
