package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/client"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/config"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/models"
)

var apiBase string

var rootCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Terminal client for the Kama Ledger API",
	Long: `Monitor talks to a running Kama Ledger server over its JSON API.
Transient failures are retried with backoff; once retries are exhausted
a notice goes to stderr and the original error is reported.`,
	SilenceUsage: true,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check API and database liveness",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := newClient().Health(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println("status:", status.Status)
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List auction house categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := newClient().ListCategories(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tGID\tNAME")
		for _, c := range categories {
			fmt.Fprintf(w, "%d\t%d\t%s\n", c.CategoryID, c.GameID, c.Name)
		}
		return w.Flush()
	},
}

var (
	itemsSearch   string
	itemsCategory uint
	itemsPage     int
	itemsSize     int
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List items from the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := client.ItemQuery{
			Page:   itemsPage,
			Size:   itemsSize,
			Search: itemsSearch,
		}
		if cmd.Flags().Changed("category") {
			id := itemsCategory
			q.CategoryID = &id
		}

		page, err := newClient().ListItems(cmd.Context(), q)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tGID\tNAME\tCATEGORY")
		for _, item := range page.Content {
			category := ""
			if item.Category != nil {
				category = item.Category.Name
			}
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", item.ItemID, item.GameID, item.DisplayName(), category)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\npage %d/%d, %d items total\n", page.Page+1, page.TotalPages, page.TotalElements)
		return nil
	},
}

var (
	pricesItem  uint
	pricesStart string
	pricesEnd   string
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Show the price history of one item",
	RunE: func(cmd *cobra.Command, args []string) error {
		var r client.PriceRange
		var err error
		if pricesStart != "" {
			r.StartDate, err = time.Parse("2006-01-02", pricesStart)
			if err != nil {
				return fmt.Errorf("parsing --start: %w", err)
			}
		}
		if pricesEnd != "" {
			r.EndDate, err = time.Parse("2006-01-02", pricesEnd)
			if err != nil {
				return fmt.Errorf("parsing --end: %w", err)
			}
		}

		cli := newClient()
		item, err := cli.GetItem(cmd.Context(), pricesItem)
		if err != nil {
			return err
		}
		entries, err := cli.ListItemPrices(cmd.Context(), pricesItem, r)
		if err != nil {
			return err
		}

		fmt.Println(item.DisplayName())

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RECORDED\tLOT\tPRICE\tPER UNIT")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\tx%d\t%s\t%s\n",
				e.CreatedAt.Format("2006-01-02 15:04"),
				e.Quantity,
				models.FormatKamas(e.Price),
				models.FormatKamas(int64(math.Round(e.UnitPrice()))))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		stats, ok := models.SummarizePrices(entries)
		if !ok {
			fmt.Println("\nno prices recorded in this range")
			return nil
		}
		fmt.Printf("\n%d observations, min %s, max %s, avg %s\n",
			stats.Count,
			models.FormatKamas(stats.Min),
			models.FormatKamas(stats.Max),
			models.FormatKamas(stats.Avg))
		return nil
	},
}

// newClient builds an API client from the --api flag, falling back to
// API_BASE_URL via config. Notices land on stderr so piped stdout
// stays clean.
func newClient() *client.Client {
	base := apiBase
	if base == "" {
		if cfg, err := config.Load(); err == nil {
			base = cfg.API.BaseURL
		} else {
			base = "http://localhost:8080/api"
		}
	}

	return client.New(base, client.WithNotifier(client.NotifierFunc(
		func(message string, _ time.Duration) {
			fmt.Fprintln(os.Stderr, "NOTICE:", message)
		})))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "", "API base URL (default from API_BASE_URL)")

	itemsCmd.Flags().StringVar(&itemsSearch, "search", "", "filter by name")
	itemsCmd.Flags().UintVar(&itemsCategory, "category", 0, "filter by category id")
	itemsCmd.Flags().IntVar(&itemsPage, "page", 0, "page number (zero-based)")
	itemsCmd.Flags().IntVar(&itemsSize, "size", 10, "page size")

	pricesCmd.Flags().UintVar(&pricesItem, "item", 0, "item id (required)")
	pricesCmd.Flags().StringVar(&pricesStart, "start", "", "start date YYYY-MM-DD")
	pricesCmd.Flags().StringVar(&pricesEnd, "end", "", "end date YYYY-MM-DD")
	pricesCmd.MarkFlagRequired("item")

	rootCmd.AddCommand(healthCmd, categoriesCmd, itemsCmd, pricesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
