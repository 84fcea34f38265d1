// Package main provides the command line client for a fitforge server.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/meur/fitforge/internal/client"
	"github.com/meur/fitforge/internal/config"
	"github.com/meur/fitforge/internal/fit"
	"github.com/meur/fitforge/internal/models"
	"github.com/meur/fitforge/internal/table"
)

const defaultTimeout = 30 * time.Second

type options struct {
	configPath string
	baseURL    string

	save bool

	ship  int
	items []int
	sort  string
	flip  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:          "fitctl",
		Short:        "Browse ship fits reconstructed from killmails",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultConfigPath(), "TOML config path")
	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "fitforge API base URL")

	fitCmd := &cobra.Command{
		Use:   "fit <killmail-id>",
		Short: "Print a fit in EFT text form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(cmd.Context(), cmd.OutOrStdout(), opts, args[0])
		},
	}
	fitCmd.Flags().BoolVar(&opts.save, "save", false, "Save the fit summary on the server")

	fitsCmd := &cobra.Command{
		Use:   "fits",
		Short: "List fits, optionally filtered by ship and fitted items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFits(cmd.Context(), cmd.OutOrStdout(), opts, cmd.Flags().Changed("sort"), cmd.Flags().Changed("flip"))
		},
	}
	fitsCmd.Flags().IntVar(&opts.ship, "ship", 0, "Ship type id")
	fitsCmd.Flags().IntSliceVar(&opts.items, "item", nil, "Item type id (repeatable)")
	fitsCmd.Flags().StringVar(&opts.sort, "sort", "Cost", "Sort column: Name, Cost, Hi, Med, Lo")
	fitsCmd.Flags().BoolVar(&opts.flip, "flip", false, "Invert the sort direction")

	savedCmd := &cobra.Command{
		Use:   "saved",
		Short: "List saved fits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSaved(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search ship, item and group names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd.OutOrStdout(), opts, strings.Join(args, " "))
		},
	}

	rootCmd.AddCommand(fitCmd, fitsCmd, savedCmd, searchCmd)
	return rootCmd
}

func newClient(opts *options) (*client.Client, config.FileConfig, error) {
	fc, err := config.LoadFile(opts.configPath)
	if err != nil {
		return nil, fc, err
	}
	base := opts.baseURL
	if base == "" {
		base = fc.BaseURLOr(config.DefaultBaseURL)
	}
	return client.New(base, fc.TimeoutOr(defaultTimeout)), fc, nil
}

func runFit(ctx context.Context, out io.Writer, opts *options, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid killmail id %q", arg)
	}
	c, _, err := newClient(opts)
	if err != nil {
		return err
	}
	doc, err := c.Fit(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, fit.RenderText(doc))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Fitted value: %s\n", table.FormatISK(doc.Cost))
	if opts.save {
		if err := c.Save(ctx, doc); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved as %s%d\n", fit.SavedPrefix, doc.Killmail)
	}
	return nil
}

func runFits(ctx context.Context, out io.Writer, opts *options, sortSet, flipSet bool) error {
	c, fc, err := newClient(opts)
	if err != nil {
		return err
	}
	res, err := c.Fits(ctx, client.Query{Ship: opts.ship, Items: opts.items})
	if err != nil {
		return err
	}
	for _, n := range res.Filter.Ship {
		fmt.Fprintf(out, "filter by ship: %s\n", n.Name)
	}
	for _, n := range res.Filter.Item {
		fmt.Fprintf(out, "filter by item: %s\n", n.Name)
	}

	tbl := table.NewFitTable()
	tbl.SortBy = opts.sort
	if !sortSet && fc.Table.Sort != nil {
		tbl.SortBy = *fc.Table.Sort
	}
	tbl.Flip = opts.flip
	if !flipSet && fc.Table.Flip != nil {
		tbl.Flip = *fc.Table.Flip
	}
	return writeSummaries(out, tbl, fit.SummarizeAll(res.Fits))
}

func runSaved(ctx context.Context, out io.Writer, opts *options) error {
	c, _, err := newClient(opts)
	if err != nil {
		return err
	}
	summaries, err := c.Saved(ctx)
	if err != nil {
		return err
	}
	tbl := table.NewFitTable()
	tbl.SortBy = ""
	return writeSummaries(out, tbl, summaries)
}

func writeSummaries(out io.Writer, tbl *table.Table[models.FitSummary], rows []models.FitSummary) error {
	if len(rows) == 0 {
		fmt.Fprintln(out, "no fits")
		return nil
	}
	if err := tbl.Sort(rows); err != nil {
		return err
	}
	for _, line := range tbl.Render(rows) {
		fmt.Fprintln(out, line)
	}
	return nil
}

func runSearch(ctx context.Context, out io.Writer, opts *options, term string) error {
	c, _, err := newClient(opts)
	if err != nil {
		return err
	}
	results, err := c.Search(ctx, term)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "no matches")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(out, "%-5s %8d  %s\n", r.Type, r.ID, r.Name)
	}
	return nil
}
