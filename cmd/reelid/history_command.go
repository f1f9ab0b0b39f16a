package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelid/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var collection string

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage recorded identifications",
	}
	historyCmd.PersistentFlags().StringVar(&collection, "collection", history.CollectionHistory, "Collection to operate on (history, saved)")

	withStore := func(fn func(cmd *cobra.Command, args []string, store *history.Store) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("history is disabled; set history.enabled = true in the configuration")
			}
			store, err := history.Open(cfg.History.Path, cfg.History.MaxEntries)
			if err != nil {
				return fmt.Errorf("open history store: %w", err)
			}
			defer store.Close()
			return fn(cmd, args, store)
		}
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded entries, newest first",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, _ []string, store *history.Store) error {
			snapshot, err := store.Load(cmd.Context(), collection)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, snapshot)
			}
			if len(snapshot) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No entries in %q.\n", collection)
				return nil
			}
			rows := make([][]string, 0, len(snapshot))
			for _, entry := range snapshot {
				rows = append(rows, []string{
					entry.ID,
					entry.Title,
					entry.Year,
					strconv.Itoa(entry.Confidence),
					entry.MatchedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Title", "Year", "Confidence", "Matched"}, rows, 3))
			return nil
		}),
	}

	removeCmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove one entry by id",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, store *history.Store) error {
			if err := store.Delete(cmd.Context(), collection, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed.")
			return nil
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every entry in the collection",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, _ []string, store *history.Store) error {
			if err := store.Clear(cmd.Context(), collection); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %q.\n", collection)
			return nil
		}),
	}

	historyCmd.AddCommand(listCmd)
	historyCmd.AddCommand(removeCmd)
	historyCmd.AddCommand(clearCmd)
	return historyCmd
}
