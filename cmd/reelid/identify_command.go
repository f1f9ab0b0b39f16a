package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reelid/internal/history"
	"reelid/internal/identification"
)

const identifyTimeout = 2 * time.Minute

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "identify <url>",
		Short: "Identify the movie shown in a YouTube video",
		Long: `Identify the movie a YouTube clip comes from.

The video's metadata (title, description, captions availability, top comments)
is aggregated and ranked by the configured model, and the candidates are
confirmed against TMDB. The best match is shown with streaming availability
and similar titles.

Examples:
  reelid identify https://youtu.be/dQw4w9WgXcQ
  reelid identify --json "https://www.youtube.com/watch?v=dQw4w9WgXcQ"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			identifier, err := identification.NewFromConfig(cfg, logger)
			if err != nil {
				return fmt.Errorf("build pipeline: %w", err)
			}

			runCtx, cancel := context.WithTimeout(cmd.Context(), identifyTimeout)
			defer cancel()

			url := strings.TrimSpace(args[0])
			result, err := identifier.Identify(runCtx, url)
			if err != nil {
				var noMatch *identification.NoMatchError
				if errors.As(err, &noMatch) {
					return renderNoMatch(cmd, ctx, noMatch)
				}
				return err
			}

			if cfg.History.Enabled && !noSave {
				recordIdentifyHistory(runCtx, cmd, cfg.History.Path, cfg.History.MaxEntries, url, result)
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, result)
			}
			renderResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not record the result in history")
	return cmd
}

func renderNoMatch(cmd *cobra.Command, ctx *commandContext, noMatch *identification.NoMatchError) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, map[string]string{
			"error":      "no confident match found",
			"suggestion": noMatch.TopGuess,
			"reasoning":  noMatch.Reasoning,
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "No confident match found.")
	if noMatch.TopGuess != "" {
		fmt.Fprintf(out, "Best guess: %s\n", noMatch.TopGuess)
	}
	if noMatch.Reasoning != "" {
		fmt.Fprintf(out, "Reasoning: %s\n", noMatch.Reasoning)
	}
	return nil
}

func renderResult(cmd *cobra.Command, result *identification.Result) {
	out := cmd.OutOrStdout()
	best := result.Best()

	fmt.Fprintf(out, "%s (%s)  confidence %d/100\n", best.Title, best.Year, best.Confidence)
	if best.Rating != "N/A" || best.Runtime != "Unknown" {
		fmt.Fprintf(out, "Rating %s  |  %s", best.Rating, best.Runtime)
		if len(best.Genres) > 0 {
			fmt.Fprintf(out, "  |  %s", strings.Join(best.Genres, ", "))
		}
		fmt.Fprintln(out)
	}
	if best.Plot != "" {
		fmt.Fprintf(out, "\n%s\n", best.Plot)
	}
	if best.Trailer != "" {
		fmt.Fprintf(out, "\nTrailer: %s\n", best.Trailer)
	}

	fmt.Fprintln(out)
	rows := make([][]string, 0, len(result.Matches))
	for _, match := range result.Matches {
		rows = append(rows, []string{
			match.Title,
			match.Year,
			strconv.Itoa(match.Confidence),
			strings.Join(match.Reasons, "; "),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Match", "Year", "Confidence", "Reasons"}, rows, 2))

	if len(result.Enrichment.Providers) > 0 {
		providerRows := make([][]string, 0, len(result.Enrichment.Providers))
		for _, provider := range result.Enrichment.Providers {
			providerRows = append(providerRows, []string{provider.Name, provider.Type})
		}
		fmt.Fprintln(out, renderTable([]string{"Where to Watch", "Offer"}, providerRows))
	}
	if len(result.Enrichment.Similar) > 0 {
		similarRows := make([][]string, 0, len(result.Enrichment.Similar))
		for _, similar := range result.Enrichment.Similar {
			similarRows = append(similarRows, []string{similar.Title, similar.Year})
		}
		fmt.Fprintln(out, renderTable([]string{"Similar", "Year"}, similarRows))
	}

	if result.Reasoning != "" {
		fmt.Fprintf(out, "Reasoning: %s\n", result.Reasoning)
	}
}

func recordIdentifyHistory(ctx context.Context, cmd *cobra.Command, path string, maxEntries int, url string, result *identification.Result) {
	store, err := history.Open(path, maxEntries)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	best := result.Best()
	entry := history.NewEntry(result.VideoID, url, best.Title, best.Year, best.Poster, best.Confidence)
	if err := store.Record(ctx, history.CollectionHistory, entry); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: history record failed: %v\n", err)
	}
}
