package identification

import (
	"fmt"
	"strings"

	"reelid/internal/youtube"
)

const maxDescriptionChars = 1000

const systemPrompt = `You are a film identification specialist. You are given metadata scraped
from a YouTube video that shows a scene or clip from a movie, and you must
determine which movie it comes from.

Respond with a single JSON object, no prose outside it:

{
  "candidates": [
    {"title": "<movie title>", "confidence": <integer 1-100>, "reasons": ["<reason>", "<reason>"]}
  ],
  "reasoning": "<short narrative explaining your overall assessment>"
}

Rules:
- Return exactly 3 candidates, ordered from most to least likely.
- Confidence is an integer from 1 to 100. Never use 0.
- Give between 2 and 4 reasons per candidate, each a short concrete
  observation tied to the metadata (character names, plot beats, channel
  context, viewer comments, visual details implied by the title).
- Candidate titles must be official release titles, without a year suffix.
- If the metadata is too thin to be sure, still return your 3 best guesses
  with honest low confidence.`

// buildUserPrompt flattens the aggregated metadata into the evidence block the
// model ranks from. Empty fields are omitted rather than sent as blanks.
func buildUserPrompt(meta youtube.VideoMetadata) string {
	var b strings.Builder
	b.WriteString("Identify the movie shown in this YouTube video.\n\n")

	writeField := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	writeField("Video title", meta.Title)
	writeField("Channel", meta.Channel)
	writeField("Published", meta.PublishedAt)
	writeField("Description", truncate(meta.Description, maxDescriptionChars))
	writeField("Thumbnail", meta.Thumbnail)
	writeField("Captions", meta.CaptionsSummary)
	if len(meta.Keywords) > 0 {
		writeField("Titles mentioned in comments", strings.Join(meta.Keywords, ", "))
	}
	return b.String()
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
