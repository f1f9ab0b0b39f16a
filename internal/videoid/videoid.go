package videoid

import "regexp"

// Patterns are ordered: the first capturing match wins. Standard watch links,
// shortened youtu.be links, embed links, and shorts links all carry the same
// 11-character identifier.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?(?:.*&)?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
}

// Extract returns the canonical video identifier contained in raw, which may
// be any string. The boolean reports whether a recognized URL form was found;
// malformed input never panics.
func Extract(raw string) (string, bool) {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(raw); len(m) >= 2 {
			return m[1], true
		}
	}
	return "", false
}

// WatchURL builds the conventional watch link for an identifier.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// ThumbnailURL builds the conventional high-quality thumbnail link for an
// identifier. It is used as the terminal fallback when no metadata source
// reports a thumbnail.
func ThumbnailURL(id string) string {
	return "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg"
}
