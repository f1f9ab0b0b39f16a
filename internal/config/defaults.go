package config

const (
	defaultDataDir             = "~/.local/share/reelid"
	defaultLogDir              = "~/.local/share/reelid/logs"
	defaultAPIBind             = "127.0.0.1:7512"
	defaultYouTubeBaseURL      = "https://www.googleapis.com/youtube/v3"
	defaultOEmbedURL           = "https://www.youtube.com/oembed"
	defaultCommentPageSize     = 100
	defaultYouTubeTimeout      = 10
	defaultTMDBBaseURL         = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL    = "https://image.tmdb.org/t/p/w500"
	defaultTMDBLanguage        = "en-US"
	defaultTMDBWatchRegion     = "US"
	defaultTMDBRequestsPerSec  = 20
	defaultLLMBaseURL          = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel            = "google/gemini-3-flash-preview"
	defaultLLMReferer          = "https://github.com/reelid/reelid"
	defaultLLMTitle            = "Reelid Movie Identifier"
	defaultLLMTimeoutSeconds   = 60
	defaultLLMCandidates       = 3
	defaultHistoryMaxEntries   = 200
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		YouTube: YouTube{
			BaseURL:         defaultYouTubeBaseURL,
			OEmbedURL:       defaultOEmbedURL,
			CommentPageSize: defaultCommentPageSize,
			TimeoutSeconds:  defaultYouTubeTimeout,
		},
		TMDB: TMDB{
			BaseURL:           defaultTMDBBaseURL,
			ImageBaseURL:      defaultTMDBImageBaseURL,
			Language:          defaultTMDBLanguage,
			WatchRegion:       defaultTMDBWatchRegion,
			RequestsPerSecond: defaultTMDBRequestsPerSec,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
			Candidates:     defaultLLMCandidates,
		},
		History: History{
			Enabled:    false,
			MaxEntries: defaultHistoryMaxEntries,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
