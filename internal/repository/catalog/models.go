package catalog

// Status values mirror the external catalog's watch-status tags.
const (
	StatusWatchlist = "watchlist"
	StatusWatching  = "watching"
	StatusCompleted = "completed"
)

type UpdateProgressParams struct {
	ItemRef         string
	WatchProgress   float64
	ProgressPercent float64
	LastWatched     int64
}
