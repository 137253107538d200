package badger

// Keys for the per-user lists. Each list lives under a single key.
const (
	bookmarksKey     = "aegis-osint-bookmarks"
	searchHistoryKey = "aegis-osint-search-history"
	filterPresetsKey = "aegis-osint-filter-presets"
)
