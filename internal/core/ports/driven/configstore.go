package driven

// ConfigStore holds user settings as dot-separated keys such as
// "storage.backend" or "search.limit". Typed getters return the zero value
// when a key is missing or holds another type.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// Set stores a value and persists it before returning.
	Set(key string, value any) error

	// Path is where the settings live, for display.
	Path() string
}
