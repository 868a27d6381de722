package model

// AppConfig holds application-wide preferences.
type AppConfig struct {
	Theme     string `json:"theme"`      // "light", "dark", "system"
	LogLevel  string `json:"log_level"`  // "debug", "info", "warn", "error"
	LogFormat string `json:"log_format"` // "console" or "json"

	// Generator settings applied on start-up and on every refresh
	Seed         int64 `json:"seed"` // 0 = new random seed each time
	BedsPerFloor int   `json:"beds_per_floor"`
	BedsPerRoom  int   `json:"beds_per_room"`

	RecentExports []string `json:"recent_exports"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultGenOptions().
func DefaultAppConfig() AppConfig {
	gen := DefaultGenOptions()
	return AppConfig{
		Theme:         "system",
		LogLevel:      "info",
		LogFormat:     "console",
		Seed:          0,
		BedsPerFloor:  gen.BedsPerFloor,
		BedsPerRoom:   gen.BedsPerRoom,
		RecentExports: []string{},
	}
}

// GenOptions returns the generator options described by the config.
func (c AppConfig) GenOptions() GenOptions {
	opts := DefaultGenOptions()
	if c.BedsPerFloor > 0 {
		opts.BedsPerFloor = c.BedsPerFloor
	}
	if c.BedsPerRoom > 0 {
		opts.BedsPerRoom = c.BedsPerRoom
	}
	return opts
}

const maxRecentExports = 10

// AddRecentExport records path as the most recent export, dropping
// duplicates and keeping at most 10 entries.
func (c *AppConfig) AddRecentExport(path string) {
	recent := []string{path}
	for _, p := range c.RecentExports {
		if p != path && len(recent) < maxRecentExports {
			recent = append(recent, p)
		}
	}
	c.RecentExports = recent
}
