package config

const (
	// MaxRequestBodyBytes caps JSON request bodies. Reports are plain text
	// and 1MB is far above any realistic report.
	MaxRequestBodyBytes = 1 << 20

	// FrequentWordMinCount is how many times a single word must occur in a
	// report's text for the report to be returned by the frequent-word query.
	FrequentWordMinCount = 3
)
