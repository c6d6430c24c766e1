package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "bulletin-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadDelay is the delay between consecutive downloads (default 1s).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// BulletinsDir is the base directory for bulletins (contains raw/,
	// metadata/, text/, csv/).
	BulletinsDir string `json:"bulletins_dir" yaml:"bulletins_dir"`
}

// ConversionConfig holds settings for the PDF-to-text conversion stage.
type ConversionConfig struct {
	// BulletinsDir is the base directory for bulletins (contains raw/, text/).
	BulletinsDir string `json:"bulletins_dir" yaml:"bulletins_dir"`
}

// ParseConfig holds settings for the parse stage.
type ParseConfig struct {
	// BulletinsDir is the base directory for bulletins (contains text/, csv/).
	BulletinsDir string `json:"bulletins_dir" yaml:"bulletins_dir"`
}

// StoreConfig holds settings for the event store stage.
type StoreConfig struct {
	// StoreDir is the base directory for the store (contains index/).
	StoreDir string `json:"store_dir" yaml:"store_dir"`

	// BulletinsDir is the base directory for bulletins (contains csv/, metadata/).
	BulletinsDir string `json:"bulletins_dir" yaml:"bulletins_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Fetch      FetchConfig      `json:"fetch" yaml:"fetch"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Parse      ParseConfig      `json:"parse" yaml:"parse"`
	Store      StoreConfig      `json:"store" yaml:"store"`
}
