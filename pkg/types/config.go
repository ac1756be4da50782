package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-notes/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ZoteroConfig holds credentials and settings for the Zotero lookup client.
// LibraryID and APIKey are required; without them no client is constructed
// and abstract lookup is skipped.
type ZoteroConfig struct {
	HTTPConfig `yaml:",inline"`

	// LibraryID is the numeric Zotero library identifier.
	LibraryID string `json:"library_id" yaml:"library_id"`

	// LibraryType is "user" or "group" (default "user").
	LibraryType string `json:"library_type" yaml:"library_type"`

	// APIKey authenticates requests against the Zotero Web API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// ExtractConfig holds settings for the extract stage.
type ExtractConfig struct {
	// Zotero configures the optional abstract lookup.
	Zotero ZoteroConfig `json:"zotero" yaml:"zotero"`

	// MaxIntroPages bounds how many pages are scanned for the
	// introduction section (default 6).
	MaxIntroPages int `json:"max_intro_pages" yaml:"max_intro_pages"`

	// OutputDir is the directory for extracted text records.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// AIConfig holds shared settings for stages that call the Claude API.
type AIConfig struct {
	// Model is the Claude model identifier (e.g. "claude-3-5-sonnet-20240620").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the Claude API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the response length (default 1024).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// AnalyzeConfig holds settings for the analyze stage.
type AnalyzeConfig struct {
	AIConfig `yaml:",inline"`

	// CallDelay is the courtesy delay between consecutive Claude calls
	// (default 1s). Fixed pacing, not backpressure.
	CallDelay time.Duration `json:"call_delay" yaml:"call_delay"`

	// Overwrite replaces an existing analysis section instead of skipping
	// the file.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`
}

// RenderConfig holds settings for the render stage.
type RenderConfig struct {
	// OutputDir is the directory for rendered markdown notes.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Overwrite replaces existing markdown files instead of skipping them.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`
}

// CatalogConfig holds settings for the note catalog.
type CatalogConfig struct {
	// CatalogDir is the directory holding the SQLite database and exports.
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Analyze AnalyzeConfig `json:"analyze" yaml:"analyze"`
	Render  RenderConfig  `json:"render" yaml:"render"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
}
