// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "motif-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for motif search requests.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// TaxID filters results server-side to one organism (default 9606, human).
	TaxID string `json:"tax_id" yaml:"tax_id"`

	// Collection is the curated JASPAR collection searched (default CORE).
	Collection string `json:"collection" yaml:"collection"`

	// MaxCandidates caps how many server results are considered before the
	// best match is chosen (default 10). Matches beyond the cap are ignored.
	MaxCandidates int `json:"max_candidates" yaml:"max_candidates"`
}

// DownloadConfig holds settings for PFM downloads. The timeout defaults
// higher than the search timeout since payloads may be larger.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`
}

// HistoryConfig holds settings for the local history database.
type HistoryConfig struct {
	// DataDir is the directory holding motif-engine.db.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default page size for history listings (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
