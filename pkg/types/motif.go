// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the record and configuration types shared across stages.
package types

// MotifRecord is one search result from the JASPAR matrix endpoint.
// MatrixID and ResourceURL are non-empty on every record a successful
// search returns.
type MotifRecord struct {
	// SequenceIndex is the 1-based position among the candidates,
	// string-typed for display.
	SequenceIndex string `json:"sequence_index" yaml:"sequence_index"`

	// MatrixID is the JASPAR matrix identifier, e.g. "MA0148.4".
	MatrixID string `json:"matrix_id" yaml:"matrix_id"`

	// Name is the transcription factor display name. It may contain
	// characters that are illegal in filenames.
	Name string `json:"name" yaml:"name"`

	// ResourceURL is the address the raw PFM data is fetched from.
	ResourceURL string `json:"resource_url" yaml:"resource_url"`
}

// BatchStatus is the outcome of processing one batch keyword.
type BatchStatus string

const (
	StatusSuccess BatchStatus = "SUCCESS"
	StatusFailed  BatchStatus = "FAILED"
)

// BatchRow is one line of the batch report. It is built once per keyword
// and never mutated after being appended to the report list.
type BatchRow struct {
	// Keyword is the original input, upper-cased.
	Keyword string `json:"tf_keyword" yaml:"tf_keyword"`

	Status BatchStatus `json:"status" yaml:"status"`

	// MatrixID and FilePath are populated only on SUCCESS.
	MatrixID string `json:"matrix_id" yaml:"matrix_id"`
	FilePath string `json:"file_path" yaml:"file_path"`

	// ErrorMessage is populated only on FAILED.
	ErrorMessage string `json:"error_message" yaml:"error_message"`
}
