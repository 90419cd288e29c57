// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jaspar queries the JASPAR REST API for transcription-factor
// binding motifs and downloads PFM matrix files.
package jaspar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/motif-engine/internal/audit"
	"github.com/pdiddy/motif-engine/pkg/types"
)

// jasparAPIBase is the JASPAR REST v1 root. Declared as a var so tests can
// substitute an httptest server.
var jasparAPIBase = "https://jaspar.genereg.net/api/v1/"

const defaultMaxCandidates = 10

// Client performs search and download calls against the JASPAR API.
type Client struct {
	HTTP  *http.Client
	Audit *audit.Logger
}

// Search queries the configured collection for keyword, filtered
// server-side to one organism. Only the first MaxCandidates server results
// are considered, and at most the first of those is returned: callers rely
// on the best-match contract (length 0 or 1, never more).
//
// An empty or whitespace-only keyword returns an empty result without a
// network call. A nil error with an empty slice means no match; a non-nil
// error means the search itself failed (transport, status, or parse).
func (c *Client) Search(ctx context.Context, keyword string, cfg types.SearchConfig) ([]types.MotifRecord, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		c.Audit.Log("Search failed: keyword was empty.")
		return nil, nil
	}

	c.Audit.Logf("Searching JASPAR for: %q", keyword)

	params := url.Values{
		"search":     {keyword},
		"tax_id":     {cfg.TaxID},
		"collection": {cfg.Collection},
	}
	reqURL := jasparAPIBase + "matrix/?" + params.Encode()

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Audit.Logf("JASPAR API search error for %q: %v", keyword, err)
		return nil, fmt.Errorf("JASPAR API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("JASPAR API returned HTTP %d", resp.StatusCode)
		c.Audit.Logf("JASPAR API search error for %q: %v", keyword, err)
		return nil, err
	}

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		c.Audit.Logf("JASPAR API search error for %q: %v", keyword, err)
		return nil, fmt.Errorf("parsing JASPAR response: %w", err)
	}

	maxCandidates := cfg.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = defaultMaxCandidates
	}

	var records []types.MotifRecord
	for i, m := range mr.Results {
		if i >= maxCandidates {
			break
		}
		records = append(records, types.MotifRecord{
			SequenceIndex: strconv.Itoa(i + 1),
			MatrixID:      m.MatrixID,
			Name:          m.Name,
			ResourceURL:   PFMURL(m.MatrixID),
		})
	}

	// Callers only need the best match per keyword.
	if len(records) > 1 {
		records = records[:1]
	}
	return records, nil
}

// PFMURL returns the download address for a matrix ID in PFM format.
func PFMURL(matrixID string) string {
	return fmt.Sprintf("%smatrix/%s/?format=pfm", jasparAPIBase, matrixID)
}

// JASPAR API JSON structures.
type matrixResponse struct {
	Results []matrixEntry `json:"results"`
}

type matrixEntry struct {
	MatrixID string `json:"matrix_id"`
	Name     string `json:"name"`
}
