// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jaspar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/pdiddy/motif-engine/pkg/types"
)

// Download fetches resourceURL and writes the body verbatim to destPath,
// overwriting any existing file without warning. There is no partial-write
// cleanup: a failed write may leave a truncated file at the destination,
// and the returned error is the record of that.
func (c *Client) Download(ctx context.Context, resourceURL, destPath string, cfg types.DownloadConfig) error {
	c.Audit.Log("Starting download to: " + destPath)

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resourceURL, nil)
	if err != nil {
		c.Audit.Logf("Error during download from %s: %v", resourceURL, err)
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Audit.Logf("Error during download from %s: %v", resourceURL, err)
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("HTTP %d from %s", resp.StatusCode, resourceURL)
		c.Audit.Logf("Error during download from %s: %v", resourceURL, err)
		return err
	}

	f, err := os.Create(destPath)
	if err != nil {
		c.Audit.Logf("File error for %s: %v", destPath, err)
		return fmt.Errorf("creating %s: %w", destPath, err)
	}

	_, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if copyErr != nil {
		c.Audit.Logf("Error during download from %s: %v", resourceURL, copyErr)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		c.Audit.Logf("File error for %s: %v", destPath, closeErr)
		return fmt.Errorf("closing %s: %w", destPath, closeErr)
	}

	c.Audit.Log("Download successful for URL: " + resourceURL)
	return nil
}
