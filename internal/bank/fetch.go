package bank

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrChecksum means a fetched bank did not match its expected digest.
var ErrChecksum = errors.New("bank checksum verification failed")

// maxBankSize caps a fetched bank at 8 MiB; anything larger is not a
// question bank.
const maxBankSize = 8 << 20

var httpClient = &http.Client{Timeout: 30 * time.Second}

// LoadVerified is Load with a required sha256 hex digest for remote
// sources, for banks distributed alongside a checksum.
func LoadVerified(ctx context.Context, url, sha256Hex string) (*LoadResult, error) {
	raw, err := fetch(ctx, url, sha256Hex)
	if err != nil {
		return nil, fmt.Errorf("load bank %s: %w", url, err)
	}
	return Parse(raw)
}

// fetch downloads a bank over HTTP. When expectedHex is non-empty the
// payload's sha256 must match.
func fetch(ctx context.Context, url, expectedHex string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBankSize+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > maxBankSize {
		return nil, fmt.Errorf("bank exceeds %d bytes", maxBankSize)
	}

	if expectedHex != "" {
		if err := verifyChecksum(raw, expectedHex); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

func verifyChecksum(data []byte, expectedHex string) error {
	h := sha256.Sum256(data)
	actual := hex.EncodeToString(h[:])
	if !strings.EqualFold(actual, expectedHex) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, expectedHex, actual)
	}
	return nil
}
