// Package bank loads and validates question banks. A bank is a JSON
// resource, local file or HTTP URL, addressed by quiz identifier. Any
// load, parse, or validation failure is fatal to quiz initialization:
// selection never runs against partial data.
package bank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/semver"
)

// SupportedSchemaVersion is the newest bank format this build fully
// understands. Banks declaring a newer version still load; the caller
// gets a warning to surface.
const SupportedSchemaVersion = "v1"

// ErrNoQuestions is returned for a bank with an empty questions array.
var ErrNoQuestions = errors.New("bank contains no questions")

// Bank is a loaded question set.
type Bank struct {
	Title         string     `json:"title"`
	SchemaVersion string     `json:"schemaVersion,omitempty"`
	Questions     []Question `json:"questions"`
}

// QuestionIDs returns the ids in bank order.
func (b *Bank) QuestionIDs() []string {
	ids := make([]string, len(b.Questions))
	for i := range b.Questions {
		ids[i] = b.Questions[i].ID
	}
	return ids
}

// ByID returns the question with the given id, or nil.
func (b *Bank) ByID(id string) *Question {
	for i := range b.Questions {
		if b.Questions[i].ID == id {
			return &b.Questions[i]
		}
	}
	return nil
}

// LoadResult carries a loaded bank plus non-fatal findings.
type LoadResult struct {
	Bank     *Bank
	Warnings []string
}

// Load reads a bank from a local path or HTTP(S) URL, validates it
// against the bank schema, and decodes it.
func Load(ctx context.Context, source string) (*LoadResult, error) {
	var raw []byte
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		raw, err = fetch(ctx, source, "")
	} else {
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("load bank %s: %w", source, err)
	}
	return Parse(raw)
}

// Parse validates and decodes raw bank JSON.
func Parse(raw []byte) (*LoadResult, error) {
	if err := ValidateSchema(raw); err != nil {
		return nil, err
	}

	var b Bank
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	if len(b.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	res := &LoadResult{Bank: &b}
	if w := schemaVersionWarning(b.SchemaVersion); w != "" {
		res.Warnings = append(res.Warnings, w)
	}
	return res, nil
}

// schemaVersionWarning returns a warning when the bank declares a
// format version newer than this build supports.
func schemaVersionWarning(version string) string {
	if version == "" {
		return ""
	}
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Sprintf("unrecognized schemaVersion %q, assuming %s", version, SupportedSchemaVersion)
	}
	if semver.Compare(v, SupportedSchemaVersion) > 0 {
		return fmt.Sprintf("bank schemaVersion %s is newer than supported %s; some fields may be ignored", version, SupportedSchemaVersion)
	}
	return ""
}
