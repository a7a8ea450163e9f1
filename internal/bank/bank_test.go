package bank

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBank = `{
	"title": "World Capitals",
	"questions": [
		{
			"id": "q1",
			"topic": "Geography - Capitals",
			"questionText": "Capital of France?",
			"options": ["Berlin", "Paris"],
			"correctAnswer": "Paris"
		}
	]
}`

func TestParse_Valid(t *testing.T) {
	res, err := Parse([]byte(validBank))
	require.NoError(t, err)
	assert.Equal(t, "World Capitals", res.Bank.Title)
	require.Len(t, res.Bank.Questions, 1)
	assert.Equal(t, []string{"q1"}, res.Bank.QuestionIDs())
	assert.Empty(t, res.Warnings)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	require.Error(t, err)
}

func TestParse_SchemaViolation(t *testing.T) {
	// questions must be an array.
	_, err := Parse([]byte(`{"title": "x", "questions": "nope"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestParse_EmptyQuestions(t *testing.T) {
	_, err := Parse([]byte(`{"title": "x", "questions": []}`))
	require.ErrorIs(t, err, ErrNoQuestions)
}

func TestParse_NewerSchemaVersionWarns(t *testing.T) {
	raw := strings.Replace(validBank, `"title":`, `"schemaVersion": "v2", "title":`, 1)
	res, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "newer")
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, os.WriteFile(path, []byte(validBank), 0o644))

	res, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "World Capitals", res.Bank.Title)
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoad_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(validBank))
	}))
	defer srv.Close()

	res, err := Load(context.Background(), srv.URL+"/bank.json")
	require.NoError(t, err)
	assert.Equal(t, "World Capitals", res.Bank.Title)
}

func TestLoad_HTTPServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestLoadVerified_ChecksumMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(validBank))
	}))
	defer srv.Close()

	_, err := LoadVerified(context.Background(), srv.URL, strings.Repeat("0", 64))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChecksum))
}

func TestByID(t *testing.T) {
	res, err := Parse([]byte(validBank))
	require.NoError(t, err)
	require.NotNil(t, res.Bank.ByID("q1"))
	assert.Nil(t, res.Bank.ByID("missing"))
}
