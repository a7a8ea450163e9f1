package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchemaJSON is the JSON Schema every bank must satisfy. Legacy
// field spellings are allowed; the decoder canonicalizes them.
const bankSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["title", "questions"],
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "schemaVersion": {"type": "string"},
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "topic": {
            "anyOf": [
              {"type": "string"},
              {"type": "array", "items": {"type": "string"}}
            ]
          },
          "topics": {
            "anyOf": [
              {"type": "string"},
              {"type": "array", "items": {"type": "string"}}
            ]
          },
          "difficulty": {
            "anyOf": [
              {"type": "integer"},
              {"type": "string"}
            ]
          },
          "questionText": {"type": "string"},
          "question": {"type": "string"},
          "text": {"type": "string"},
          "options": {"type": "array", "items": {"type": "string"}},
          "distractors": {"type": "array", "items": {"type": "string"}},
          "correctAnswer": {"type": "string"},
          "answer": {"type": "string"},
          "correct": {"type": "string"},
          "explanation": {"type": "string"}
        }
      }
    }
  }
}`

const bankSchemaURL = "schema://bank.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// ValidateSchema checks raw bank JSON against the bank schema.
func ValidateSchema(raw []byte) error {
	// The jsonschema library validates a parsed JSON value, not bytes.
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid bank JSON: %w", err)
	}

	sch, err := bankSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("bank schema validation: %w", err)
	}
	return nil
}

func bankSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(bankSchemaJSON), &def); err != nil {
			schemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(bankSchemaURL)
	})
	return compiledSchema, schemaErr
}
