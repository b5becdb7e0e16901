package repository

import (
	"encoding/json"
	"fmt"
)

// JSON columns are stored as TEXT on SQLite and JSONB on Postgres; both accept a string parameter.

func encodeJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode json column: %w", err)
	}
	return string(data), nil
}

func decodeJSON(data []byte, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	return nil
}
