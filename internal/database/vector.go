package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Vector stores a float64 embedding as a JSON array column. JSON keeps the
// column portable between SQLite and PostgreSQL; similarity math happens in
// the application, not the database.
type Vector []float64

// Scan implements sql.Scanner.
func (v *Vector) Scan(value any) error {
	if value == nil {
		*v = nil
		return nil
	}

	var data []byte
	switch val := value.(type) {
	case []byte:
		data = val
	case string:
		data = []byte(val)
	default:
		return fmt.Errorf("cannot scan %T into Vector", value)
	}

	return json.Unmarshal(data, v)
}

// Value implements driver.Valuer. A nil vector stores SQL NULL.
func (v Vector) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
