package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	result := map[string]interface{}{}
	if err := unmarshalJSONB(value, &result); err != nil {
		return err
	}
	*j = JSON(result)
	return nil
}

// StringList is a JSONB-backed list of strings.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var result []string
	if err := unmarshalJSONB(value, &result); err != nil {
		return err
	}
	*l = StringList(result)
	return nil
}

func unmarshalJSONB(value interface{}, dest interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
	return json.Unmarshal(bytes, dest)
}

// Any is a JSONB column holding an arbitrary JSON value, including scalars.
type Any struct {
	Data interface{}
}

func (a Any) Value() (driver.Value, error) {
	return json.Marshal(a.Data)
}

func (a *Any) Scan(value interface{}) error {
	if value == nil {
		a.Data = nil
		return nil
	}
	return unmarshalJSONB(value, &a.Data)
}

func (a Any) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Data)
}

func (a *Any) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &a.Data)
}
