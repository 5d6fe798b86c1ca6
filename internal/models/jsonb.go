package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONBStringArray is a string array stored as a JSON document column.
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for JSONBStringArray", value)
	}
	if len(bytes) == 0 {
		*a = JSONBStringArray{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// MarshalJSON renders a nil array as [] rather than null.
func (a JSONBStringArray) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(a))
}

// Steps holds ordered recipe instructions. On the wire it accepts either a
// list of steps or a single block of text, which becomes one step.
type Steps []string

func (s Steps) Value() (driver.Value, error) {
	return JSONBStringArray(s).Value()
}

func (s *Steps) Scan(value interface{}) error {
	var arr JSONBStringArray
	if err := arr.Scan(value); err != nil {
		return err
	}
	*s = Steps(arr)
	return nil
}

func (s Steps) MarshalJSON() ([]byte, error) {
	return JSONBStringArray(s).MarshalJSON()
}

func (s *Steps) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		if text == "" {
			*s = Steps{}
		} else {
			*s = Steps{text}
		}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("instructions must be a string or a list of strings")
	}
	*s = Steps(list)
	return nil
}
