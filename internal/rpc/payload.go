package rpc

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pageza/alchemorsel-recipes/backend/internal/apperr"
	"github.com/pageza/alchemorsel-recipes/backend/internal/types"
)

func isEmpty(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeInto(data json.RawMessage, v interface{}) error {
	if isEmpty(data) {
		return apperr.InvalidInput("payload is required")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return apperr.InvalidInput("invalid payload: %v", err)
	}
	return nil
}

// decodeString reads a bare string or the string field key of an object.
func decodeString(data json.RawMessage, key string) (string, error) {
	if isEmpty(data) {
		return "", apperr.InvalidInput("%s is required", key)
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s = strings.TrimSpace(s); s == "" {
			return "", apperr.InvalidInput("%s is required", key)
		}
		return s, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", apperr.InvalidInput("invalid payload: expected %s", key)
	}
	field, ok := obj[key]
	if !ok || isEmpty(field) {
		return "", apperr.InvalidInput("%s is required", key)
	}
	if err := json.Unmarshal(field, &s); err != nil {
		return "", apperr.InvalidInput("%s must be a string", key)
	}
	if s = strings.TrimSpace(s); s == "" {
		return "", apperr.InvalidInput("%s is required", key)
	}
	return s, nil
}

// decodeList reads a comma separated string, a list of strings, or either
// of them under key in an object. The result is comma separated.
func decodeList(data json.RawMessage, key string) (string, error) {
	if isEmpty(data) {
		return "", apperr.InvalidInput("%s is required", key)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		field, ok := obj[key]
		if !ok {
			return "", apperr.InvalidInput("%s is required", key)
		}
		data = field
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return "", apperr.InvalidInput("%s must be a string or a list of strings", key)
	}
	return strings.Join(list, ","), nil
}

// decodeNumber reads a number, a numeric string, or either under key in an
// object.
func decodeNumber(data json.RawMessage, key string) (float64, error) {
	if isEmpty(data) {
		return 0, apperr.InvalidInput("%s is required", key)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		field, ok := obj[key]
		if !ok || isEmpty(field) {
			return 0, apperr.InvalidInput("%s is required", key)
		}
		data = field
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return n, nil
		}
	}
	return 0, apperr.InvalidInput("%s must be a number", key)
}

func decodeRange(data json.RawMessage) (min, max float64, err error) {
	var obj map[string]json.RawMessage
	if err := decodeInto(data, &obj); err != nil {
		return 0, 0, err
	}
	if min, err = decodeNumber(obj["min"], "min"); err != nil {
		return 0, 0, err
	}
	if max, err = decodeNumber(obj["max"], "max"); err != nil {
		return 0, 0, err
	}
	return min, max, nil
}

// decodeUpdate reads {"id": ..., "dto": {...}} or a flat object carrying the
// id next to the updated fields.
func decodeUpdate(data json.RawMessage, dto interface{}) (string, error) {
	var obj map[string]json.RawMessage
	if err := decodeInto(data, &obj); err != nil {
		return "", err
	}
	id, err := decodeString(obj["id"], "id")
	if err != nil {
		return "", err
	}
	body := data
	if inner, ok := obj["dto"]; ok {
		body = inner
	}
	if err := decodeInto(body, dto); err != nil {
		return "", err
	}
	return id, nil
}

// decodePopulate reads a list of ingredients or {"ingredients": [...]}.
func decodePopulate(data json.RawMessage) ([]types.CreateIngredientRequest, error) {
	if isEmpty(data) {
		return nil, apperr.InvalidInput("at least one ingredient is required")
	}
	var list []types.CreateIngredientRequest
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Ingredients []types.CreateIngredientRequest `json:"ingredients"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, apperr.InvalidInput("invalid payload: %v", err)
	}
	return wrapped.Ingredients, nil
}

func decodeSearch(data json.RawMessage) (*types.SearchByIngredientsRequest, error) {
	var obj map[string]json.RawMessage
	if err := decodeInto(data, &obj); err != nil {
		return nil, err
	}
	ingredients, err := decodeList(obj["ingredients"], "ingredients")
	if err != nil {
		return nil, err
	}
	req := &types.SearchByIngredientsRequest{Ingredients: ingredients}
	if raw, ok := obj["mode"]; ok && !isEmpty(raw) {
		if err := json.Unmarshal(raw, &req.Mode); err != nil {
			return nil, apperr.InvalidInput("mode must be a string")
		}
	}
	return req, nil
}
