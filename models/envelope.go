package models

import "encoding/json"

// ApiResponse is the wrapper every AloTra endpoint speaks, on both sides of
// the gateway: the catalog backend returns it and the gateway mirrors it to
// the browser.
type ApiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// PageResult is the paged collection envelope under ApiResponse.Data.
type PageResult struct {
	Items       []json.RawMessage `json:"items"`
	Total       int               `json:"total"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
	Size        int               `json:"size"`
}

// DecodeItems unmarshals the raw page items into a typed slice.
func DecodeItems[T any](items []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, raw := range items {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func Ok(data any) map[string]any {
	return map[string]any{"success": true, "data": data}
}

func OkMessage(data any, msg string) map[string]any {
	return map[string]any{"success": true, "message": msg, "data": data}
}

func Fail(msg string) map[string]any {
	return map[string]any{"success": false, "message": msg}
}
