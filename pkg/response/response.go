// Package response builds the JSON envelopes returned by every tool.
// Success payloads always carry a top level "data" key, errors always
// carry an "error" object with a message and a machine readable type.
package response

import "encoding/json"

// ErrorType classifies a tool failure for the caller.
type ErrorType string

const (
	ValidationError ErrorType = "validation_error"
	APIError        ErrorType = "api_error"
	NotFound        ErrorType = "not_found"
	InternalError   ErrorType = "internal_error"
)

// Success wraps data in the standard success envelope. Extra top level
// keys such as "metadata" or "query_type" can be supplied alongside.
func Success(data any, extra map[string]any) string {
	envelope := map[string]any{"data": data}
	for k, v := range extra {
		envelope[k] = v
	}
	return marshal(envelope)
}

// Error builds the standard error envelope.
func Error(typ ErrorType, message string) string {
	return marshal(map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    string(typ),
		},
	})
}

func marshal(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		fallback, _ := json.Marshal(map[string]any{
			"error": map[string]any{
				"message": "Failed to encode response: " + err.Error(),
				"type":    string(InternalError),
			},
		})
		return string(fallback)
	}
	return string(out)
}
