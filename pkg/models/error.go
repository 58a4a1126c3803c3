package models

import "encoding/json"

type ErrorPayload struct {
	Message string `json:"message"`
}

// CreateError builds the generic JSON error body sent to clients. Store
// diagnostics never pass through here.
func CreateError(msg string) []byte {
	err, _ := json.Marshal(ErrorPayload{
		Message: msg,
	})
	return err
}
