package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeAndValidate parses the JSON body into dst and runs schema validation.
// A false return means a 400 with field detail has already been written, so
// malformed payloads never reach the store layer.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := make(map[string]string, len(fieldErrs))
			for _, fe := range fieldErrs {
				details[fe.Field()] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
			}
			respondJSON(w, http.StatusBadRequest, map[string]any{
				"message": "Invalid request body",
				"details": details,
			})
			return false
		}
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
