package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"

	"mockmate/interview/internal/models"
	"mockmate/interview/internal/utils"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const validatedRequestKey contextKey = "validated_request"

// Validator is implemented by the interview request DTOs. Validate
// both checks the payload and canonicalizes it in place, so handlers
// never see raw casing or surrounding whitespace.
type Validator interface {
	Validate() error
}

// ValidateRequest decodes the JSON body into T, runs its Validate,
// and stores the result in the request context. Malformed bodies and
// validation failures answer 400 before the handler runs, so handlers
// read the request with GetValidatedRequest and assume it is valid.
func ValidateRequest[T Validator]() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// T is a pointer type in practice; allocate the element
			var req T
			reqType := reflect.TypeOf(req)
			if reqType.Kind() == reflect.Ptr {
				req = reflect.New(reqType.Elem()).Interface().(T)
			} else {
				req = reflect.New(reqType).Interface().(T)
			}

			if err := json.NewDecoder(r.Body).Decode(req); err != nil {
				utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
					Code:    "invalid_json",
					Message: "Invalid JSON in request body",
				})
				return
			}

			if err := req.Validate(); err != nil {
				// DTOs return *ErrorResponse with a stable code
				if errResp, ok := err.(*models.ErrorResponse); ok {
					utils.JSON(w, http.StatusBadRequest, *errResp)
				} else {
					utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
						Code:    "validation_error",
						Message: err.Error(),
					})
				}
				return
			}

			ctx := context.WithValue(r.Context(), validatedRequestKey, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetValidatedRequest retrieves the canonicalized request a
// ValidateRequest middleware stored for this route.
func GetValidatedRequest[T any](r *http.Request) T {
	return r.Context().Value(validatedRequestKey).(T)
}
