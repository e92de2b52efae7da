package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

type Struct any

// Every error leaving the HTTP surface has this one shape
type ErrorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, data any) {
	jsonWithStatus(w, data, http.StatusOK)
}

// Render error as '{"error": "..."}' with the given status code
func Error(w http.ResponseWriter, message string, code int) {
	jsonWithStatus(w, ErrorResponse{Error: message}, code)
}

// Render json decode failure
func DecodeError(w http.ResponseWriter, err error) {
	message := "Failed to parse request body"

	// Try to provide more specific error message based on error type
	if err, ok := err.(*json.UnmarshalTypeError); ok {
		message = fmt.Sprintf("Invalid data type for field '%s'", err.Field)
	}

	Error(w, message, http.StatusBadRequest)
}

// Render validation failure as one human-readable message
func ValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	messages := make([]string, 0, len(errs))

	for _, fieldError := range errs {
		var message string
		switch fieldError.Tag() {
		case "required":
			message = "this field is required"
		case "min":
			message = fmt.Sprintf("value is too short (minimum %s)", fieldError.Param())
		case "max":
			message = fmt.Sprintf("value is too long (maximum %s)", fieldError.Param())
		default:
			message = "invalid value"
		}

		messages = append(messages, fmt.Sprintf("%s: %s", fieldError.Field(), message))
	}

	Error(w, strings.Join(messages, "; "), http.StatusBadRequest)
}

// BindAndValidate decodes JSON request body into type T and validates it using struct tags.
// Returns the decoded value and writes appropriate error responses for decoding or validation failures.
func BindAndValidate[T Struct](w http.ResponseWriter, r *http.Request) (T, error) {
	var value T

	err := json.NewDecoder(r.Body).Decode(&value)
	if err != nil {
		DecodeError(w, err)
		return value, err
	}

	err = validate.Struct(value)
	if err != nil {
		// pretty sure cast will be ok cause expecting T is valid struct
		errs := err.(validator.ValidationErrors)
		ValidationErrors(w, errs)
		return value, err
	}

	return value, nil
}

// jsonWithStatus sends data as json and enforces status code
func jsonWithStatus(w http.ResponseWriter, data any, code int) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)

	if err := enc.Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}
