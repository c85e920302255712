//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String())) {
		return
	}

	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		err := json.Unmarshal(w.Body.Bytes(), targetStruct)
		assert.NoError(t, err, fmt.Sprintf("Failed to decode response JSON: %s", w.Body.String()))
	}
}

func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String()))

	var body errorBody
	err := json.Unmarshal(w.Body.Bytes(), &body)
	assert.NoError(t, err, fmt.Sprintf("Failed to decode error response JSON: %s", w.Body.String()))

	if expectedErrorMsg != "" {
		assert.Contains(t, body.Error.Message, expectedErrorMsg,
			"Response error message doesn't contain expected text")
	}
}

// AssertValidationResponse checks for a 400 that names every expected field.
func AssertValidationResponse(t *testing.T, w *httptest.ResponseRecorder, expectedFields ...string) {
	t.Helper()

	if !assert.Equal(t, http.StatusBadRequest, w.Code, "Response: %s", w.Body.String()) {
		return
	}

	var body errorBody
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)) {
		return
	}
	assert.Equal(t, "Validation failed", body.Error.Message)

	got := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		assert.NotEmpty(t, e.Message, "field %s has no message", e.Field)
		got = append(got, e.Field)
	}
	for _, f := range expectedFields {
		assert.Contains(t, got, f)
	}
}
