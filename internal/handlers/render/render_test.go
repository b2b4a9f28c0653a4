package render

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindTarget struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2"`
}

func bindRequest(t *testing.T, body string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return httptest.NewRecorder(), req
}

func Test_BindAndValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid body", func(t *testing.T) {
		rec, req := bindRequest(t, `{"email": "owner@example.com", "name": "Owner"}`)

		value, err := BindAndValidate[bindTarget](rec, req)
		require.NoError(t, err)
		assert.Equal(t, "owner@example.com", value.Email)
		assert.Equal(t, "Owner", value.Name)
		assert.Empty(t, rec.Body.String(), "nothing must be written on success")
	})

	t.Run("broken json", func(t *testing.T) {
		rec, req := bindRequest(t, `{"email": `)

		_, err := BindAndValidate[bindTarget](rec, req)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), DecodingErrorType)
	})

	t.Run("wrong field type", func(t *testing.T) {
		rec, req := bindRequest(t, `{"email": 42, "name": "Owner"}`)

		_, err := BindAndValidate[bindTarget](rec, req)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid data type for field 'email'")
	})

	t.Run("validation failure uses json field names", func(t *testing.T) {
		rec, req := bindRequest(t, `{"email": "not-an-email", "name": "x"}`)

		_, err := BindAndValidate[bindTarget](rec, req)
		require.Error(t, err)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, ValidationErrorType, response.Error)
		assert.Equal(t, "Must be a valid email address", response.Fields["email"])
		assert.Equal(t, "Value is too short (minimum 2)", response.Fields["name"])
	})
}

func Test_JSONWithStatus(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	JSONWithStatus(rec, map[string]string{"k": "v"}, http.StatusCreated)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"k": "v"}`, rec.Body.String())
}

func Test_ServiceError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ServiceError(rec, "Not found", http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "service_error", "message": "Not found"}`, rec.Body.String())
}

func Test_InternalError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	InternalError(rec, "req-123")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "service_error", "message": "Internal server error", "requestId": "req-123"}`, rec.Body.String())
}
