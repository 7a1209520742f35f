package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"digique-backend/internal/delivery/http/middleware"
	"digique-backend/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type requestOption func(*http.Request) *http.Request

func asUser(userID uuid.UUID) requestOption {
	return func(r *http.Request) *http.Request {
		return r.WithContext(context.WithValue(r.Context(), middleware.UserIDKey, userID))
	}
}

func asHospitalAdmin(userID, hospitalID uuid.UUID) requestOption {
	return func(r *http.Request) *http.Request {
		ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
		ctx = context.WithValue(ctx, middleware.HospitalIDKey, hospitalID)
		return r.WithContext(ctx)
	}
}

func withVars(vars map[string]string) requestOption {
	return func(r *http.Request) *http.Request {
		return mux.SetURLVars(r, vars)
	}
}

func newRequest(t *testing.T, method, target string, body interface{}, opts ...requestOption) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		req = opt(req)
	}
	return req
}

func serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

// decodeEnvelope unmarshals the response envelope, placing Data into data
// when it is non-nil.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) response.Response {
	t.Helper()
	var raw struct {
		response.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.Response
}
