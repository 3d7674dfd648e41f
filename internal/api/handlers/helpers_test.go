package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/utils/response"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) response.APIResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	return resp
}

// dataField reads one top-level field of the envelope's data object.
func dataField(t *testing.T, resp response.APIResponse, name string) any {
	t.Helper()

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "data should be an object")

	return data[name]
}
