package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformRequest_SendsTokenAndBody(t *testing.T) {
	var gotAuth, gotMethod string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	host, token = srv.URL, "abc"
	t.Cleanup(func() { host, token = "", "" })

	require.NoError(t, performRequest(http.MethodPost, "/auto-pair", map[string]any{"gameId": 3, "pairingType": "like"}))
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "like", gotBody["pairingType"])
}

func TestPerformGetRequest_Unreachable(t *testing.T) {
	host = "http://127.0.0.1:1"
	t.Cleanup(func() { host = "" })
	assert.Error(t, performGetRequest("/health"))
}
