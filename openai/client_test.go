package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("sk-test", "gpt-4o-mini", WithBaseURL(srv.URL))
}

func TestValidateKey(t *testing.T) {
	client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"data":[]}`)
	}))

	assert.NoError(t, client.ValidateKey(context.Background()))
}

func TestValidateKeyRejected(t *testing.T) {
	client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	err := client.ValidateKey(context.Background())
	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestValidateKeyUnreachableHost(t *testing.T) {
	client := NewClient("sk-test", "gpt-4o-mini", WithBaseURL("http://127.0.0.1:1"))

	err := client.ValidateKey(context.Background())
	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestComplete(t *testing.T) {
	client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Equal(t, 20, req.MaxTokens)
		assert.InDelta(t, 0.2, req.Temperature, 0.001)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		fmt.Fprint(w, `{"choices":[{"message":{"content":"  Important\n"}}]}`)
	}))

	answer, err := client.Complete(context.Background(), "sys", "user", 20, 0.2)
	require.NoError(t, err)
	assert.Equal(t, "Important", answer, "surrounding whitespace is trimmed")
}

func TestCompleteAuthFailure(t *testing.T) {
	client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Complete(context.Background(), "sys", "user", 20, 0.2)
	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestCompleteServerError(t *testing.T) {
	client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"model overloaded"}}`)
	}))

	_, err := client.Complete(context.Background(), "sys", "user", 20, 0.2)
	var modelErr *ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.Equal(t, http.StatusInternalServerError, modelErr.StatusCode)
	assert.Contains(t, modelErr.Message, "model overloaded")
}

func TestCompleteNoChoices(t *testing.T) {
	client := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))

	_, err := client.Complete(context.Background(), "sys", "user", 20, 0.2)
	var modelErr *ModelError
	assert.ErrorAs(t, err, &modelErr)
}
