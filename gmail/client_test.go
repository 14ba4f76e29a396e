package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &Client{
		httpClient: srv.Client(),
		baseURL:    srv.URL,
		logger:     logrus.NewEntry(logger),
	}
}

func TestListMessageIDs(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "in:inbox", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("maxResults"))
		fmt.Fprint(w, `{"messages":[{"id":"m1"},{"id":"m2"}]}`)
	}))

	ids, err := client.ListMessageIDs(context.Background(), 2, InboxQuery)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2"}, ids)
}

func TestListMessageIDsEmptyInbox(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))

	ids, err := client.ListMessageIDs(context.Background(), 10, InboxQuery)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFetchInboxSkipsFailedMessages(t *testing.T) {
	body := base64.RawURLEncoding.EncodeToString([]byte("hello"))
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/messages":
			fmt.Fprint(w, `{"messages":[{"id":"good"},{"id":"bad"},{"id":"good2"}]}`)
		case "/messages/bad":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			id := r.URL.Path[len("/messages/"):]
			fmt.Fprintf(w, `{"id":%q,"snippet":"s","payload":{"mimeType":"text/plain","headers":[{"name":"Subject","value":"Hi"}],"body":{"data":%q}}}`, id, body)
		}
	}))

	messages, err := client.FetchInbox(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "good", messages[0].ID)
	assert.Equal(t, "good2", messages[1].ID)
	assert.Equal(t, "Hi", messages[0].Subject)
	assert.Equal(t, "hello", messages[0].Body)
}

func TestFetchInboxListFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.FetchInbox(context.Background(), 5)
	assert.Error(t, err)
}
