// Package gmail is a thin read-only client for the Gmail REST API, scoped to
// what the classifier needs: listing inbox message ids and fetching full
// messages for body extraction.
package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"mailsift/models"
)

const apiBaseURL = "https://gmail.googleapis.com/gmail/v1/users/me"

// InboxQuery restricts listing to the inbox folder.
const InboxQuery = "in:inbox"

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logrus.Entry
}

// NewClient builds a Gmail client around the user's OAuth token. The
// returned client refreshes the token transparently through the oauth2
// transport.
func NewClient(ctx context.Context, conf *oauth2.Config, token *oauth2.Token, logger *logrus.Entry) *Client {
	httpClient := conf.Client(ctx, token)
	httpClient.Timeout = 30 * time.Second

	return &Client{
		httpClient: httpClient,
		baseURL:    apiBaseURL,
		logger:     logger,
	}
}

type listResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// ListMessageIDs returns up to maxResults message ids matching the query.
func (c *Client) ListMessageIDs(ctx context.Context, maxResults int, query string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/messages?maxResults=%d&q=%s", c.baseURL, maxResults, url.QueryEscape(query))

	var list listResponse
	if err := c.getJSON(ctx, endpoint, &list); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	ids := make([]string, 0, len(list.Messages))
	for _, msg := range list.Messages {
		ids = append(ids, msg.ID)
	}
	return ids, nil
}

// GetMessage fetches a single message with its full part tree.
func (c *Client) GetMessage(ctx context.Context, id string) (*Message, error) {
	endpoint := fmt.Sprintf("%s/messages/%s?format=full", c.baseURL, url.PathEscape(id))

	var msg Message
	if err := c.getJSON(ctx, endpoint, &msg); err != nil {
		return nil, fmt.Errorf("failed to fetch message %s: %w", id, err)
	}
	return &msg, nil
}

// FetchInbox lists the newest inbox messages and flattens each one into a
// models.Message. A message that fails to fetch is logged and omitted from
// the result rather than failing the whole batch.
func (c *Client) FetchInbox(ctx context.Context, maxResults int) ([]models.Message, error) {
	ids, err := c.ListMessageIDs(ctx, maxResults, InboxQuery)
	if err != nil {
		return nil, err
	}

	messages := make([]models.Message, 0, len(ids))
	for _, id := range ids {
		raw, err := c.GetMessage(ctx, id)
		if err != nil {
			c.logger.WithError(err).WithField("message_id", id).Warn("Skipping message")
			continue
		}
		messages = append(messages, flatten(raw))
	}

	c.logger.WithField("count", len(messages)).Info("Fetched inbox messages")
	return messages, nil
}

// flatten maps the raw API message onto the classifier's message shape,
// applying the same header defaults the API surface has always exposed.
func flatten(raw *Message) models.Message {
	subject := "No Subject"
	from := "Unknown"
	date := ""

	if raw.Payload != nil {
		for _, h := range raw.Payload.Headers {
			switch h.Name {
			case "Subject":
				subject = h.Value
			case "From":
				from = h.Value
			case "Date":
				date = h.Value
			}
		}
	}

	body, isHTML := ExtractBody(raw.Payload)

	return models.Message{
		ID:      raw.ID,
		Subject: subject,
		From:    from,
		Date:    date,
		Snippet: raw.Snippet,
		Body:    body,
		IsHTML:  isHTML,
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gmail API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
