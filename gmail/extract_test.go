package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func encode(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestExtractBodyPlainOnly(t *testing.T) {
	root := &Part{
		MimeType: "text/plain",
		Body:     &PartBody{Data: encode("hello world")},
	}

	body, isHTML := ExtractBody(root)
	assert.Equal(t, "hello world", body)
	assert.False(t, isHTML)
}

func TestExtractBodyPrefersHTML(t *testing.T) {
	root := &Part{
		MimeType: "multipart/alternative",
		Parts: []*Part{
			{MimeType: "text/plain", Body: &PartBody{Data: encode("plain version")}},
			{MimeType: "text/html", Body: &PartBody{Data: encode("<p>html version</p>")}},
		},
	}

	body, isHTML := ExtractBody(root)
	assert.Equal(t, "<p>html version</p>", body)
	assert.True(t, isHTML)
}

func TestExtractBodyNestedParts(t *testing.T) {
	root := &Part{
		MimeType: "multipart/mixed",
		Parts: []*Part{
			{
				MimeType: "multipart/alternative",
				Parts: []*Part{
					{MimeType: "text/plain", Body: &PartBody{Data: encode("deep plain")}},
				},
			},
			{MimeType: "application/pdf", Body: &PartBody{Data: encode("%PDF")}},
		},
	}

	body, isHTML := ExtractBody(root)
	assert.Equal(t, "deep plain", body)
	assert.False(t, isHTML)
}

func TestExtractBodyLastPartWins(t *testing.T) {
	root := &Part{
		MimeType: "multipart/mixed",
		Parts: []*Part{
			{MimeType: "text/plain", Body: &PartBody{Data: encode("first")}},
			{MimeType: "text/plain", Body: &PartBody{Data: encode("second")}},
		},
	}

	body, _ := ExtractBody(root)
	assert.Equal(t, "second", body)
}

func TestExtractBodyMissingPayload(t *testing.T) {
	body, isHTML := ExtractBody(nil)
	assert.Empty(t, body)
	assert.False(t, isHTML)

	// Multipart node with no children and no data
	body, isHTML = ExtractBody(&Part{MimeType: "multipart/mixed"})
	assert.Empty(t, body)
	assert.False(t, isHTML)
}

func TestExtractBodyPaddedEncoding(t *testing.T) {
	padded := base64.URLEncoding.EncodeToString([]byte("padded body"))
	root := &Part{
		MimeType: "text/plain",
		Body:     &PartBody{Data: padded},
	}

	body, _ := ExtractBody(root)
	assert.Equal(t, "padded body", body)
}

func TestExtractBodySkipsUndecodableParts(t *testing.T) {
	root := &Part{
		MimeType: "multipart/mixed",
		Parts: []*Part{
			{MimeType: "text/plain", Body: &PartBody{Data: "!!! not base64 !!!"}},
			{MimeType: "text/plain", Body: &PartBody{Data: encode("good part")}},
		},
	}

	body, _ := ExtractBody(root)
	assert.Equal(t, "good part", body)
}

func TestFlattenHeaderDefaults(t *testing.T) {
	msg := flatten(&Message{ID: "m1", Snippet: "preview"})
	assert.Equal(t, "m1", msg.ID)
	assert.Equal(t, "No Subject", msg.Subject)
	assert.Equal(t, "Unknown", msg.From)
	assert.Empty(t, msg.Date)
	assert.Empty(t, msg.Body)
}

func TestFlattenHeaders(t *testing.T) {
	msg := flatten(&Message{
		ID:      "m2",
		Snippet: "hi",
		Payload: &Part{
			MimeType: "text/html",
			Headers: []Header{
				{Name: "Subject", Value: "Weekly digest"},
				{Name: "From", Value: "digest@example.com"},
				{Name: "Date", Value: "Mon, 10 Aug 2026 10:00:00 +0000"},
			},
			Body: &PartBody{Data: encode("<b>digest</b>")},
		},
	})

	assert.Equal(t, "Weekly digest", msg.Subject)
	assert.Equal(t, "digest@example.com", msg.From)
	assert.Equal(t, "Mon, 10 Aug 2026 10:00:00 +0000", msg.Date)
	assert.Equal(t, "<b>digest</b>", msg.Body)
	assert.True(t, msg.IsHTML)
}
