package gmail

import (
	"encoding/base64"
)

// Header is a single message header as returned by the Gmail API.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PartBody carries the base64url-encoded payload of a message part.
type PartBody struct {
	Data string `json:"data,omitempty"`
	Size int    `json:"size,omitempty"`
}

// Part is one node of the recursive MIME part tree. Leaf parts carry the
// payload, multipart nodes carry children; either may be absent.
type Part struct {
	MimeType string    `json:"mimeType"`
	Headers  []Header  `json:"headers,omitempty"`
	Body     *PartBody `json:"body,omitempty"`
	Parts    []*Part   `json:"parts,omitempty"`
}

// Message is the raw Gmail API message shape (format=full).
type Message struct {
	ID      string `json:"id"`
	Snippet string `json:"snippet"`
	Payload *Part  `json:"payload"`
}

// ExtractBody walks the part tree depth-first and collects the plain-text
// and HTML payloads. Traversal never stops at the first match: when a tree
// carries several parts of the same type, the one visited last wins. The
// HTML body is preferred whenever it is non-empty.
//
// Missing payloads, missing children and trees with no text parts at all
// yield an empty body, not an error.
func ExtractBody(root *Part) (body string, isHTML bool) {
	var plain, html string

	var walk func(p *Part)
	walk = func(p *Part) {
		if p == nil {
			return
		}
		if p.Body != nil && p.Body.Data != "" {
			switch p.MimeType {
			case "text/plain":
				if decoded, err := decodeBase64URL(p.Body.Data); err == nil {
					plain = decoded
				}
			case "text/html":
				if decoded, err := decodeBase64URL(p.Body.Data); err == nil {
					html = decoded
				}
			}
		}
		for _, child := range p.Parts {
			walk(child)
		}
	}
	walk(root)

	if html != "" {
		return html, true
	}
	return plain, false
}

// decodeBase64URL decodes Gmail body data, which is URL-safe base64 and may
// arrive with or without padding.
func decodeBase64URL(data string) (string, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.URLEncoding.DecodeString(data)
		if err != nil {
			return "", err
		}
	}
	return string(decoded), nil
}
