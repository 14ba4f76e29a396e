package models

// Message is a flattened inbox message as consumed by the classifier.
// Body holds the HTML payload when one was present, otherwise plain text;
// IsHTML records which one was chosen. Date is kept as the raw header value.
type Message struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	From    string `json:"from"`
	Date    string `json:"date"`
	Snippet string `json:"snippet"`
	Body    string `json:"body"`
	IsHTML  bool   `json:"isHtml"`
}

// Classification is a message together with its assigned category.
type Classification struct {
	Message
	Category Category `json:"category"`
}

// ClassificationStats aggregates a finished batch. ByCategory counts always
// sum to Total.
type ClassificationStats struct {
	Total      int              `json:"total"`
	ByCategory map[Category]int `json:"byCategory"`
}

// BatchResult is the outcome of classifying a batch of messages. Items
// preserves input order and has one entry per input message.
type BatchResult struct {
	Items []Classification    `json:"classifications"`
	Stats ClassificationStats `json:"stats"`
}
