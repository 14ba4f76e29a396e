// Package classifier drives the per-message classification loop: it probes
// the model credential once, classifies messages strictly in order with a
// pacing delay between calls, normalizes every model answer and falls back
// to keyword rules whenever a call fails. Every input message always comes
// back with exactly one of the six canonical categories.
package classifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"mailsift/models"
)

// ErrNoMessages is returned when Classify is called with an empty batch.
var ErrNoMessages = errors.New("no messages to classify")

const (
	maxAnswerTokens   = 20
	answerTemperature = 0.2
)

// ModelClient is the model-provider collaborator. ValidateKey is a cheap
// capability probe; Complete returns the raw single-word answer.
type ModelClient interface {
	ValidateKey(ctx context.Context) error
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
}

type Classifier struct {
	model  ModelClient
	pacer  Pacer
	logger *logrus.Entry
}

type Option func(*Classifier)

func WithPacer(p Pacer) Option {
	return func(c *Classifier) {
		c.pacer = p
	}
}

func WithLogger(logger *logrus.Entry) Option {
	return func(c *Classifier) {
		c.logger = logger
	}
}

func New(model ModelClient, opts ...Option) *Classifier {
	c := &Classifier{
		model:  model,
		pacer:  FixedDelayPacer{Delay: DefaultPacing},
		logger: logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify labels every message in order. The model credential is validated
// once up front; a rejected credential aborts the batch before any
// per-message work or pacing delay. After that point no per-message failure
// is ever surfaced: a failed or unparsable model call is logged and replaced
// by the keyword fallback. The context is honored between iterations only.
func (c *Classifier) Classify(ctx context.Context, messages []models.Message) (*models.BatchResult, error) {
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}

	if err := c.model.ValidateKey(ctx); err != nil {
		return nil, fmt.Errorf("model credential check failed: %w", err)
	}

	items := make([]models.Classification, 0, len(messages))
	byCategory := make(map[models.Category]int)

	for i, msg := range messages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		category, err := c.classifyOne(ctx, msg)
		if err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"message_id": msg.ID,
				"subject":    msg.Subject,
			}).Warn("Model call failed, using fallback classification")
			sentry.CaptureException(err)
			category = Fallback(msg)
		}

		items = append(items, models.Classification{Message: msg, Category: category})
		byCategory[category]++

		c.logger.WithFields(logrus.Fields{
			"message_id": msg.ID,
			"category":   category,
			"progress":   fmt.Sprintf("%d/%d", i+1, len(messages)),
		}).Debug("Classified message")

		// Pace requests, except after the last message
		if i < len(messages)-1 {
			c.pacer.Pause()
		}
	}

	return &models.BatchResult{
		Items: items,
		Stats: models.ClassificationStats{
			Total:      len(items),
			ByCategory: byCategory,
		},
	}, nil
}

func (c *Classifier) classifyOne(ctx context.Context, msg models.Message) (models.Category, error) {
	answer, err := c.model.Complete(ctx, systemPrompt, buildUserPrompt(msg), maxAnswerTokens, answerTemperature)
	if err != nil {
		return "", err
	}

	// Raw model text is never stored; normalization is mandatory even on a
	// successful call.
	return models.NormalizeCategory(answer), nil
}
