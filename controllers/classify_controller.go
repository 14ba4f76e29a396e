package controller

import (
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mailsift/classifier"
	"mailsift/config"
	"mailsift/models"
	"mailsift/openai"
	"mailsift/utils"
)

type ClassifyController struct {
	logger *logrus.Entry

	// newModelClient builds the model client for one batch. Overridable in
	// tests so no request leaves the process.
	newModelClient func(apiKey string) classifier.ModelClient
}

func NewClassifyController(logger *logrus.Entry) *ClassifyController {
	return &ClassifyController{
		logger: logger,
		newModelClient: func(apiKey string) classifier.ModelClient {
			opts := []openai.Option{}
			if config.AppConfig.OpenAIBaseURL != "" {
				opts = append(opts, openai.WithBaseURL(config.AppConfig.OpenAIBaseURL))
			}
			return openai.NewClient(apiKey, config.AppConfig.OpenAIModel, opts...)
		},
	}
}

type ClassifyRequest struct {
	Emails       []models.Message `json:"emails" validate:"required,min=1"`
	OpenAIAPIKey string           `json:"openaiApiKey" validate:"required"`
	// Accepted for frontend compatibility; the category set is fixed.
	CategoryDefinitions map[string]string `json:"categoryDefinitions"`
}

// ClassifyEmails labels a batch of messages. The API key is validated before
// any per-message work, and every message in the request comes back with a
// category even when individual model calls fail.
func (cc *ClassifyController) ClassifyEmails(c *fiber.Ctx) error {
	var req ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	batchID := uuid.NewString()
	logger := cc.logger.WithFields(logrus.Fields{
		"batch_id": batchID,
		"count":    len(req.Emails),
	})
	logger.Info("Starting classification batch")

	cl := classifier.New(cc.newModelClient(req.OpenAIAPIKey),
		classifier.WithPacer(classifier.FixedDelayPacer{Delay: config.AppConfig.ClassifyPacing}),
		classifier.WithLogger(logger),
	)

	result, err := cl.Classify(c.UserContext(), req.Emails)
	if err != nil {
		var authErr *openai.AuthError
		if errors.As(err, &authErr) {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid OpenAI API key")
		}
		if errors.Is(err, classifier.ErrNoMessages) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "No emails to classify")
		}
		logger.WithError(err).Error("Classification batch failed")
		sentry.CaptureException(err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Classification failed")
	}

	logger.WithField("stats", result.Stats.ByCategory).Info("✅ Classification batch complete")

	return c.JSON(fiber.Map{
		"success":         true,
		"classifications": result.Items,
		"stats":           result.Stats,
	})
}
