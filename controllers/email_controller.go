package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"mailsift/config"
	"mailsift/gmail"
	"mailsift/session"
	"mailsift/utils"
)

type EmailController struct {
	store  session.Store
	logger *logrus.Entry
}

func NewEmailController(store session.Store, logger *logrus.Entry) *EmailController {
	return &EmailController{
		store:  store,
		logger: logger,
	}
}

type FetchEmailsRequest struct {
	SessionID  string `json:"session_id" validate:"required"`
	MaxResults int    `json:"max_results" validate:"min=0,max=500"`
}

// FetchEmails pulls the newest inbox messages for the session's account,
// with headers flattened and bodies already decoded.
func (ec *EmailController) FetchEmails(c *fiber.Ctx) error {
	var req FetchEmailsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	if req.MaxResults <= 0 {
		req.MaxResults = config.AppConfig.MaxFetchResults
	}

	sess, err := ec.store.Get(c.UserContext(), req.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid session")
		}
		ec.logger.WithError(err).Error("Failed to look up session")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to look up session")
	}

	client := gmail.NewClient(c.UserContext(), googleOAuthConfig, sess.Token, ec.logger)
	emails, err := client.FetchInbox(c.UserContext(), req.MaxResults)
	if err != nil {
		ec.logger.WithError(err).WithField("email", sess.User.Email).Error("Failed to fetch inbox")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch emails")
	}

	ec.logger.WithFields(logrus.Fields{
		"email": sess.User.Email,
		"count": len(emails),
	}).Info("Fetched inbox messages")

	return c.JSON(fiber.Map{
		"success": true,
		"emails":  emails,
	})
}
