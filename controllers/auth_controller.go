package controller

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"mailsift/config"
	"mailsift/models"
	"mailsift/session"
	"mailsift/utils"
)

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

var googleOAuthConfig *oauth2.Config

// InitGoogleOAuth builds the shared OAuth config. Called from route setup,
// after configuration has been loaded.
func InitGoogleOAuth() {
	googleOAuthConfig = &oauth2.Config{
		ClientID:     config.AppConfig.Google.ClientID,
		ClientSecret: config.AppConfig.Google.ClientSecret,
		RedirectURL:  config.AppConfig.Google.RedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/gmail.readonly",
			"https://www.googleapis.com/auth/userinfo.profile",
			"https://www.googleapis.com/auth/userinfo.email",
		},
		Endpoint: google.Endpoint,
	}
}

type AuthController struct {
	store  session.Store
	logger *logrus.Entry
}

func NewAuthController(store session.Store, logger *logrus.Entry) *AuthController {
	return &AuthController{
		store:  store,
		logger: logger,
	}
}

type LogoutRequest struct {
	SessionID string `json:"session_id"`
}

// GoogleOAuth redirects the browser to Google's consent screen with a
// signed state token for CSRF protection.
func (ac *AuthController) GoogleOAuth(c *fiber.Ctx) error {
	state, err := utils.GenerateStateToken(config.AppConfig.StateSecret)
	if err != nil {
		ac.logger.WithError(err).Error("Failed to generate state token")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to start sign-in")
	}

	// Short-lived HTTP-only cookie; verified again on callback
	c.Cookie(&fiber.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Expires:  time.Now().Add(utils.StateTokenExpiry),
		HTTPOnly: true,
		Secure:   config.AppConfig.Environment == "production",
		SameSite: "Lax",
	})

	url := googleOAuthConfig.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}

// GoogleOAuthCallback exchanges the authorization code, fetches the Google
// profile and creates the session. Failures send the browser back to the
// frontend with an error code instead of a JSON body.
func (ac *AuthController) GoogleOAuthCallback(c *fiber.Ctx) error {
	frontend := config.AppConfig.FrontendURL

	code := c.Query("code")
	if code == "" {
		return c.Redirect(frontend+"?error=no_code", fiber.StatusTemporaryRedirect)
	}

	state := c.Query("state")
	if state == "" || state != c.Cookies("oauth_state") {
		return c.Redirect(frontend+"?error=invalid_state", fiber.StatusTemporaryRedirect)
	}
	if err := utils.VerifyStateToken(config.AppConfig.StateSecret, state); err != nil {
		ac.logger.WithError(err).Warn("Rejected OAuth state token")
		return c.Redirect(frontend+"?error=invalid_state", fiber.StatusTemporaryRedirect)
	}
	c.ClearCookie("oauth_state")

	token, err := googleOAuthConfig.Exchange(c.UserContext(), code)
	if err != nil {
		ac.logger.WithError(err).Error("Failed to exchange authorization code")
		return c.Redirect(frontend+"?error=auth_failed", fiber.StatusTemporaryRedirect)
	}

	user, err := ac.fetchUserInfo(c, token)
	if err != nil {
		ac.logger.WithError(err).Error("Failed to fetch user info")
		return c.Redirect(frontend+"?error=auth_failed", fiber.StatusTemporaryRedirect)
	}

	sessionID, err := ac.store.Create(c.UserContext(), token, user)
	if err != nil {
		ac.logger.WithError(err).Error("Failed to create session")
		return c.Redirect(frontend+"?error=auth_failed", fiber.StatusTemporaryRedirect)
	}

	ac.logger.WithField("email", user.Email).Info("✅ User signed in")
	return c.Redirect(frontend+"/dashboard?session="+sessionID, fiber.StatusTemporaryRedirect)
}

func (ac *AuthController) fetchUserInfo(c *fiber.Ctx, token *oauth2.Token) (models.UserInfo, error) {
	var user models.UserInfo

	client := googleOAuthConfig.Client(c.UserContext(), token)
	resp, err := client.Get(userinfoEndpoint)
	if err != nil {
		return user, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		return user, errors.New("userinfo request failed")
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return user, err
	}
	if user.Email == "" {
		return user, errors.New("Google account has no email")
	}
	return user, nil
}

// GetSession reports whether a session id is still valid, along with the
// identity it belongs to. An unknown id is not an error for this endpoint.
func (ac *AuthController) GetSession(c *fiber.Ctx) error {
	sess, err := ac.store.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return c.JSON(fiber.Map{
				"success": true,
				"valid":   false,
			})
		}
		ac.logger.WithError(err).Error("Failed to look up session")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to look up session")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"valid":   true,
		"user":    sess.User,
	})
}

// Logout destroys a session. Deleting an unknown or missing id succeeds.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	var req LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.SessionID != "" {
		if err := ac.store.Delete(c.UserContext(), req.SessionID); err != nil {
			ac.logger.WithError(err).Error("Failed to delete session")
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete session")
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
