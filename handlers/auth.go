package handlers

import (
	"errors"
	"log/slog"

	"github.com/anle/todo-api/models"
	"github.com/anle/todo-api/store"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// RefreshCookieName is the HttpOnly cookie carrying the refresh token.
const RefreshCookieName = "refreshToken"

// Signup registers a new user. No tokens are issued here, the user signs in
// separately.
//
//	@Summary	Register a new user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		credentials	body		models.Credentials	true	"username and password"
//	@Success	201			{object}	map[string]string
//	@Failure	400			{object}	map[string]string
//	@Failure	409			{object}	map[string]string
//	@Router		/signup [post]
func (h *Handler) Signup(c *fiber.Ctx) error {
	var creds models.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing fields"})
	}
	if creds.Username == "" || creds.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing fields"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error("failed to hash password", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error creating user"})
	}

	if _, err := h.users.Create(c.Context(), creds.Username, string(hashed)); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "User already exists"})
		}
		h.log.Error("failed to create user", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error creating user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created"})
}

// Signin checks the credentials and issues the token pair. The refresh token
// is persisted on the user record, superseding any earlier session, and
// travels only in an HttpOnly cookie.
//
//	@Summary	Sign in with username and password
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		credentials	body		models.Credentials	true	"username and password"
//	@Success	200			{object}	map[string]string
//	@Failure	400			{object}	map[string]string
//	@Failure	401			{object}	map[string]string
//	@Router		/signin [post]
func (h *Handler) Signin(c *fiber.Ctx) error {
	var creds models.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing fields"})
	}
	if creds.Username == "" || creds.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing fields"})
	}

	// unknown user and wrong password must stay indistinguishable
	user, err := h.users.GetByUsername(c.Context(), creds.Username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.log.Error("failed to look up user", slog.Any("error", err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error signing in"})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
	}

	accessToken, err := h.tokens.IssueAccessToken(user.ID)
	if err != nil {
		h.log.Error("failed to issue access token", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error signing in"})
	}
	refreshToken, err := h.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		h.log.Error("failed to issue refresh token", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error signing in"})
	}

	if err := h.users.SetRefreshToken(c.Context(), user.ID, refreshToken); err != nil {
		h.log.Error("failed to persist refresh token", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error signing in"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    refreshToken,
		HTTPOnly: true,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"accessToken": accessToken})
}

// RefreshToken exchanges a valid refresh cookie for a new access token. The
// presented token must equal the stored one verbatim; a token superseded by
// a later sign-in is rejected.
//
//	@Summary	Issue a new access token from the refresh cookie
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	401	{object}	map[string]string
//	@Failure	403	{object}	map[string]string
//	@Router		/token [post]
func (h *Handler) RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies(RefreshCookieName)
	if refreshToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing refresh token"})
	}

	userID, err := h.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Invalid refresh token"})
	}

	user, err := h.users.GetByID(c.Context(), userID)
	if err != nil || user.RefreshToken != refreshToken {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Invalid refresh token"})
	}

	accessToken, err := h.tokens.IssueAccessToken(user.ID)
	if err != nil {
		h.log.Error("failed to issue access token", slog.Any("error", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error refreshing token"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"accessToken": accessToken})
}
