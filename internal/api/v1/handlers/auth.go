package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskbase/internal/auth"
	"taskbase/internal/middleware"
	"taskbase/internal/models"
	"taskbase/internal/repository"
	"taskbase/pkg/crypto"
	"taskbase/pkg/logger"
)

func (h *Handler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		MaxAge:   int(auth.TokenTTL.Seconds()),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (h *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// Register creates an account, issues a session token and sets the session
// cookie so a fresh signup is immediately logged in.
func (h *Handler) Register(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Internal server error",
			"success": false,
			"status":  500,
		})
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        uuid.NewString(),
		Email:     strings.ToLower(req.Email),
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.users.CreateUser(c.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			logger.SecurityLogger.Warn("Duplicate email", zap.String("email", user.Email))
			return c.Status(409).JSON(fiber.Map{
				"message": "Email already registered",
				"success": false,
				"status":  409,
			})
		}
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating user",
			"success": false,
			"status":  500,
		})
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error generating token",
			"success": false,
			"status":  500,
		})
	}
	h.setSessionCookie(c, token)

	logger.AuditLogger.Info("User registered successfully", zap.String("userID", user.ID))
	return c.Status(201).JSON(fiber.Map{
		"message": "User created successfully",
		"success": true,
		"status":  201,
		"data": fiber.Map{
			"token": token,
			"user":  user,
		},
	})
}

// Login verifies the credentials and sets the session cookie. Unknown email
// and wrong password share one message, and the unknown-email path still
// burns a bcrypt comparison so the two cases take the same time.
func (h *Handler) Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	user, err := h.users.UserByEmail(c.Context(), strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			crypto.BurnCompare(req.Password)
			logger.SecurityLogger.Warn("Login for unknown email", zap.String("email", req.Email))
			return c.Status(400).JSON(fiber.Map{
				"message": "User not found or wrong password",
				"success": false,
				"status":  400,
			})
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Internal server error",
			"success": false,
			"status":  500,
		})
	}

	if !crypto.CheckPassword(user.Password, req.Password) {
		logger.SecurityLogger.Warn("Invalid password", zap.String("userID", user.ID))
		return c.Status(400).JSON(fiber.Map{
			"message": "User not found or wrong password",
			"success": false,
			"status":  400,
		})
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error generating token",
			"success": false,
			"status":  500,
		})
	}
	h.setSessionCookie(c, token)

	logger.AuditLogger.Info("Login success", zap.String("userID", user.ID))
	return c.JSON(fiber.Map{
		"message": "Login success",
		"success": true,
		"status":  200,
		"data": fiber.Map{
			"token": token,
			"email": user.Email,
			"id":    user.ID,
		},
	})
}

// Me reports the currently authenticated user, or null. A missing cookie,
// a bad or expired token and a deleted user are all the null case, never
// an error: this endpoint is a side-effect-free read.
func (h *Handler) Me(c *fiber.Ctx) error {
	nobody := func() error {
		return c.JSON(fiber.Map{
			"message": "No valid session",
			"success": true,
			"status":  200,
			"data":    fiber.Map{"user": nil},
		})
	}

	token := c.Cookies(auth.SessionCookie)
	if token == "" {
		return nobody()
	}
	userID, err := h.issuer.Verify(token)
	if err != nil {
		return nobody()
	}
	user, err := h.users.UserByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nobody()
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Internal server error",
			"success": false,
			"status":  500,
		})
	}

	return c.JSON(fiber.Map{
		"message": "Valid session",
		"success": true,
		"status":  200,
		"data":    fiber.Map{"user": user},
	})
}

// Logout clears the session cookie. The token itself stays valid until its
// exp claim; there is no server-side revocation list.
func (h *Handler) Logout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)

	logger.AuditLogger.Info("Logout", zap.Any("userID", c.Locals(middleware.UserIDKey)))
	return c.JSON(fiber.Map{
		"message": "Logged out",
		"success": true,
		"status":  200,
	})
}
