package server

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ishan11032005GitHub/career-navigator-backend/auth"
	"github.com/Ishan11032005GitHub/career-navigator-backend/store"
)

const minPasswordLen = 6

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Server) signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	if email == "" || !strings.Contains(email, "@") {
		return fiber.NewError(fiber.StatusBadRequest, "A valid email is required")
	}
	if username == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Username and password are required")
	}
	if len(req.Password) < minPasswordLen {
		return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}
	if err := s.store.CreateUser(email, username, hash); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Could be email or username; don't leak which one.
			return fiber.NewError(fiber.StatusConflict, "Email or username already exists")
		}
		return err
	}
	return c.JSON(fiber.Map{"msg": "Signup successful"})
}

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Password is required")
	}

	user, err := s.store.UserByEmail(normalizeEmail(req.Email))
	if err != nil || !auth.CheckPassword(req.Password, user.Password) {
		// Don't leak which part is wrong.
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := s.auth.CreateToken(user.Username)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"token": token, "username": user.Username})
}

func (s *Server) forgot(c *fiber.Ctx) error {
	var req forgotRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	// Always respond 200; only send mail when the account exists.
	if user, err := s.store.UserByEmail(normalizeEmail(req.Email)); err == nil {
		token, err := s.auth.CreateResetToken(user.Email)
		if err != nil {
			return err
		}
		s.mailer.SendResetToken(user.Email, user.Username, token)
	}
	return c.JSON(fiber.Map{"msg": "If the email exists, a reset link has been sent."})
}

func (s *Server) reset(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	email, err := s.auth.VerifyResetToken(req.Token)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid or expired token")
	}
	if len(req.NewPassword) < minPasswordLen {
		return fiber.NewError(fiber.StatusBadRequest, "Password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.store.UpdatePassword(normalizeEmail(email), hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"msg": "Password updated successfully"})
}

// requireAuth validates the bearer token and loads the account into the
// request locals under "user".
func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing bearer token")
	}
	username, err := s.auth.VerifyToken(token)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}
	user, err := s.store.UserByUsername(username)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}
	c.Locals("user", user)
	return c.Next()
}

func currentUser(c *fiber.Ctx) store.User {
	user, _ := c.Locals("user").(store.User)
	return user
}
