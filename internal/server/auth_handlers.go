package server

import (
	"log/slog"
	"strings"

	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/views"

	"github.com/gofiber/fiber/v2"
)

const loginFailedMessage = "Введите правильные имя пользователя и пароль."

// LoginForm handles GET /auth/login/
func (s *Server) LoginForm(c *fiber.Ctx) error {
	viewer, err := s.viewer(c)
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, views.TemplateLogin, &views.PageData{
		Viewer: viewer,
		Next:   middleware.SafeNext(c.Query("next"), ""),
	})
}

// Login handles POST /auth/login/
func (s *Server) Login(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	next := middleware.SafeNext(c.FormValue("next"), "")

	user, err := s.userService.Authenticate(c.UserContext(), username, c.FormValue("password"))
	if err != nil {
		if !models.HasCode(err, models.CodeUnauthorized) {
			return err
		}
		middleware.Logger.InfoContext(c.UserContext(), "login failed", slog.String("username", username))
		return s.render(c, fiber.StatusOK, views.TemplateLogin, &views.PageData{
			Next:       next,
			Username:   username,
			LoginError: loginFailedMessage,
		})
	}

	if err := s.sessions.Login(c, user.ID); err != nil {
		return err
	}
	middleware.Logger.InfoContext(c.UserContext(), "user logged in", slog.Uint64("user_id", uint64(user.ID)))
	return c.Redirect(middleware.SafeNext(next, "/"), fiber.StatusFound)
}

// Logout handles POST /auth/logout/
func (s *Server) Logout(c *fiber.Ctx) error {
	s.sessions.Logout(c)
	return c.Redirect("/", fiber.StatusFound)
}
