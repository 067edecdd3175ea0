package server

import (
	"net/url"
	"strconv"

	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/views"

	"github.com/gofiber/fiber/v2"
)

// parseID reads a positive integer route parameter. Anything else is a 404,
// matching a route that would not have matched in the first place.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrNotFound
	}
	return uint(id), nil
}

// viewer resolves the signed-in user. A session pointing at a deleted user counts as anonymous.
func (s *Server) viewer(c *fiber.Ctx) (*models.User, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return nil, nil
	}
	user, err := s.userService.Current(c.UserContext(), id)
	if models.IsNotFound(err) {
		return nil, nil
	}
	return user, err
}

func (s *Server) viewerOrNil(c *fiber.Ctx) *models.User {
	user, _ := s.viewer(c)
	return user
}

func (s *Server) render(c *fiber.Ctx, status int, tmpl views.Page, data *views.PageData) error {
	if token, ok := c.Locals(csrfLocal).(string); ok {
		data.CSRFToken = token
	}
	data.Path = c.Path()

	c.Type("html", "utf-8")
	c.Status(status)
	return s.renderer.Render(c.Response().BodyWriter(), tmpl, data)
}

func (s *Server) redirectToLogin(c *fiber.Ctx) error {
	return c.Redirect(middleware.LoginURL(loginPath, c.Path()), fiber.StatusFound)
}

func profilePath(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func postPath(id uint) string {
	return "/posts/" + strconv.FormatUint(uint64(id), 10) + "/"
}
