package server

import (
	"net/url"

	"yatube/internal/forms"
	"yatube/internal/models"
	"yatube/internal/views"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET /
func (s *Server) Index(c *fiber.Ctx) error {
	viewer, err := s.viewer(c)
	if err != nil {
		return err
	}
	page, err := s.postService.ListPosts(c.UserContext(), c.Query("page"))
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, views.TemplateIndex, &views.PageData{Viewer: viewer, Page: &page})
}

// GroupPosts handles GET /group/:slug/
func (s *Server) GroupPosts(c *fiber.Ctx) error {
	viewer, err := s.viewer(c)
	if err != nil {
		return err
	}
	group, page, err := s.postService.GroupPosts(c.UserContext(), c.Params("slug"), c.Query("page"))
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, views.TemplateGroupList, &views.PageData{Viewer: viewer, Group: group, Page: &page})
}

// Profile handles GET /profile/:username/
func (s *Server) Profile(c *fiber.Ctx) error {
	viewer, err := s.viewer(c)
	if err != nil {
		return err
	}
	username, err := url.PathUnescape(c.Params("username"))
	if err != nil {
		return fiber.ErrNotFound
	}
	author, page, err := s.postService.AuthorPosts(c.UserContext(), username, c.Query("page"))
	if err != nil {
		return err
	}
	return s.render(c, fiber.StatusOK, views.TemplateProfile, &views.PageData{
		Viewer: viewer,
		Author: author,
		Page:   &page,
		Count:  page.Count,
	})
}

// PostDetail handles GET /posts/:post_id/
func (s *Server) PostDetail(c *fiber.Ctx) error {
	id, err := parseID(c, "post_id")
	if err != nil {
		return err
	}
	viewer, err := s.viewer(c)
	if err != nil {
		return err
	}
	post, count, err := s.postService.PostDetail(c.UserContext(), id)
	if err != nil {
		return err
	}
	author := post.Author
	return s.render(c, fiber.StatusOK, views.TemplatePostDetail, &views.PageData{
		Viewer: viewer,
		Post:   post,
		Author: &author,
		Count:  count,
	})
}

// PostCreate handles GET and POST /create/
func (s *Server) PostCreate(c *fiber.Ctx) error {
	viewer, err := s.viewer(c)
	if err != nil {
		return err
	}
	if viewer == nil {
		return s.redirectToLogin(c)
	}

	form := forms.NewPostForm()
	if c.Method() == fiber.MethodPost {
		form = bindPostForm(c)
		_, err := s.postService.CreatePost(c.UserContext(), viewer, form)
		if err == nil {
			return c.Redirect(profilePath(viewer.Username), fiber.StatusFound)
		}
		if !models.HasCode(err, models.CodeValidation) {
			return err
		}
	}
	return s.renderPostForm(c, &views.PageData{Viewer: viewer, Form: form})
}

// PostEdit handles GET and POST /posts/:post_id/edit/
// Only the author may edit; anyone else is sent to the post page.
func (s *Server) PostEdit(c *fiber.Ctx) error {
	id, err := parseID(c, "post_id")
	if err != nil {
		return err
	}
	viewer, err := s.viewer(c)
	if err != nil {
		return err
	}
	if viewer == nil {
		return s.redirectToLogin(c)
	}

	post, err := s.postService.EditablePost(c.UserContext(), viewer, id)
	if models.HasCode(err, models.CodeUnauthorized) {
		return c.Redirect(postPath(id), fiber.StatusFound)
	}
	if err != nil {
		return err
	}

	form := forms.FromPost(post)
	if c.Method() == fiber.MethodPost {
		form = bindPostForm(c)
		_, err := s.postService.UpdatePost(c.UserContext(), viewer, id, form)
		switch {
		case err == nil:
			return c.Redirect(postPath(id), fiber.StatusFound)
		case models.HasCode(err, models.CodeUnauthorized):
			return c.Redirect(postPath(id), fiber.StatusFound)
		case !models.HasCode(err, models.CodeValidation):
			return err
		}
	}
	return s.renderPostForm(c, &views.PageData{Viewer: viewer, Form: form, Post: post, IsEdit: true})
}

func (s *Server) renderPostForm(c *fiber.Ctx, data *views.PageData) error {
	groups, err := s.postService.Groups(c.UserContext())
	if err != nil {
		return err
	}
	data.Groups = groups
	return s.render(c, fiber.StatusOK, views.TemplateCreatePost, data)
}

func bindPostForm(c *fiber.Ctx) *forms.PostForm {
	return forms.Bind(func(key string) string { return c.FormValue(key) })
}
