// Package views renders the HTML pages of the site.
package views

import (
	"fmt"
	"io"

	"yatube/internal/forms"
	"yatube/internal/models"
	"yatube/internal/pagination"

	"maragu.dev/gomponents"
)

// Page names a page layout.
type Page string

const (
	TemplateIndex      Page = "posts/index.html"
	TemplateGroupList  Page = "posts/group_list.html"
	TemplateProfile    Page = "posts/profile.html"
	TemplatePostDetail Page = "posts/post_detail.html"
	TemplateCreatePost Page = "posts/create_post.html"
	TemplateLogin      Page = "users/login.html"
	TemplateNotFound   Page = "core/404.html"
	TemplateError      Page = "core/500.html"
)

// PageData is the render context shared by every template. Each page reads only
// the fields it needs.
type PageData struct {
	Viewer *models.User

	Page   *pagination.Of[models.Post]
	Group  *models.Group
	Author *models.User
	Post   *models.Post
	// Count is the number of posts written by Author.
	Count int64

	Form   *forms.PostForm
	Groups []models.Group
	IsEdit bool

	Next       string
	LoginError string
	Username   string

	CSRFToken string
	Path      string
}

// Renderer writes a template to w.
type Renderer interface {
	Render(w io.Writer, tmpl Page, data *PageData) error
}

// HTMLRenderer renders pages with gomponents.
type HTMLRenderer struct{}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

func (r *HTMLRenderer) Render(w io.Writer, tmpl Page, data *PageData) error {
	if data == nil {
		data = &PageData{}
	}
	var node gomponents.Node
	switch tmpl {
	case TemplateIndex:
		node = indexPage(data)
	case TemplateGroupList:
		node = groupPage(data)
	case TemplateProfile:
		node = profilePage(data)
	case TemplatePostDetail:
		node = postDetailPage(data)
	case TemplateCreatePost:
		node = postFormPage(data)
	case TemplateLogin:
		node = loginPage(data)
	case TemplateNotFound:
		node = notFoundPage(data)
	case TemplateError:
		node = errorPage(data)
	default:
		return fmt.Errorf("unknown template %q", tmpl)
	}
	return node.Render(w)
}
