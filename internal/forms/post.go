// Package forms binds and validates submitted HTML form values.
package forms

import (
	"context"
	"strconv"
	"strings"

	"yatube/internal/models"
)

// Field names as submitted by the post form.
const (
	FieldText  = "text"
	FieldGroup = "group"
)

// Labels and help texts shown next to the post form fields.
const (
	TextLabel  = "Текст поста"
	TextHelp   = "Введите текст поста"
	GroupLabel = "Группы"
	GroupHelp  = "Группа, к которой будет относиться пост"
)

const (
	MsgRequired      = "Обязательное поле."
	MsgInvalidChoice = "Выберите корректный вариант. Вашего варианта нет среди допустимых значений."
)

// GroupLookup resolves a submitted group reference.
type GroupLookup interface {
	GetByID(ctx context.Context, id uint) (*models.Group, error)
}

// PostForm carries the text and group of a post through validation.
// Submitted values are kept verbatim so an invalid form re-renders as typed.
type PostForm struct {
	Text  string
	Group string

	Errors map[string][]string

	group *models.Group
	bound bool
}

// NewPostForm returns an empty, unbound form.
func NewPostForm() *PostForm {
	return &PostForm{Errors: map[string][]string{}}
}

// FromPost returns an unbound form populated from an existing post.
func FromPost(p *models.Post) *PostForm {
	f := NewPostForm()
	f.Text = p.Text
	if p.GroupID != nil {
		f.Group = strconv.FormatUint(uint64(*p.GroupID), 10)
	}
	return f
}

// Bind returns a form filled from submitted values; value is typically fiber's Ctx.FormValue.
func Bind(value func(key string) string) *PostForm {
	f := NewPostForm()
	f.Text = value(FieldText)
	f.Group = value(FieldGroup)
	f.bound = true
	return f
}

// IsBound reports whether the form holds submitted data.
func (f *PostForm) IsBound() bool {
	return f.bound
}

// Validate checks every field, collecting errors per field. It resolves the
// group through groups and never touches the store otherwise.
func (f *PostForm) Validate(ctx context.Context, groups GroupLookup) (bool, error) {
	f.Errors = map[string][]string{}
	f.group = nil

	if strings.TrimSpace(f.Text) == "" {
		f.addError(FieldText, MsgRequired)
	}

	if raw := strings.TrimSpace(f.Group); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			f.addError(FieldGroup, MsgInvalidChoice)
		} else {
			g, err := groups.GetByID(ctx, uint(id))
			switch {
			case models.IsNotFound(err):
				f.addError(FieldGroup, MsgInvalidChoice)
			case err != nil:
				return false, err
			default:
				f.group = g
			}
		}
	}

	return f.Valid(), nil
}

func (f *PostForm) addError(field, msg string) {
	f.Errors[field] = append(f.Errors[field], msg)
}

// Valid reports whether the last Validate found no errors.
func (f *PostForm) Valid() bool {
	return len(f.Errors) == 0
}

// FieldErrors returns the messages recorded for field.
func (f *PostForm) FieldErrors(field string) []string {
	return f.Errors[field]
}

// SelectedGroup reports whether id is the currently chosen group.
func (f *PostForm) SelectedGroup(id uint) bool {
	return strings.TrimSpace(f.Group) == strconv.FormatUint(uint64(id), 10)
}

// Apply copies the validated text and group onto p. The author is left to the caller.
func (f *PostForm) Apply(p *models.Post) {
	p.Text = strings.TrimSpace(f.Text)
	if f.group != nil {
		id := f.group.ID
		p.GroupID = &id
		p.Group = f.group
	} else {
		p.GroupID = nil
		p.Group = nil
	}
}
