package models

import "regexp"

// GroupTitleMaxLength bounds the length of a group's display name.
const GroupTitleMaxLength = 200

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Group is a named category a post may optionally belong to.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"size:50;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text;not null" json:"description"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "groups"
}

func (g Group) String() string {
	return g.Title
}

// Validate checks the fields required before a group is stored.
func (g Group) Validate() error {
	switch {
	case g.Title == "":
		return NewValidationError("Group title is required")
	case len([]rune(g.Title)) > GroupTitleMaxLength:
		return NewValidationError("Group title too long (max 200 characters)")
	case !slugPattern.MatchString(g.Slug):
		return NewValidationError("Group slug may only contain letters, numbers, underscores or hyphens")
	case g.Description == "":
		return NewValidationError("Group description is required")
	}
	return nil
}
