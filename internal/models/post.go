// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// postPreviewLength is how many runes of the text a post's String form shows.
const postPreviewLength = 15

// Post is an authored text record, optionally attached to a group.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"column:pub_date;not null;index;autoCreateTime" json:"pub_date"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	GroupID  *uint     `gorm:"index" json:"group_id,omitempty"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// String returns the first characters of the post text.
func (p Post) String() string {
	runes := []rune(p.Text)
	if len(runes) > postPreviewLength {
		return string(runes[:postPreviewLength])
	}
	return p.Text
}

// InGroup reports whether the post belongs to the group with the given ID.
func (p Post) InGroup(groupID uint) bool {
	return p.GroupID != nil && *p.GroupID == groupID
}
