package model

import "time"

// swagger:model Lesson
type Lesson struct {
	UUIDBase
	ChapterID   string     `gorm:"index;type:varchar(36);not null" json:"chapterId"`
	Title       string     `gorm:"type:text;not null" json:"title"`
	Slug        string     `gorm:"size:191;not null;uniqueIndex" json:"slug"`
	Label       string     `gorm:"type:text" json:"label"`
	Type        string     `gorm:"size:20;not null" json:"type"`
	AuthorName  string     `gorm:"type:text" json:"authorName"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Position    int        `gorm:"not null" json:"position"`
	Status      Status     `gorm:"size:20;not null;default:'Draft'" json:"status"`
	// Object key of the lesson markdown body in blob storage.
	MdxPath string `gorm:"type:text" json:"mdxPath"`
}

func (Lesson) TableName() string {
	return "lessons"
}
