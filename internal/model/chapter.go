package model

// swagger:model Chapter
type Chapter struct {
	UUIDBase
	CourseID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_chapter_course_slug" json:"courseId"`
	Title    string `gorm:"type:text;not null" json:"title"`
	Slug     string `gorm:"size:191;not null;uniqueIndex:idx_chapter_course_slug" json:"slug"`
	Position int    `gorm:"not null" json:"position"`
	Status   Status `gorm:"size:20;not null;default:'Draft'" json:"status"`

	Lessons []Lesson `gorm:"foreignKey:ChapterID" json:"lessons,omitempty"`
}

func (Chapter) TableName() string {
	return "chapters"
}
