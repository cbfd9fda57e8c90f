package model

// swagger:model Course
type Course struct {
	UUIDBase
	Title            string `gorm:"type:text;not null" json:"title"`
	Slug             string `gorm:"size:191;not null;uniqueIndex" json:"slug"`
	Description      string `gorm:"type:text" json:"description"`
	SmallDescription string `gorm:"type:text" json:"smallDescription"`
	CoverImage       string `gorm:"type:text" json:"coverImage"`
	Status           Status `gorm:"size:20;not null;default:'Draft'" json:"status"`
	FileKey          string `gorm:"type:text" json:"fileKey"`

	Chapters []Chapter `gorm:"foreignKey:CourseID" json:"chapters,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
