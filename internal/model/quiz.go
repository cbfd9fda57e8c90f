package model

import "time"

// Quiz is attached either to a whole course (ChapterID nil) or to a single
// chapter. At most one quiz may occupy each slot.
// swagger:model Quiz
type Quiz struct {
	UUIDBase
	CourseID            string     `gorm:"index;type:varchar(36);not null" json:"courseId"`
	ChapterID           *string    `gorm:"index;type:varchar(36)" json:"chapterId"`
	Title               string     `gorm:"size:255;not null" json:"title"`
	Description         string     `gorm:"type:text" json:"description"`
	Status              Status     `gorm:"size:20;not null;default:'Draft'" json:"status"`
	PassingScorePercent int        `gorm:"not null;default:70" json:"passingScorePercent"`
	PublishedAt         *time.Time `json:"publishedAt,omitempty"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// IsChapterQuiz reports whether the quiz is scoped to a chapter rather than
// the whole course.
func (q *Quiz) IsChapterQuiz() bool {
	return q.ChapterID != nil
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	UUIDBase
	QuizID   string  `gorm:"index;type:varchar(36);not null" json:"quizId"`
	Position int     `gorm:"not null" json:"position"`
	Prompt   string  `gorm:"type:text;not null" json:"prompt"`
	Points   int     `gorm:"not null;default:1" json:"points"`
	ImageURL *string `gorm:"type:text" json:"imageUrl,omitempty"`

	Options []QuizOption `gorm:"foreignKey:QuestionID" json:"options"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// swagger:model QuizOption
type QuizOption struct {
	UUIDBase
	QuestionID string  `gorm:"index;type:varchar(36);not null" json:"questionId"`
	Position   int     `gorm:"not null" json:"position"`
	Content    string  `gorm:"type:text;not null" json:"content"`
	IsCorrect  bool    `gorm:"not null;default:false" json:"isCorrect"`
	ImageURL   *string `gorm:"type:text" json:"imageUrl,omitempty"`
}

func (QuizOption) TableName() string {
	return "quiz_options"
}
