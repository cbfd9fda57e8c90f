package model

import "time"

// QuizAttempt records one graded submission. Attempts are single-shot:
// StartedAt and SubmittedAt are both set at submission time.
// swagger:model QuizAttempt
type QuizAttempt struct {
	UUIDBase
	QuizID      string    `gorm:"index;type:varchar(36);not null" json:"quizId"`
	UserID      string    `gorm:"index;type:varchar(191);not null" json:"userId"`
	Score       int       `gorm:"not null" json:"score"`
	MaxScore    int       `gorm:"not null" json:"maxScore"`
	Percent     int       `gorm:"not null" json:"percent"`
	Passed      bool      `gorm:"not null" json:"passed"`
	StartedAt   time.Time `json:"startedAt"`
	SubmittedAt time.Time `json:"submittedAt"`

	Answers []QuizAttemptAnswer `gorm:"foreignKey:AttemptID" json:"answers"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// swagger:model QuizAttemptAnswer
type QuizAttemptAnswer struct {
	UUIDBase
	AttemptID        string `gorm:"index;type:varchar(36);not null" json:"attemptId"`
	QuestionID       string `gorm:"index;type:varchar(36);not null" json:"questionId"`
	SelectedOptionID string `gorm:"type:varchar(36);not null" json:"selectedOptionId"`
	IsCorrect        bool   `gorm:"not null" json:"isCorrect"`
	EarnedPoints     int    `gorm:"not null" json:"earnedPoints"`
}

func (QuizAttemptAnswer) TableName() string {
	return "quiz_attempt_answers"
}
