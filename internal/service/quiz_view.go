package service

import (
	"course_hub_backend/internal/model"
	"time"
)

// Learner-facing projection of a quiz. These structs deliberately declare
// no correctness field anywhere, so the answer key cannot leak through
// serialization: omission is checked by the compiler, not by stripping
// fields at runtime. The full entity (model.Quiz) is the Author View and
// must never be written to a learner-facing response.

// swagger:model LearnerQuizOption
type LearnerQuizOption struct {
	ID         string  `json:"id"`
	QuestionID string  `json:"questionId"`
	Position   int     `json:"position"`
	Content    string  `json:"content"`
	ImageURL   *string `json:"imageUrl,omitempty"`
}

// swagger:model LearnerQuizQuestion
type LearnerQuizQuestion struct {
	ID       string              `json:"id"`
	QuizID   string              `json:"quizId"`
	Position int                 `json:"position"`
	Prompt   string              `json:"prompt"`
	Points   int                 `json:"points"`
	ImageURL *string             `json:"imageUrl,omitempty"`
	Options  []LearnerQuizOption `json:"options"`
}

// swagger:model LearnerQuizView
type LearnerQuizView struct {
	ID                  string                `json:"id"`
	CourseID            string                `json:"courseId"`
	ChapterID           *string               `json:"chapterId"`
	Title               string                `json:"title"`
	Description         string                `json:"description"`
	PassingScorePercent int                   `json:"passingScorePercent"`
	PublishedAt         *time.Time            `json:"publishedAt,omitempty"`
	Questions           []LearnerQuizQuestion `json:"questions"`
}

// NewLearnerQuizView projects a quiz entity field by field into its
// learner-safe shape.
func NewLearnerQuizView(quiz *model.Quiz) *LearnerQuizView {
	view := &LearnerQuizView{
		ID:                  quiz.ID,
		CourseID:            quiz.CourseID,
		ChapterID:           quiz.ChapterID,
		Title:               quiz.Title,
		Description:         quiz.Description,
		PassingScorePercent: quiz.PassingScorePercent,
		PublishedAt:         quiz.PublishedAt,
		Questions:           make([]LearnerQuizQuestion, 0, len(quiz.Questions)),
	}

	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		qv := LearnerQuizQuestion{
			ID:       q.ID,
			QuizID:   q.QuizID,
			Position: q.Position,
			Prompt:   q.Prompt,
			Points:   q.Points,
			ImageURL: q.ImageURL,
			Options:  make([]LearnerQuizOption, 0, len(q.Options)),
		}
		for j := range q.Options {
			o := &q.Options[j]
			qv.Options = append(qv.Options, LearnerQuizOption{
				ID:         o.ID,
				QuestionID: o.QuestionID,
				Position:   o.Position,
				Content:    o.Content,
				ImageURL:   o.ImageURL,
			})
		}
		view.Questions = append(view.Questions, qv)
	}

	return view
}

// NewLearnerQuizViews projects a slice of quizzes.
func NewLearnerQuizViews(quizzes []model.Quiz) []*LearnerQuizView {
	views := make([]*LearnerQuizView, 0, len(quizzes))
	for i := range quizzes {
		views = append(views, NewLearnerQuizView(&quizzes[i]))
	}
	return views
}
