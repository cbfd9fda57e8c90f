package service

import (
	"testing"

	"course_hub_backend/internal/model"
	"course_hub_backend/internal/repository"
	"course_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeQuestionQuiz builds a graded fixture worth 4 points: q1 (1pt), q2
// (2pt) and q3 (1pt, no correct option).
func threeQuestionQuiz() *model.Quiz {
	return &model.Quiz{
		UUIDBase:            model.UUIDBase{ID: "quiz-1"},
		Status:              model.StatusPublished,
		PassingScorePercent: 70,
		Questions: []model.QuizQuestion{
			{
				UUIDBase: model.UUIDBase{ID: "q1"},
				Points:   1,
				Options: []model.QuizOption{
					{UUIDBase: model.UUIDBase{ID: "q1-a"}, IsCorrect: true},
					{UUIDBase: model.UUIDBase{ID: "q1-b"}, IsCorrect: false},
				},
			},
			{
				UUIDBase: model.UUIDBase{ID: "q2"},
				Points:   2,
				Options: []model.QuizOption{
					{UUIDBase: model.UUIDBase{ID: "q2-a"}, IsCorrect: false},
					{UUIDBase: model.UUIDBase{ID: "q2-b"}, IsCorrect: true},
				},
			},
			{
				UUIDBase: model.UUIDBase{ID: "q3"},
				Points:   1,
				Options: []model.QuizOption{
					{UUIDBase: model.UUIDBase{ID: "q3-a"}, IsCorrect: false},
					{UUIDBase: model.UUIDBase{ID: "q3-b"}, IsCorrect: false},
				},
			},
		},
	}
}

func TestGradePerfectScore(t *testing.T) {
	quiz := &model.Quiz{
		PassingScorePercent: 70,
		Questions: []model.QuizQuestion{
			{
				UUIDBase: model.UUIDBase{ID: "q1"},
				Points:   1,
				Options: []model.QuizOption{
					{UUIDBase: model.UUIDBase{ID: "q1-a"}, IsCorrect: true},
				},
			},
		},
	}

	graded, score, maxScore, percent, passed := Grade(quiz, []SubmittedAnswer{
		{QuestionID: "q1", SelectedOptionID: "q1-a"},
	})

	require.Len(t, graded, 1)
	assert.True(t, graded[0].IsCorrect)
	assert.Equal(t, 1, score)
	assert.Equal(t, 1, maxScore)
	assert.Equal(t, 100, percent)
	assert.True(t, passed)
}

func TestGradePercentIsFloored(t *testing.T) {
	quiz := threeQuestionQuiz()

	// 3 of 4 points: 300/4 = 75 exactly; answer q1 wrong for 2/4 = 50.
	_, score, maxScore, percent, passed := Grade(quiz, []SubmittedAnswer{
		{QuestionID: "q1", SelectedOptionID: "q1-a"},
		{QuestionID: "q2", SelectedOptionID: "q2-b"},
	})
	assert.Equal(t, 3, score)
	assert.Equal(t, 4, maxScore)
	assert.Equal(t, 75, percent)
	assert.True(t, passed)

	// 1 of 3 on three 1-point questions floors 33.33 down to 33.
	small := &model.Quiz{
		PassingScorePercent: 70,
		Questions: []model.QuizQuestion{
			{UUIDBase: model.UUIDBase{ID: "a"}, Points: 1, Options: []model.QuizOption{{UUIDBase: model.UUIDBase{ID: "a-1"}, IsCorrect: true}}},
			{UUIDBase: model.UUIDBase{ID: "b"}, Points: 1, Options: []model.QuizOption{{UUIDBase: model.UUIDBase{ID: "b-1"}, IsCorrect: true}}},
			{UUIDBase: model.UUIDBase{ID: "c"}, Points: 1, Options: []model.QuizOption{{UUIDBase: model.UUIDBase{ID: "c-1"}, IsCorrect: true}}},
		},
	}
	_, _, _, percent, passed = Grade(small, []SubmittedAnswer{
		{QuestionID: "a", SelectedOptionID: "a-1"},
	})
	assert.Equal(t, 33, percent)
	assert.False(t, passed)
}

func TestGradeDropsUnknownQuestionIDs(t *testing.T) {
	quiz := threeQuestionQuiz()

	graded, score, maxScore, _, _ := Grade(quiz, []SubmittedAnswer{
		{QuestionID: "q1", SelectedOptionID: "q1-a"},
		{QuestionID: "deleted-question", SelectedOptionID: "whatever"},
	})

	require.Len(t, graded, 1, "stale answers are dropped, not rejected")
	assert.Equal(t, "q1", graded[0].QuestionID)
	assert.Equal(t, 1, score)
	assert.Equal(t, 4, maxScore, "max score counts all quiz questions")
}

func TestGradeQuestionWithoutCorrectOption(t *testing.T) {
	quiz := threeQuestionQuiz()

	graded, score, _, _, _ := Grade(quiz, []SubmittedAnswer{
		{QuestionID: "q3", SelectedOptionID: "q3-a"},
	})

	require.Len(t, graded, 1)
	assert.False(t, graded[0].IsCorrect)
	assert.Equal(t, 0, score)
	assert.Equal(t, 0, graded[0].EarnedPoints)
}

func TestGradeEmptyQuiz(t *testing.T) {
	quiz := &model.Quiz{PassingScorePercent: 70}

	graded, score, maxScore, percent, passed := Grade(quiz, nil)

	assert.Empty(t, graded)
	assert.Equal(t, 0, score)
	assert.Equal(t, 0, maxScore)
	assert.Equal(t, 0, percent, "zero max score never divides")
	assert.False(t, passed)
}

func TestSubmitAttemptPersistsGradedResult(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewQuizRepository(db)
	grading := NewGradingService(repo)

	quiz := threeQuestionQuiz()
	quiz.ID = ""
	quiz.CourseID = "course-1"
	for i := range quiz.Questions {
		quiz.Questions[i].ID = ""
		for j := range quiz.Questions[i].Options {
			quiz.Questions[i].Options[j].ID = ""
		}
	}
	require.NoError(t, repo.Create(quiz))

	correctQ1 := quiz.Questions[0].Options[0]
	result, err := grading.SubmitAttempt(quiz.ID, "learner-1", AttemptSubmission{
		Answers: []SubmittedAnswer{
			{QuestionID: quiz.Questions[0].ID, SelectedOptionID: correctQ1.ID},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.AttemptID)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 4, result.MaxScore)
	assert.Equal(t, 25, result.Percent)
	assert.False(t, result.Passed)
	require.Len(t, result.Breakdown, 1)

	var stored model.QuizAttempt
	require.NoError(t, db.Preload("Answers").First(&stored, "id = ?", result.AttemptID).Error)
	assert.Equal(t, 1, stored.Score)
	assert.Equal(t, 4, stored.MaxScore)
	assert.Equal(t, "learner-1", stored.UserID)
	require.Len(t, stored.Answers, 1)
	assert.True(t, stored.Answers[0].IsCorrect)
}

func TestSubmitAttemptRejectsUnpublishedQuiz(t *testing.T) {
	repo := repository.NewQuizRepository(newTestDB(t))
	grading := NewGradingService(repo)

	draft := &model.Quiz{CourseID: "course-1", Title: "draft", Status: model.StatusDraft, PassingScorePercent: 70}
	require.NoError(t, repo.Create(draft))

	_, err := grading.SubmitAttempt(draft.ID, "learner-1", AttemptSubmission{})
	assert.ErrorIs(t, err, util.ErrQuizNotPublished)

	_, err = grading.SubmitAttempt("no-such-quiz", "learner-1", AttemptSubmission{})
	assert.ErrorIs(t, err, util.ErrQuizNotPublished)
}
