package repository

import (
	"fmt"
	"testing"
	"time"

	"course_hub_backend/internal/model"
	"course_hub_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedQuiz(t *testing.T, repo *QuizRepository, courseID string, chapterID *string, status model.Status) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		CourseID:            courseID,
		ChapterID:           chapterID,
		Title:               "Signals and Systems",
		Status:              status,
		PassingScorePercent: 70,
		Questions: []model.QuizQuestion{
			{
				Position: 2,
				Prompt:   "Second question",
				Points:   2,
				Options: []model.QuizOption{
					{Position: 1, Content: "wrong", IsCorrect: false},
					{Position: 0, Content: "right", IsCorrect: true},
				},
			},
			{
				Position: 1,
				Prompt:   "First question",
				Points:   1,
				Options: []model.QuizOption{
					{Position: 0, Content: "right", IsCorrect: true},
					{Position: 1, Content: "wrong", IsCorrect: false},
				},
			},
		},
	}
	require.NoError(t, repo.Create(quiz))
	return quiz
}

func TestFindQuizTreeSortsByPosition(t *testing.T) {
	repo := NewQuizRepository(newTestDB(t))
	quiz := seedQuiz(t, repo, "course-1", nil, model.StatusPublished)

	loaded, err := repo.FindQuizTree(quiz.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, 2)

	assert.Equal(t, "First question", loaded.Questions[0].Prompt)
	assert.Equal(t, "Second question", loaded.Questions[1].Prompt)
	assert.Equal(t, "right", loaded.Questions[1].Options[0].Content)
	assert.Equal(t, "wrong", loaded.Questions[1].Options[1].Content)
}

func TestFindCourseLevelQuizIgnoresChapterQuizzes(t *testing.T) {
	repo := NewQuizRepository(newTestDB(t))
	chapterID := "chapter-1"
	seedQuiz(t, repo, "course-1", &chapterID, model.StatusPublished)
	courseQuiz := seedQuiz(t, repo, "course-1", nil, model.StatusPublished)

	found, err := repo.FindCourseLevelQuiz("course-1", true)
	require.NoError(t, err)
	assert.Equal(t, courseQuiz.ID, found.ID)
	assert.Nil(t, found.ChapterID)
}

func TestPublishedOnlyFiltersDrafts(t *testing.T) {
	repo := NewQuizRepository(newTestDB(t))
	seedQuiz(t, repo, "course-1", nil, model.StatusDraft)

	_, err := repo.FindCourseLevelQuiz("course-1", true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.FindCourseLevelQuiz("course-1", false)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, found.Status)

	published, err := repo.ListByCourse("course-1", true)
	require.NoError(t, err)
	assert.Empty(t, published)
}

func TestExistsCourseLevel(t *testing.T) {
	repo := NewQuizRepository(newTestDB(t))
	chapterID := "chapter-1"
	seedQuiz(t, repo, "course-1", &chapterID, model.StatusDraft)

	exists, err := repo.ExistsCourseLevel("course-1")
	require.NoError(t, err)
	assert.False(t, exists)

	seedQuiz(t, repo, "course-1", nil, model.StatusDraft)
	exists, err = repo.ExistsCourseLevel("course-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReplaceQuestionTreeDiscardsOldSubtree(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepository(db)
	quiz := seedQuiz(t, repo, "course-1", nil, model.StatusDraft)

	oldIDs := map[string]bool{}
	for _, q := range quiz.Questions {
		oldIDs[q.ID] = true
	}

	err := repo.ReplaceQuestionTree(quiz.ID, []model.QuizQuestion{
		{
			Position: 0,
			Prompt:   "Replacement",
			Points:   3,
			Options: []model.QuizOption{
				{Position: 0, Content: "yes", IsCorrect: true},
			},
		},
	})
	require.NoError(t, err)

	loaded, err := repo.FindQuizTree(quiz.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, 1)
	assert.Equal(t, "Replacement", loaded.Questions[0].Prompt)
	assert.False(t, oldIDs[loaded.Questions[0].ID], "identities must be regenerated")

	var count int64
	require.NoError(t, db.Model(&model.QuizQuestion{}).Where("quiz_id = ?", quiz.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestReplaceQuestionTreeWithEmptyList(t *testing.T) {
	repo := NewQuizRepository(newTestDB(t))
	quiz := seedQuiz(t, repo, "course-1", nil, model.StatusDraft)

	require.NoError(t, repo.ReplaceQuestionTree(quiz.ID, nil))

	loaded, err := repo.FindQuizTree(quiz.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Questions)
}

func TestSaveGradedAttemptPersistsTotals(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepository(db)
	quiz := seedQuiz(t, repo, "course-1", nil, model.StatusPublished)

	attempt := &model.QuizAttempt{
		QuizID:   quiz.ID,
		UserID:   "learner-1",
		MaxScore: 3,
	}
	answers := []model.QuizAttemptAnswer{
		{QuestionID: quiz.Questions[0].ID, SelectedOptionID: "opt-a", IsCorrect: true, EarnedPoints: 1},
		{QuestionID: quiz.Questions[1].ID, SelectedOptionID: "opt-b", IsCorrect: false, EarnedPoints: 0},
	}

	require.NoError(t, repo.SaveGradedAttempt(attempt, answers, 1, 33, false))
	require.NotEmpty(t, attempt.ID)
	assert.Equal(t, 1, attempt.Score)
	assert.Equal(t, 33, attempt.Percent)
	assert.False(t, attempt.Passed)

	var stored model.QuizAttempt
	require.NoError(t, db.Preload("Answers").First(&stored, "id = ?", attempt.ID).Error)
	assert.Equal(t, 1, stored.Score)
	assert.Equal(t, 33, stored.Percent)
	assert.Len(t, stored.Answers, 2)
}

func TestDeleteRemovesAttemptsAndAnswers(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepository(db)
	quiz := seedQuiz(t, repo, "course-1", nil, model.StatusPublished)

	attempt := &model.QuizAttempt{QuizID: quiz.ID, UserID: "learner-1", MaxScore: 3}
	answers := []model.QuizAttemptAnswer{
		{QuestionID: quiz.Questions[0].ID, SelectedOptionID: "opt", IsCorrect: true, EarnedPoints: 1},
	}
	require.NoError(t, repo.SaveGradedAttempt(attempt, answers, 1, 33, false))

	removed, err := repo.Delete(quiz.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	for _, m := range []interface{}{&model.QuizQuestion{}, &model.QuizOption{}, &model.QuizAttempt{}, &model.QuizAttemptAnswer{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	}
}

func TestDeleteMissingQuizReturnsFalse(t *testing.T) {
	repo := NewQuizRepository(newTestDB(t))

	removed, err := repo.Delete("no-such-quiz")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestListAttemptsNewestFirst(t *testing.T) {
	repo := NewQuizRepository(newTestDB(t))
	quiz := seedQuiz(t, repo, "course-1", nil, model.StatusPublished)

	for i, score := range []int{1, 3} {
		attempt := &model.QuizAttempt{
			QuizID:      quiz.ID,
			UserID:      "learner-1",
			MaxScore:    3,
			SubmittedAt: timeOffset(i),
			StartedAt:   timeOffset(i),
		}
		require.NoError(t, repo.SaveGradedAttempt(attempt, nil, score, score*100/3, false))
	}

	attempts, err := repo.ListAttemptsByQuizAndUser(quiz.ID, "learner-1")
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, 3, attempts[0].Score)
	assert.Equal(t, 1, attempts[1].Score)
}

func timeOffset(hours int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(hours) * time.Hour)
}

