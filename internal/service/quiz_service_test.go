package service

import (
	"context"
	"testing"

	"course_hub_backend/internal/model"
	"course_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDraftEnforcesOnePerCourse(t *testing.T) {
	svc := newQuizService(t)

	first, err := svc.CreateDraft("course-1", "Final Exam")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, first.Status)
	assert.Nil(t, first.ChapterID)
	assert.Equal(t, 70, first.PassingScorePercent)

	_, err = svc.CreateDraft("course-1", "Another")
	assert.ErrorIs(t, err, util.ErrCourseQuizExists)

	// A different course is a different slot.
	_, err = svc.CreateDraft("course-2", "Final Exam")
	assert.NoError(t, err)
}

func TestCreateChapterDraftEnforcesOnePerChapter(t *testing.T) {
	svc := newQuizService(t)

	quiz, err := svc.CreateChapterDraft("course-1", "chapter-1", "Checkpoint")
	require.NoError(t, err)
	require.NotNil(t, quiz.ChapterID)
	assert.Equal(t, "chapter-1", *quiz.ChapterID)

	_, err = svc.CreateChapterDraft("course-1", "chapter-1", "Again")
	assert.ErrorIs(t, err, util.ErrChapterQuizExists)

	_, err = svc.CreateChapterDraft("course-1", "chapter-2", "Checkpoint")
	assert.NoError(t, err)
}

func TestCourseAndChapterQuizzesCoexist(t *testing.T) {
	svc := newQuizService(t)

	_, err := svc.CreateChapterDraft("course-1", "chapter-1", "Checkpoint")
	require.NoError(t, err)

	_, err = svc.CreateDraft("course-1", "Final Exam")
	assert.NoError(t, err, "a chapter quiz must not block the course-level slot")
}

func TestUpdateQuizReplacesQuestionTree(t *testing.T) {
	svc := newQuizService(t)

	quiz, err := svc.CreateDraft("course-1", "Final Exam")
	require.NoError(t, err)

	questions := []QuizQuestionReq{
		{
			Prompt:   "What is 2+2?",
			Position: 0,
			Points:   2,
			Options: []QuizOptionReq{
				{Content: "4", Position: 0, IsCorrect: true},
				{Content: "5", Position: 1},
			},
		},
	}
	updated, err := svc.UpdateQuiz(quiz.ID, QuizUpdateReq{Questions: &questions})
	require.NoError(t, err)
	require.Len(t, updated.Questions, 1)
	firstID := updated.Questions[0].ID

	replacement := []QuizQuestionReq{
		{
			Prompt:   "What is 3+3?",
			Position: 0,
			Options: []QuizOptionReq{
				{Content: "6", Position: 0, IsCorrect: true},
			},
		},
	}
	updated, err = svc.UpdateQuiz(quiz.ID, QuizUpdateReq{Questions: &replacement})
	require.NoError(t, err)
	require.Len(t, updated.Questions, 1)
	assert.Equal(t, "What is 3+3?", updated.Questions[0].Prompt)
	assert.NotEqual(t, firstID, updated.Questions[0].ID)
	assert.Equal(t, 1, updated.Questions[0].Points, "points below 1 take the default")
}

func TestUpdateQuizMetaOnlyKeepsQuestions(t *testing.T) {
	svc := newQuizService(t)

	quiz, err := svc.CreateDraft("course-1", "Final Exam")
	require.NoError(t, err)

	questions := []QuizQuestionReq{
		{Prompt: "q", Options: []QuizOptionReq{{Content: "a", IsCorrect: true}}},
	}
	_, err = svc.UpdateQuiz(quiz.ID, QuizUpdateReq{Questions: &questions})
	require.NoError(t, err)

	title := "Renamed"
	updated, err := svc.UpdateQuiz(quiz.ID, QuizUpdateReq{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Len(t, updated.Questions, 1, "a nil question list must not touch the tree")
}

func TestUpdateQuizValidatesPassingScore(t *testing.T) {
	svc := newQuizService(t)

	quiz, err := svc.CreateDraft("course-1", "Final Exam")
	require.NoError(t, err)

	bad := 101
	_, err = svc.UpdateQuiz(quiz.ID, QuizUpdateReq{PassingScorePercent: &bad})
	assert.Error(t, err)

	ok := 85
	updated, err := svc.UpdateQuiz(quiz.ID, QuizUpdateReq{PassingScorePercent: &ok})
	require.NoError(t, err)
	assert.Equal(t, 85, updated.PassingScorePercent)
}

func TestPublishStampsPublishedAt(t *testing.T) {
	svc := newQuizService(t)

	quiz, err := svc.CreateDraft("course-1", "Final Exam")
	require.NoError(t, err)
	assert.Nil(t, quiz.PublishedAt)

	published, err := svc.Publish(quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
}

func TestStatusTransitions(t *testing.T) {
	svc := newQuizService(t)

	quiz, err := svc.CreateDraft("course-1", "Final Exam")
	require.NoError(t, err)

	_, err = svc.Publish(quiz.ID)
	require.NoError(t, err)

	archived, err := svc.Archive(quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusArchived, archived.Status)

	// Archived is terminal.
	_, err = svc.Publish(quiz.ID)
	assert.ErrorIs(t, err, util.ErrInvalidTransition)

	draft := model.StatusDraft
	_, err = svc.UpdateQuiz(quiz.ID, QuizUpdateReq{Status: &draft})
	assert.ErrorIs(t, err, util.ErrInvalidTransition)
}

func TestPublishedDowngradeRejected(t *testing.T) {
	svc := newQuizService(t)

	quiz, err := svc.CreateDraft("course-1", "Final Exam")
	require.NoError(t, err)
	_, err = svc.Publish(quiz.ID)
	require.NoError(t, err)

	draft := model.StatusDraft
	_, err = svc.UpdateQuiz(quiz.ID, QuizUpdateReq{Status: &draft})
	assert.ErrorIs(t, err, util.ErrInvalidTransition)
}

func TestGetPublishedQuizHidesDrafts(t *testing.T) {
	svc := newQuizService(t)

	quiz, err := svc.CreateDraft("course-1", "Final Exam")
	require.NoError(t, err)

	_, err = svc.GetPublishedQuiz(context.Background(), quiz.ID)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)

	_, err = svc.Publish(quiz.ID)
	require.NoError(t, err)

	view, err := svc.GetPublishedQuiz(context.Background(), quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, view.ID)
}

func TestDeleteQuizReportsMissing(t *testing.T) {
	svc := newQuizService(t)

	removed, err := svc.DeleteQuiz("no-such-quiz")
	require.NoError(t, err)
	assert.False(t, removed)

	quiz, err := svc.CreateDraft("course-1", "Final Exam")
	require.NoError(t, err)

	removed, err = svc.DeleteQuiz(quiz.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = svc.GetQuizTree(quiz.ID)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}
