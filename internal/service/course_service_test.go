package service

import (
	"testing"

	"course_hub_backend/internal/model"
	"course_hub_backend/internal/repository"
	"course_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCourseService(t *testing.T) (*CourseService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewChapterRepository(db),
		repository.NewLessonRepository(db),
		repository.NewQuizRepository(db),
		nil,
	)
	return svc, db
}

func TestCourseSlugMustBeUnique(t *testing.T) {
	svc, _ := newCourseService(t)

	_, err := svc.Create(CourseCreateReq{Title: "Go Basics", Slug: "go-basics"})
	require.NoError(t, err)

	_, err = svc.Create(CourseCreateReq{Title: "Another", Slug: "go-basics"})
	assert.ErrorIs(t, err, util.ErrSlugTaken)
}

func TestCourseGetByIDThenSlug(t *testing.T) {
	svc, _ := newCourseService(t)

	created, err := svc.Create(CourseCreateReq{Title: "Go Basics", Slug: "go-basics"})
	require.NoError(t, err)

	byID, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	bySlug, err := svc.Get("go-basics")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = svc.Get("nope")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestCourseUpdateSlugConflict(t *testing.T) {
	svc, _ := newCourseService(t)

	_, err := svc.Create(CourseCreateReq{Title: "A", Slug: "a"})
	require.NoError(t, err)
	b, err := svc.Create(CourseCreateReq{Title: "B", Slug: "b"})
	require.NoError(t, err)

	taken := "a"
	_, err = svc.Update(b.ID, CourseUpdateReq{Slug: &taken})
	assert.ErrorIs(t, err, util.ErrSlugTaken)

	// Re-submitting the current slug is not a conflict.
	same := "b"
	_, err = svc.Update(b.ID, CourseUpdateReq{Slug: &same})
	assert.NoError(t, err)
}

func TestCourseDeleteCascades(t *testing.T) {
	svc, db := newCourseService(t)

	course, err := svc.Create(CourseCreateReq{Title: "Go Basics", Slug: "go-basics"})
	require.NoError(t, err)

	chapter := &model.Chapter{CourseID: course.ID, Title: "Intro", Slug: "intro", Status: model.StatusDraft}
	require.NoError(t, db.Create(chapter).Error)
	lesson := &model.Lesson{ChapterID: chapter.ID, Title: "Hello", Slug: "hello", Type: "text", Status: model.StatusDraft}
	require.NoError(t, db.Create(lesson).Error)

	quizRepo := repository.NewQuizRepository(db)
	chapterID := chapter.ID
	quiz := &model.Quiz{CourseID: course.ID, ChapterID: &chapterID, Title: "Checkpoint", Status: model.StatusDraft, PassingScorePercent: 70}
	require.NoError(t, quizRepo.Create(quiz))

	removed, err := svc.Delete(course.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	for _, m := range []interface{}{&model.Course{}, &model.Chapter{}, &model.Lesson{}, &model.Quiz{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	}
}

func TestCourseDeleteMissingReturnsFalse(t *testing.T) {
	svc, _ := newCourseService(t)

	removed, err := svc.Delete("no-such-course")
	require.NoError(t, err)
	assert.False(t, removed)
}
