package service

import (
	"context"
	"testing"

	"course_hub_backend/internal/config"
	"course_hub_backend/internal/repository"
	"course_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLessonService(t *testing.T) *LessonService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	return NewLessonService(repository.NewLessonRepository(newTestDB(t)), NewStorageService(cfg))
}

func TestLessonContentRoundTrip(t *testing.T) {
	svc := newLessonService(t)
	ctx := context.Background()

	lesson, err := svc.Create("chapter-1", LessonCreateReq{Title: "Hello", Slug: "hello", Type: "text"})
	require.NoError(t, err)

	_, err = svc.GetContent(ctx, lesson.ID)
	assert.ErrorIs(t, err, util.ErrLessonContentEmpty)

	updated, err := svc.UploadContent(ctx, lesson.ID, []byte("# Hello\n\nWelcome."))
	require.NoError(t, err)
	require.NotEmpty(t, updated.MdxPath)

	content, err := svc.GetContent(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, "# Hello\n\nWelcome.", content)

	// A second upload points the lesson at a fresh key.
	firstPath := updated.MdxPath
	updated, err = svc.UploadContent(ctx, lesson.ID, []byte("updated"))
	require.NoError(t, err)
	assert.NotEqual(t, firstPath, updated.MdxPath)

	content, err = svc.GetContent(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", content)
}

func TestLessonSlugUnique(t *testing.T) {
	svc := newLessonService(t)

	_, err := svc.Create("chapter-1", LessonCreateReq{Title: "Hello", Slug: "hello", Type: "text"})
	require.NoError(t, err)

	_, err = svc.Create("chapter-2", LessonCreateReq{Title: "Other", Slug: "hello", Type: "text"})
	assert.ErrorIs(t, err, util.ErrSlugTaken)
}

func TestLessonPublishStampsPublishedAt(t *testing.T) {
	svc := newLessonService(t)

	lesson, err := svc.Create("chapter-1", LessonCreateReq{Title: "Hello", Slug: "hello", Type: "text"})
	require.NoError(t, err)
	assert.Nil(t, lesson.PublishedAt)

	published := "Published"
	updated, err := svc.Update(lesson.ID, LessonUpdateReq{Status: &published})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
}

func TestLessonDeleteRemovesBlob(t *testing.T) {
	svc := newLessonService(t)
	ctx := context.Background()

	lesson, err := svc.Create("chapter-1", LessonCreateReq{Title: "Hello", Slug: "hello", Type: "text"})
	require.NoError(t, err)
	_, err = svc.UploadContent(ctx, lesson.ID, []byte("body"))
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, lesson.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = svc.Get(lesson.ID)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}
