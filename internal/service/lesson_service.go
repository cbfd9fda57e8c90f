package service

import (
	"bytes"
	"context"
	"course_hub_backend/internal/model"
	"course_hub_backend/internal/repository"
	"course_hub_backend/internal/util"
	"course_hub_backend/pkg/logger"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LessonService struct {
	Repo    *repository.LessonRepository
	Storage *StorageService
}

func NewLessonService(repo *repository.LessonRepository, storage *StorageService) *LessonService {
	return &LessonService{Repo: repo, Storage: storage}
}

type LessonCreateReq struct {
	Title      string `json:"title" binding:"required"`
	Slug       string `json:"slug" binding:"required"`
	Label      string `json:"label"`
	Type       string `json:"type" binding:"required"`
	AuthorName string `json:"authorName"`
	Position   int    `json:"position"`
}

type LessonUpdateReq struct {
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	Label      *string `json:"label"`
	Type       *string `json:"type"`
	AuthorName *string `json:"authorName"`
	Position   *int    `json:"position"`
	Status     *string `json:"status"`
}

func (s *LessonService) Create(chapterID string, req LessonCreateReq) (*model.Lesson, error) {
	taken, err := s.Repo.SlugTaken(req.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrSlugTaken
	}

	lesson := &model.Lesson{
		ChapterID:  chapterID,
		Title:      req.Title,
		Slug:       req.Slug,
		Label:      req.Label,
		Type:       req.Type,
		AuthorName: req.AuthorName,
		Position:   req.Position,
		Status:     model.StatusDraft,
	}
	if err := s.Repo.Create(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) Get(idOrSlug string) (*model.Lesson, error) {
	lesson, err := s.Repo.FindByID(idOrSlug)
	if err == nil {
		return lesson, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	lesson, err = s.Repo.FindBySlug(idOrSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) ListByChapter(chapterID string, publishedOnly bool) ([]model.Lesson, error) {
	return s.Repo.ListByChapter(chapterID, publishedOnly)
}

func (s *LessonService) Update(id string, req LessonUpdateReq) (*model.Lesson, error) {
	lesson, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	if req.Slug != nil && *req.Slug != lesson.Slug {
		taken, err := s.Repo.SlugTaken(*req.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, util.ErrSlugTaken
		}
		lesson.Slug = *req.Slug
	}
	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Label != nil {
		lesson.Label = *req.Label
	}
	if req.Type != nil {
		lesson.Type = *req.Type
	}
	if req.AuthorName != nil {
		lesson.AuthorName = *req.AuthorName
	}
	if req.Position != nil {
		lesson.Position = *req.Position
	}
	if req.Status != nil {
		if !model.IsValidStatus(*req.Status) {
			return nil, util.ErrInvalidStatus
		}
		lesson.Status = *req.Status
		if *req.Status == model.StatusPublished && lesson.PublishedAt == nil {
			now := time.Now()
			lesson.PublishedAt = &now
		}
	}

	if err := s.Repo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// UploadContent stores a new markdown body for the lesson and points the
// lesson at the fresh object key. The previous blob is removed best effort.
func (s *LessonService) UploadContent(ctx context.Context, id string, content []byte) (*model.Lesson, error) {
	lesson, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("lessons/%s/%d.mdx", lesson.Slug, time.Now().UnixMilli())
	if _, err := s.Storage.Upload(ctx, key, bytes.NewReader(content), int64(len(content)), util.MimeMarkdown); err != nil {
		return nil, err
	}

	oldPath := lesson.MdxPath
	lesson.MdxPath = key
	if err := s.Repo.Update(lesson); err != nil {
		return nil, err
	}

	if oldPath != "" {
		if err := s.Storage.Delete(ctx, oldPath); err != nil {
			logger.Log.Warn("failed to delete previous lesson blob",
				zap.String("lessonId", lesson.ID),
				zap.String("path", oldPath),
				zap.Error(err),
			)
		}
	}

	return lesson, nil
}

// GetContent downloads the lesson's markdown body from blob storage.
func (s *LessonService) GetContent(ctx context.Context, id string) (string, error) {
	lesson, err := s.Get(id)
	if err != nil {
		return "", err
	}
	if lesson.MdxPath == "" {
		return "", util.ErrLessonContentEmpty
	}

	reader, err := s.Storage.Download(ctx, lesson.MdxPath)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Delete removes the lesson and its stored content.
func (s *LessonService) Delete(ctx context.Context, id string) (bool, error) {
	lesson, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if lesson.MdxPath != "" {
		if err := s.Storage.Delete(ctx, lesson.MdxPath); err != nil {
			logger.Log.Warn("failed to delete lesson blob",
				zap.String("lessonId", lesson.ID),
				zap.String("path", lesson.MdxPath),
				zap.Error(err),
			)
		}
	}

	return s.Repo.Delete(id)
}
