package service

import (
	"context"
	"course_hub_backend/internal/model"
	"course_hub_backend/internal/repository"
	"course_hub_backend/internal/util"
	"course_hub_backend/pkg/logger"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ChapterService struct {
	Repo       *repository.ChapterRepository
	LessonRepo *repository.LessonRepository
	QuizRepo   *repository.QuizRepository
	Storage    *StorageService
}

func NewChapterService(repo *repository.ChapterRepository, lessonRepo *repository.LessonRepository, quizRepo *repository.QuizRepository, storage *StorageService) *ChapterService {
	return &ChapterService{Repo: repo, LessonRepo: lessonRepo, QuizRepo: quizRepo, Storage: storage}
}

type ChapterCreateReq struct {
	Title    string `json:"title" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	Position int    `json:"position"`
}

type ChapterUpdateReq struct {
	Title    *string `json:"title"`
	Slug     *string `json:"slug"`
	Position *int    `json:"position"`
	Status   *string `json:"status"`
}

func (s *ChapterService) Create(courseID string, req ChapterCreateReq) (*model.Chapter, error) {
	taken, err := s.Repo.SlugTaken(courseID, req.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrSlugTaken
	}

	chapter := &model.Chapter{
		CourseID: courseID,
		Title:    req.Title,
		Slug:     req.Slug,
		Position: req.Position,
		Status:   model.StatusDraft,
	}
	if err := s.Repo.Create(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

func (s *ChapterService) Get(id string) (*model.Chapter, error) {
	chapter, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChapterNotFound
		}
		return nil, err
	}
	return chapter, nil
}

func (s *ChapterService) ListByCourse(courseID string, publishedOnly bool) ([]model.Chapter, error) {
	return s.Repo.ListByCourse(courseID, publishedOnly)
}

func (s *ChapterService) Update(id string, req ChapterUpdateReq) (*model.Chapter, error) {
	chapter, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != chapter.Slug {
		taken, err := s.Repo.SlugTaken(chapter.CourseID, *req.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, util.ErrSlugTaken
		}
		chapter.Slug = *req.Slug
	}
	if req.Title != nil {
		chapter.Title = *req.Title
	}
	if req.Position != nil {
		chapter.Position = *req.Position
	}
	if req.Status != nil {
		if !model.IsValidStatus(*req.Status) {
			return nil, util.ErrInvalidStatus
		}
		chapter.Status = *req.Status
	}

	if err := s.Repo.Update(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

// Delete removes the chapter along with its lessons, their stored content
// and the chapter quiz, if any.
func (s *ChapterService) Delete(id string) (bool, error) {
	if _, err := s.Repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.QuizRepo.DeleteByChapter(id); err != nil {
		return false, err
	}

	lessons, err := s.LessonRepo.ListByChapter(id, false)
	if err != nil {
		return false, err
	}
	for _, lesson := range lessons {
		if lesson.MdxPath != "" {
			if err := s.Storage.Delete(context.Background(), lesson.MdxPath); err != nil {
				logger.Log.Warn("failed to delete lesson blob",
					zap.String("lessonId", lesson.ID),
					zap.String("path", lesson.MdxPath),
					zap.Error(err),
				)
			}
		}
	}
	if err := s.LessonRepo.DeleteByChapterIDs([]string{id}); err != nil {
		return false, err
	}

	return s.Repo.Delete(id)
}
