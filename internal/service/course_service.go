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

type CourseService struct {
	Repo        *repository.CourseRepository
	ChapterRepo *repository.ChapterRepository
	LessonRepo  *repository.LessonRepository
	QuizRepo    *repository.QuizRepository
	Storage     *StorageService
}

func NewCourseService(repo *repository.CourseRepository, chapterRepo *repository.ChapterRepository, lessonRepo *repository.LessonRepository, quizRepo *repository.QuizRepository, storage *StorageService) *CourseService {
	return &CourseService{
		Repo:        repo,
		ChapterRepo: chapterRepo,
		LessonRepo:  lessonRepo,
		QuizRepo:    quizRepo,
		Storage:     storage,
	}
}

type CourseCreateReq struct {
	Title            string `json:"title" binding:"required"`
	Slug             string `json:"slug" binding:"required"`
	Description      string `json:"description"`
	SmallDescription string `json:"smallDescription"`
	CoverImage       string `json:"coverImage"`
}

type CourseUpdateReq struct {
	Title            *string `json:"title"`
	Slug             *string `json:"slug"`
	Description      *string `json:"description"`
	SmallDescription *string `json:"smallDescription"`
	CoverImage       *string `json:"coverImage"`
	Status           *string `json:"status"`
}

func (s *CourseService) Create(req CourseCreateReq) (*model.Course, error) {
	taken, err := s.Repo.SlugTaken(req.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrSlugTaken
	}

	course := &model.Course{
		Title:            req.Title,
		Slug:             req.Slug,
		Description:      req.Description,
		SmallDescription: req.SmallDescription,
		CoverImage:       req.CoverImage,
		Status:           model.StatusDraft,
	}
	if err := s.Repo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

// Get resolves a course by id first, then by slug.
func (s *CourseService) Get(idOrSlug string) (*model.Course, error) {
	course, err := s.Repo.FindByID(idOrSlug)
	if err == nil {
		return course, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	course, err = s.Repo.FindBySlug(idOrSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) List(publishedOnly bool) ([]model.Course, error) {
	return s.Repo.List(publishedOnly)
}

func (s *CourseService) Update(id string, req CourseUpdateReq) (*model.Course, error) {
	course, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if req.Slug != nil && *req.Slug != course.Slug {
		taken, err := s.Repo.SlugTaken(*req.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, util.ErrSlugTaken
		}
		course.Slug = *req.Slug
	}
	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.SmallDescription != nil {
		course.SmallDescription = *req.SmallDescription
	}
	if req.CoverImage != nil {
		course.CoverImage = *req.CoverImage
	}
	if req.Status != nil {
		if !model.IsValidStatus(*req.Status) {
			return nil, util.ErrInvalidStatus
		}
		course.Status = *req.Status
	}

	if err := s.Repo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes the course and everything under it: quizzes, chapters,
// lessons and their stored content. The store has no cascading keys, so
// each child level is deleted by parent explicitly.
func (s *CourseService) Delete(id string) (bool, error) {
	if _, err := s.Repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.QuizRepo.DeleteByCourse(id); err != nil {
		return false, err
	}

	chapters, err := s.ChapterRepo.ListByCourse(id, false)
	if err != nil {
		return false, err
	}
	chapterIDs := make([]string, 0, len(chapters))
	for _, ch := range chapters {
		chapterIDs = append(chapterIDs, ch.ID)
	}

	lessons, err := s.LessonRepo.ListByChapterIDs(chapterIDs)
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
	if err := s.LessonRepo.DeleteByChapterIDs(chapterIDs); err != nil {
		return false, err
	}
	if err := s.ChapterRepo.DeleteByCourse(id); err != nil {
		return false, err
	}

	return s.Repo.Delete(id)
}
