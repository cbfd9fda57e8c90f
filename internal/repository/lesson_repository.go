package repository

import (
	"course_hub_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, "id = ?", id).Error
	return &lesson, err
}

func (r *LessonRepository) FindBySlug(slug string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, "slug = ?", slug).Error
	return &lesson, err
}

func (r *LessonRepository) ListByChapter(chapterID string, publishedOnly bool) ([]model.Lesson, error) {
	query := r.DB.Where("chapter_id = ?", chapterID).Order("position asc")
	if publishedOnly {
		query = query.Where("status = ?", model.StatusPublished)
	}
	var lessons []model.Lesson
	err := query.Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) SlugTaken(slug, excludeID string) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Lesson{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(id string) (bool, error) {
	result := r.DB.Delete(&model.Lesson{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func (r *LessonRepository) ListByChapterIDs(chapterIDs []string) ([]model.Lesson, error) {
	if len(chapterIDs) == 0 {
		return nil, nil
	}
	var lessons []model.Lesson
	err := r.DB.Where("chapter_id IN ?", chapterIDs).Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) DeleteByChapterIDs(chapterIDs []string) error {
	if len(chapterIDs) == 0 {
		return nil
	}
	return r.DB.Where("chapter_id IN ?", chapterIDs).Delete(&model.Lesson{}).Error
}
