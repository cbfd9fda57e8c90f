package repository

import (
	"course_hub_backend/internal/model"

	"gorm.io/gorm"
)

type ChapterRepository struct {
	DB *gorm.DB
}

func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{DB: db}
}

func (r *ChapterRepository) Create(chapter *model.Chapter) error {
	return r.DB.Create(chapter).Error
}

func (r *ChapterRepository) FindByID(id string) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.DB.First(&chapter, "id = ?", id).Error
	return &chapter, err
}

func (r *ChapterRepository) ListByCourse(courseID string, publishedOnly bool) ([]model.Chapter, error) {
	query := r.DB.Where("course_id = ?", courseID).Order("position asc")
	if publishedOnly {
		query = query.Where("status = ?", model.StatusPublished)
	}
	var chapters []model.Chapter
	err := query.Find(&chapters).Error
	return chapters, err
}

func (r *ChapterRepository) SlugTaken(courseID, slug, excludeID string) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Chapter{}).Where("course_id = ? AND slug = ?", courseID, slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *ChapterRepository) Update(chapter *model.Chapter) error {
	return r.DB.Save(chapter).Error
}

func (r *ChapterRepository) Delete(id string) (bool, error) {
	result := r.DB.Delete(&model.Chapter{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func (r *ChapterRepository) DeleteByCourse(courseID string) error {
	return r.DB.Where("course_id = ?", courseID).Delete(&model.Chapter{}).Error
}
