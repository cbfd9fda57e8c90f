package repository

import (
	"course_hub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, "id = ?", id).Error
	return &course, err
}

func (r *CourseRepository) FindBySlug(slug string) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, "slug = ?", slug).Error
	return &course, err
}

func (r *CourseRepository) List(publishedOnly bool) ([]model.Course, error) {
	query := r.DB.Order("created_at desc")
	if publishedOnly {
		query = query.Where("status = ?", model.StatusPublished)
	}
	var courses []model.Course
	err := query.Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) SlugTaken(slug, excludeID string) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Course{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

// Delete removes the course row. Chapters, lessons and quizzes are removed
// by their own repositories before this is called.
func (r *CourseRepository) Delete(id string) (bool, error) {
	result := r.DB.Delete(&model.Course{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
