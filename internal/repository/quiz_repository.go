package repository

import (
	"course_hub_backend/internal/model"
	"sort"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

// FindQuizTree loads a quiz with its questions and options and normalizes
// nested ordering. The backing store does not guarantee nested-array order,
// so every read path sorts by position here.
func (r *QuizRepository) FindQuizTree(quizID string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions.Options").First(&quiz, "id = ?", quizID).Error
	if err != nil {
		return nil, err
	}
	normalizeTree(&quiz)
	return &quiz, nil
}

func (r *QuizRepository) ListByCourse(courseID string, publishedOnly bool) ([]model.Quiz, error) {
	query := r.DB.Preload("Questions.Options").Where("course_id = ?", courseID)
	if publishedOnly {
		query = query.Where("status = ?", model.StatusPublished)
	}

	var quizzes []model.Quiz
	if err := query.Find(&quizzes).Error; err != nil {
		return nil, err
	}
	for i := range quizzes {
		normalizeTree(&quizzes[i])
	}
	return quizzes, nil
}

// FindCourseLevelQuiz returns the quiz attached to the course itself
// (chapter_id IS NULL).
func (r *QuizRepository) FindCourseLevelQuiz(courseID string, publishedOnly bool) (*model.Quiz, error) {
	query := r.DB.Preload("Questions.Options").
		Where("course_id = ? AND chapter_id IS NULL", courseID)
	if publishedOnly {
		query = query.Where("status = ?", model.StatusPublished)
	}

	var quiz model.Quiz
	if err := query.First(&quiz).Error; err != nil {
		return nil, err
	}
	normalizeTree(&quiz)
	return &quiz, nil
}

func (r *QuizRepository) FindChapterQuiz(courseID, chapterID string, publishedOnly bool) (*model.Quiz, error) {
	query := r.DB.Preload("Questions.Options").
		Where("course_id = ? AND chapter_id = ?", courseID, chapterID)
	if publishedOnly {
		query = query.Where("status = ?", model.StatusPublished)
	}

	var quiz model.Quiz
	if err := query.First(&quiz).Error; err != nil {
		return nil, err
	}
	normalizeTree(&quiz)
	return &quiz, nil
}

func (r *QuizRepository) ListByChapter(courseID, chapterID string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Preload("Questions.Options").
		Where("course_id = ? AND chapter_id = ?", courseID, chapterID).
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	for i := range quizzes {
		normalizeTree(&quizzes[i])
	}
	return quizzes, nil
}

func (r *QuizRepository) ExistsCourseLevel(courseID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).
		Where("course_id = ? AND chapter_id IS NULL", courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *QuizRepository) ExistsForChapter(courseID, chapterID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).
		Where("course_id = ? AND chapter_id = ?", courseID, chapterID).
		Count(&count).Error
	return count > 0, err
}

func (r *QuizRepository) UpdateMeta(quizID string, fields map[string]interface{}) error {
	return r.DB.Model(&model.Quiz{}).Where("id = ?", quizID).Updates(fields).Error
}

// ReplaceQuestionTree discards the quiz's entire question/option subtree and
// reinserts it from the given questions, in order. The whole sequence runs
// in one transaction so a failed insert never leaves a partial tree.
func (r *QuizRepository) ReplaceQuestionTree(quizID string, questions []model.QuizQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []string
		if err := tx.Model(&model.QuizQuestion{}).
			Where("quiz_id = ?", quizID).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}

		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.QuizOption{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", quizID).Delete(&model.QuizQuestion{}).Error; err != nil {
				return err
			}
		}

		for i := range questions {
			q := &questions[i]
			q.ID = ""
			q.QuizID = quizID

			options := q.Options
			q.Options = nil
			if err := tx.Create(q).Error; err != nil {
				return err
			}

			for j := range options {
				options[j].ID = ""
				options[j].QuestionID = q.ID
			}
			if len(options) > 0 {
				if err := tx.Create(&options).Error; err != nil {
					return err
				}
			}
			q.Options = options
		}

		return nil
	})
}

// Delete removes a quiz and everything it owns. The store has no cascading
// foreign keys, so children are deleted by parent explicitly. Returns
// whether a quiz row was actually removed.
func (r *QuizRepository) Delete(quizID string) (bool, error) {
	var removed bool
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []string
		if err := tx.Model(&model.QuizQuestion{}).
			Where("quiz_id = ?", quizID).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.QuizOption{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", quizID).Delete(&model.QuizQuestion{}).Error; err != nil {
				return err
			}
		}

		var attemptIDs []string
		if err := tx.Model(&model.QuizAttempt{}).
			Where("quiz_id = ?", quizID).
			Pluck("id", &attemptIDs).Error; err != nil {
			return err
		}
		if len(attemptIDs) > 0 {
			if err := tx.Where("attempt_id IN ?", attemptIDs).Delete(&model.QuizAttemptAnswer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", quizID).Delete(&model.QuizAttempt{}).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&model.Quiz{}, "id = ?", quizID)
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected > 0
		return nil
	})
	return removed, err
}

// DeleteByCourse removes every quiz belonging to a course.
func (r *QuizRepository) DeleteByCourse(courseID string) error {
	var quizIDs []string
	if err := r.DB.Model(&model.Quiz{}).Where("course_id = ?", courseID).Pluck("id", &quizIDs).Error; err != nil {
		return err
	}
	for _, id := range quizIDs {
		if _, err := r.Delete(id); err != nil {
			return err
		}
	}
	return nil
}

// DeleteByChapter removes the quiz attached to a chapter, if any.
func (r *QuizRepository) DeleteByChapter(chapterID string) error {
	var quizIDs []string
	if err := r.DB.Model(&model.Quiz{}).Where("chapter_id = ?", chapterID).Pluck("id", &quizIDs).Error; err != nil {
		return err
	}
	for _, id := range quizIDs {
		if _, err := r.Delete(id); err != nil {
			return err
		}
	}
	return nil
}

// SaveGradedAttempt persists an attempt and its answer breakdown. The
// attempt row is inserted with zeroed score fields first, then finalized
// with the graded totals, all inside one transaction.
func (r *QuizRepository) SaveGradedAttempt(attempt *model.QuizAttempt, answers []model.QuizAttemptAnswer, score, percent int, passed bool) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		for i := range answers {
			answers[i].AttemptID = attempt.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&model.QuizAttempt{}).
			Where("id = ?", attempt.ID).
			Updates(map[string]interface{}{
				"score":   score,
				"percent": percent,
				"passed":  passed,
			}).Error; err != nil {
			return err
		}

		attempt.Score = score
		attempt.Percent = percent
		attempt.Passed = passed
		attempt.Answers = answers
		return nil
	})
}

func (r *QuizRepository) ListAttemptsByQuizAndUser(quizID, userID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Preload("Answers").
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("submitted_at desc").
		Find(&attempts).Error
	return attempts, err
}

func (r *QuizRepository) ListAttemptsByUser(userID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Preload("Answers").
		Where("user_id = ?", userID).
		Order("submitted_at desc").
		Find(&attempts).Error
	return attempts, err
}

func (r *QuizRepository) ListAttemptsByQuiz(quizID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("quiz_id = ?", quizID).
		Order("submitted_at desc").
		Find(&attempts).Error
	return attempts, err
}

// normalizeTree sorts questions then options ascending by position. The
// sort is stable so equal positions keep insertion order.
func normalizeTree(quiz *model.Quiz) {
	sort.SliceStable(quiz.Questions, func(i, j int) bool {
		return quiz.Questions[i].Position < quiz.Questions[j].Position
	})
	for i := range quiz.Questions {
		opts := quiz.Questions[i].Options
		sort.SliceStable(opts, func(a, b int) bool {
			return opts[a].Position < opts[b].Position
		})
	}
}
