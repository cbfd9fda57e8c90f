package service

import (
	"context"
	"course_hub_backend/internal/model"
	"course_hub_backend/internal/repository"
	"course_hub_backend/internal/util"
	"course_hub_backend/pkg/logger"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	Repo    *repository.QuizRepository
	Storage *StorageService
	Redis   *redis.Client
}

func NewQuizService(repo *repository.QuizRepository, storage *StorageService, rdb *redis.Client) *QuizService {
	return &QuizService{Repo: repo, Storage: storage, Redis: rdb}
}

const learnerViewKeyPrefix = "quiz:learner_view:"
const learnerViewTTL = 10 * time.Minute

type QuizOptionReq struct {
	Content   string  `json:"content" binding:"required"`
	Position  int     `json:"position"`
	IsCorrect bool    `json:"isCorrect"`
	ImageURL  *string `json:"imageUrl"`
}

type QuizQuestionReq struct {
	Prompt   string          `json:"prompt" binding:"required"`
	Position int             `json:"position"`
	Points   int             `json:"points"`
	ImageURL *string         `json:"imageUrl"`
	Options  []QuizOptionReq `json:"options"`
}

// QuizUpdateReq is a partial update: nil fields are left untouched. When
// Questions is present the whole existing question tree is replaced, not
// merged; ids not resubmitted are gone for good.
type QuizUpdateReq struct {
	Title               *string            `json:"title"`
	Description         *string            `json:"description"`
	PassingScorePercent *int               `json:"passingScorePercent"`
	Status              *string            `json:"status"`
	Questions           *[]QuizQuestionReq `json:"questions"`
}

// CreateDraft creates a course-level quiz draft (no chapter). Each course
// may carry at most one course-level quiz.
func (s *QuizService) CreateDraft(courseID, title string) (*model.Quiz, error) {
	exists, err := s.Repo.ExistsCourseLevel(courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrCourseQuizExists
	}

	quiz := &model.Quiz{
		CourseID:            courseID,
		ChapterID:           nil,
		Title:               title,
		Status:              model.StatusDraft,
		PassingScorePercent: 70,
	}
	if err := s.Repo.Create(quiz); err != nil {
		return nil, err
	}
	quiz.Questions = []model.QuizQuestion{}
	return quiz, nil
}

// CreateChapterDraft creates a quiz draft for one chapter. The
// (course, chapter) slot must be free.
func (s *QuizService) CreateChapterDraft(courseID, chapterID, title string) (*model.Quiz, error) {
	exists, err := s.Repo.ExistsForChapter(courseID, chapterID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrChapterQuizExists
	}

	quiz := &model.Quiz{
		CourseID:            courseID,
		ChapterID:           &chapterID,
		Title:               title,
		Status:              model.StatusDraft,
		PassingScorePercent: 70,
	}
	if err := s.Repo.Create(quiz); err != nil {
		return nil, err
	}
	quiz.Questions = []model.QuizQuestion{}
	return quiz, nil
}

// GetQuizTree returns the author-complete quiz regardless of status.
func (s *QuizService) GetQuizTree(quizID string) (*model.Quiz, error) {
	quiz, err := s.Repo.FindQuizTree(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

// GetPublishedQuiz returns the learner projection of a published quiz.
// Draft and archived quizzes are reported as not found.
func (s *QuizService) GetPublishedQuiz(ctx context.Context, quizID string) (*LearnerQuizView, error) {
	if view := s.cachedLearnerView(ctx, quizID); view != nil {
		return view, nil
	}

	quiz, err := s.Repo.FindQuizTree(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if quiz.Status != model.StatusPublished {
		return nil, util.ErrQuizNotFound
	}

	view := NewLearnerQuizView(quiz)
	s.cacheLearnerView(ctx, quizID, view)
	return view, nil
}

func (s *QuizService) GetCourseLevelPublished(courseID string) (*LearnerQuizView, error) {
	quiz, err := s.Repo.FindCourseLevelQuiz(courseID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return NewLearnerQuizView(quiz), nil
}

func (s *QuizService) GetChapterPublished(courseID, chapterID string) (*LearnerQuizView, error) {
	quiz, err := s.Repo.FindChapterQuiz(courseID, chapterID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return NewLearnerQuizView(quiz), nil
}

func (s *QuizService) ListPublishedByCourse(courseID string) ([]*LearnerQuizView, error) {
	quizzes, err := s.Repo.ListByCourse(courseID, true)
	if err != nil {
		return nil, err
	}
	return NewLearnerQuizViews(quizzes), nil
}

// GetCourseLevelAdmin returns the course-level quiz in author-complete
// form regardless of status.
func (s *QuizService) GetCourseLevelAdmin(courseID string) (*model.Quiz, error) {
	quiz, err := s.Repo.FindCourseLevelQuiz(courseID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

// GetChapterAdmin returns the chapter quiz in author-complete form
// regardless of status.
func (s *QuizService) GetChapterAdmin(courseID, chapterID string) (*model.Quiz, error) {
	quiz, err := s.Repo.FindChapterQuiz(courseID, chapterID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) ListByCourseAdmin(courseID string) ([]model.Quiz, error) {
	return s.Repo.ListByCourse(courseID, false)
}

func (s *QuizService) ListByChapterAdmin(courseID, chapterID string) ([]model.Quiz, error) {
	return s.Repo.ListByChapter(courseID, chapterID)
}

// UpdateQuiz applies a partial meta patch and, when a question list is
// supplied, replaces the entire question tree. Returns the freshly
// reloaded, normalized quiz.
func (s *QuizService) UpdateQuiz(quizID string, req QuizUpdateReq) (*model.Quiz, error) {
	var current model.Quiz
	if err := s.Repo.DB.First(&current, "id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	meta := map[string]interface{}{}
	if req.Title != nil {
		meta["title"] = *req.Title
	}
	if req.Description != nil {
		meta["description"] = *req.Description
	}
	if req.PassingScorePercent != nil {
		if *req.PassingScorePercent < 0 || *req.PassingScorePercent > 100 {
			return nil, fmt.Errorf("passing score must be between 0 and 100")
		}
		meta["passing_score_percent"] = *req.PassingScorePercent
	}
	if req.Status != nil {
		if !model.IsValidStatus(*req.Status) {
			return nil, util.ErrInvalidStatus
		}
		if err := checkTransition(current.Status, *req.Status); err != nil {
			return nil, err
		}
		meta["status"] = *req.Status
		if *req.Status == model.StatusPublished && current.Status != model.StatusPublished {
			meta["published_at"] = time.Now()
		}
	}

	if len(meta) > 0 {
		if err := s.Repo.UpdateMeta(quizID, meta); err != nil {
			return nil, err
		}
	}

	if req.Questions != nil {
		questions := buildQuestionTree(*req.Questions)
		if err := s.Repo.ReplaceQuestionTree(quizID, questions); err != nil {
			return nil, err
		}
	}

	s.invalidateLearnerView(context.Background(), quizID)
	return s.GetQuizTree(quizID)
}

// Publish transitions the quiz to Published and stamps PublishedAt.
func (s *QuizService) Publish(quizID string) (*model.Quiz, error) {
	status := model.StatusPublished
	return s.UpdateQuiz(quizID, QuizUpdateReq{Status: &status})
}

// Archive transitions the quiz to Archived. Archived is terminal.
func (s *QuizService) Archive(quizID string) (*model.Quiz, error) {
	status := model.StatusArchived
	return s.UpdateQuiz(quizID, QuizUpdateReq{Status: &status})
}

// DeleteQuiz removes the quiz and its question/option/attempt subtrees.
// Returns false when no quiz row existed.
func (s *QuizService) DeleteQuiz(quizID string) (bool, error) {
	removed, err := s.Repo.Delete(quizID)
	if err != nil {
		return false, err
	}
	if removed {
		s.invalidateLearnerView(context.Background(), quizID)
	}
	return removed, nil
}

type QuizImageUpload struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// UploadImage stores a question/option image under the quiz's media prefix
// and returns the public URL to embed when saving the quiz.
func (s *QuizService) UploadImage(ctx context.Context, quizID string, file *multipart.FileHeader, maxSizeMB int) (*QuizImageUpload, error) {
	maxSize := int64(maxSizeMB) * 1024 * 1024
	if file.Size > maxSize {
		return nil, util.ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, util.AllowedQuizImageTypes)
	if err != nil {
		return nil, util.ErrInvalidFileType
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	ext := strings.TrimPrefix(filepath.Ext(file.Filename), ".")
	if ext == "" {
		ext = "png"
	}
	path := fmt.Sprintf("quiz-media/%s/%s.%s", quizID, model.GenerateUUID(), ext)

	url, err := s.Storage.Upload(ctx, path, src, file.Size, mimeType)
	if err != nil {
		return nil, err
	}

	return &QuizImageUpload{
		URL:         url,
		Path:        path,
		ContentType: mimeType,
		Size:        file.Size,
	}, nil
}

// buildQuestionTree converts the request payload into fresh entities. All
// identities are regenerated on insert; points below 1 take the default.
func buildQuestionTree(reqs []QuizQuestionReq) []model.QuizQuestion {
	questions := make([]model.QuizQuestion, 0, len(reqs))
	for _, qr := range reqs {
		points := qr.Points
		if points < 1 {
			points = 1
		}
		q := model.QuizQuestion{
			Position: qr.Position,
			Prompt:   qr.Prompt,
			Points:   points,
			ImageURL: qr.ImageURL,
		}
		for _, or := range qr.Options {
			q.Options = append(q.Options, model.QuizOption{
				Position:  or.Position,
				Content:   or.Content,
				IsCorrect: or.IsCorrect,
				ImageURL:  or.ImageURL,
			})
		}
		questions = append(questions, q)
	}
	return questions
}

func checkTransition(from, to model.Status) error {
	if from == to {
		return nil
	}
	switch from {
	case model.StatusDraft:
		return nil // Draft may move to Published or Archived
	case model.StatusPublished:
		if to == model.StatusArchived {
			return nil
		}
	}
	return util.ErrInvalidTransition
}

func (s *QuizService) cachedLearnerView(ctx context.Context, quizID string) *LearnerQuizView {
	if s.Redis == nil {
		return nil
	}
	val, err := s.Redis.Get(ctx, learnerViewKeyPrefix+quizID).Result()
	if err != nil {
		return nil
	}
	var view LearnerQuizView
	if err := json.Unmarshal([]byte(val), &view); err != nil {
		return nil
	}
	return &view
}

func (s *QuizService) cacheLearnerView(ctx context.Context, quizID string, view *LearnerQuizView) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, learnerViewKeyPrefix+quizID, data, learnerViewTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache learner view", zap.String("quizId", quizID), zap.Error(err))
	}
}

func (s *QuizService) invalidateLearnerView(ctx context.Context, quizID string) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(ctx, learnerViewKeyPrefix+quizID)
}
