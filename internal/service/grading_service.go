package service

import (
	"course_hub_backend/internal/model"
	"course_hub_backend/internal/repository"
	"course_hub_backend/pkg/logger"
	"course_hub_backend/pkg/monitoring"
	"errors"
	"time"

	"course_hub_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GradingService struct {
	QuizRepo *repository.QuizRepository
}

func NewGradingService(quizRepo *repository.QuizRepository) *GradingService {
	return &GradingService{QuizRepo: quizRepo}
}

type SubmittedAnswer struct {
	QuestionID       string `json:"question_id" binding:"required"`
	SelectedOptionID string `json:"selected_option_id" binding:"required"`
}

type AttemptSubmission struct {
	Answers []SubmittedAnswer `json:"answers" binding:"required"`
}

type GradedAnswer struct {
	QuestionID       string `json:"question_id"`
	SelectedOptionID string `json:"selected_option_id"`
	IsCorrect        bool   `json:"is_correct"`
	EarnedPoints     int    `json:"earned_points"`
}

type AttemptResult struct {
	AttemptID string         `json:"attempt_id"`
	Score     int            `json:"score"`
	MaxScore  int            `json:"max_score"`
	Percent   int            `json:"percent"`
	Passed    bool           `json:"passed"`
	Breakdown []GradedAnswer `json:"breakdown"`
}

// Grade computes per-answer correctness and aggregate totals for a quiz.
// Answers referencing question ids the quiz does not contain are dropped
// silently: stale client state is tolerated, not rejected. A question with
// no correct option can never be answered correctly.
func Grade(quiz *model.Quiz, answers []SubmittedAnswer) (graded []GradedAnswer, score, maxScore, percent int, passed bool) {
	questions := make(map[string]*model.QuizQuestion, len(quiz.Questions))
	for i := range quiz.Questions {
		questions[quiz.Questions[i].ID] = &quiz.Questions[i]
		maxScore += quiz.Questions[i].Points
	}

	graded = make([]GradedAnswer, 0, len(answers))
	for _, ans := range answers {
		q, ok := questions[ans.QuestionID]
		if !ok {
			continue
		}

		var correctOption *model.QuizOption
		for j := range q.Options {
			if q.Options[j].IsCorrect {
				correctOption = &q.Options[j]
				break
			}
		}

		isCorrect := correctOption != nil && ans.SelectedOptionID == correctOption.ID
		earned := 0
		if isCorrect {
			earned = q.Points
		}
		score += earned

		graded = append(graded, GradedAnswer{
			QuestionID:       ans.QuestionID,
			SelectedOptionID: ans.SelectedOptionID,
			IsCorrect:        isCorrect,
			EarnedPoints:     earned,
		})
	}

	if maxScore > 0 {
		percent = score * 100 / maxScore
	}
	passed = percent >= quiz.PassingScorePercent
	return graded, score, maxScore, percent, passed
}

// SubmitAttempt grades a submission against the published quiz and persists
// the attempt with its answer breakdown.
func (s *GradingService) SubmitAttempt(quizID, userID string, submission AttemptSubmission) (*AttemptResult, error) {
	quiz, err := s.QuizRepo.FindQuizTree(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotPublished
		}
		return nil, err
	}
	if quiz.Status != model.StatusPublished {
		return nil, util.ErrQuizNotPublished
	}

	graded, score, maxScore, percent, passed := Grade(quiz, submission.Answers)

	now := time.Now()
	attempt := &model.QuizAttempt{
		QuizID:      quizID,
		UserID:      userID,
		Score:       0,
		MaxScore:    maxScore,
		Percent:     0,
		Passed:      false,
		StartedAt:   now,
		SubmittedAt: now,
	}

	answers := make([]model.QuizAttemptAnswer, 0, len(graded))
	for _, g := range graded {
		answers = append(answers, model.QuizAttemptAnswer{
			QuestionID:       g.QuestionID,
			SelectedOptionID: g.SelectedOptionID,
			IsCorrect:        g.IsCorrect,
			EarnedPoints:     g.EarnedPoints,
		})
	}

	if err := s.QuizRepo.SaveGradedAttempt(attempt, answers, score, percent, passed); err != nil {
		return nil, err
	}

	monitoring.ObserveAttempt(passed)
	logger.Log.Info("quiz attempt graded",
		zap.String("quizId", quizID),
		zap.String("userId", userID),
		zap.Int("score", score),
		zap.Int("maxScore", maxScore),
		zap.Bool("passed", passed),
	)

	return &AttemptResult{
		AttemptID: attempt.ID,
		Score:     score,
		MaxScore:  maxScore,
		Percent:   percent,
		Passed:    passed,
		Breakdown: graded,
	}, nil
}

func (s *GradingService) ListUserAttempts(quizID, userID string) ([]model.QuizAttempt, error) {
	return s.QuizRepo.ListAttemptsByQuizAndUser(quizID, userID)
}

func (s *GradingService) ListAllUserAttempts(userID string) ([]model.QuizAttempt, error) {
	return s.QuizRepo.ListAttemptsByUser(userID)
}

func (s *GradingService) ListQuizAttempts(quizID string) ([]model.QuizAttempt, error) {
	return s.QuizRepo.ListAttemptsByQuiz(quizID)
}
