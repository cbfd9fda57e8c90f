package controller

import (
	"course_hub_backend/internal/middleware"
	"course_hub_backend/internal/service"
	"course_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// QuizController serves the learner-facing quiz surface. Every quiz it
// returns goes through the learner projection; the full entity never
// reaches these responses.
type QuizController struct {
	QuizService    *service.QuizService
	GradingService *service.GradingService
}

func NewQuizController(quizService *service.QuizService, gradingService *service.GradingService) *QuizController {
	return &QuizController{QuizService: quizService, GradingService: gradingService}
}

// @Summary Get all published quizzes for a course
// @Tags quiz
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId}/quizzes [get]
func (ctl *QuizController) GetCourseQuizzes(c *gin.Context) {
	views, err := ctl.QuizService.ListPublishedByCourse(c.Param("courseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, views)
}

// @Summary Get the course-level published quiz
// @Tags quiz
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/quiz [get]
func (ctl *QuizController) GetCourseQuiz(c *gin.Context) {
	view, err := ctl.QuizService.GetCourseLevelPublished(c.Param("courseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, view)
}

// @Summary Get the published quiz for a chapter
// @Tags quiz
// @Produce json
// @Param courseId path string true "Course ID"
// @Param chapterId path string true "Chapter ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/chapters/{chapterId}/quiz [get]
func (ctl *QuizController) GetChapterQuiz(c *gin.Context) {
	view, err := ctl.QuizService.GetChapterPublished(c.Param("courseId"), c.Param("chapterId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, view)
}

// @Summary Get a published quiz by id
// @Tags quiz
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quizId} [get]
func (ctl *QuizController) GetQuiz(c *gin.Context) {
	view, err := ctl.QuizService.GetPublishedQuiz(c.Request.Context(), c.Param("quizId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, view)
}

// @Summary Submit a quiz attempt and get the graded result
// @Tags quiz
// @Accept json
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Param user_id query string false "Learner ID (when no token is supplied)"
// @Param body body service.AttemptSubmission true "Submitted answers"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{quizId}/attempts [post]
func (ctl *QuizController) SubmitAttempt(c *gin.Context) {
	userID := middleware.LearnerID(c)
	if userID == "" {
		util.BadRequest(c, "learner identity is required")
		return
	}

	var submission service.AttemptSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctl.GradingService.SubmitAttempt(c.Param("quizId"), userID, submission)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, result)
}

// @Summary Get my attempts for a quiz, most recent first
// @Tags quiz
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Param user_id query string false "Learner ID (when no token is supplied)"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{quizId}/attempts/me [get]
func (ctl *QuizController) GetMyAttempts(c *gin.Context) {
	userID := middleware.LearnerID(c)
	if userID == "" {
		util.BadRequest(c, "learner identity is required")
		return
	}

	attempts, err := ctl.GradingService.ListUserAttempts(c.Param("quizId"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, attempts)
}

// @Summary Get all attempts for a learner across quizzes
// @Tags quiz
// @Produce json
// @Param userId path string true "Learner ID"
// @Success 200 {object} util.Response
// @Router /api/users/{userId}/attempts [get]
func (ctl *QuizController) GetUserAttempts(c *gin.Context) {
	attempts, err := ctl.GradingService.ListAllUserAttempts(c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, attempts)
}
