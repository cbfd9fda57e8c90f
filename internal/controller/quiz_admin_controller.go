package controller

import (
	"course_hub_backend/internal/config"
	"course_hub_backend/internal/service"
	"course_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// QuizAdminController serves the authoring surface. Responses carry the
// author-complete entity including answer keys.
type QuizAdminController struct {
	QuizService    *service.QuizService
	GradingService *service.GradingService
	Cfg            *config.Config
}

func NewQuizAdminController(quizService *service.QuizService, gradingService *service.GradingService, cfg *config.Config) *QuizAdminController {
	return &QuizAdminController{QuizService: quizService, GradingService: gradingService, Cfg: cfg}
}

// @Summary List all quizzes for a course (any status)
// @Tags quiz-admin
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{courseId}/quizzes [get]
func (ctl *QuizAdminController) ListCourseQuizzes(c *gin.Context) {
	quizzes, err := ctl.QuizService.ListByCourseAdmin(c.Param("courseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, quizzes)
}

// @Summary List quizzes for a chapter (any status)
// @Tags quiz-admin
// @Produce json
// @Param courseId path string true "Course ID"
// @Param chapterId path string true "Chapter ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{courseId}/chapters/{chapterId}/quizzes [get]
func (ctl *QuizAdminController) ListChapterQuizzes(c *gin.Context) {
	quizzes, err := ctl.QuizService.ListByChapterAdmin(c.Param("courseId"), c.Param("chapterId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, quizzes)
}

// @Summary Get the course-level quiz (any status)
// @Tags quiz-admin
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/courses/{courseId}/quiz [get]
func (ctl *QuizAdminController) GetCourseQuiz(c *gin.Context) {
	quiz, err := ctl.QuizService.GetCourseLevelAdmin(c.Param("courseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, quiz)
}

// @Summary Get the chapter quiz (any status)
// @Tags quiz-admin
// @Produce json
// @Param courseId path string true "Course ID"
// @Param chapterId path string true "Chapter ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/courses/{courseId}/chapters/{chapterId}/quiz [get]
func (ctl *QuizAdminController) GetChapterQuiz(c *gin.Context) {
	quiz, err := ctl.QuizService.GetChapterAdmin(c.Param("courseId"), c.Param("chapterId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, quiz)
}

// @Summary Create a course-level quiz draft
// @Tags quiz-admin
// @Produce json
// @Param courseId path string true "Course ID"
// @Param title query string false "Quiz title" default(Untitled Quiz)
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/admin/courses/{courseId}/quiz [post]
func (ctl *QuizAdminController) CreateDraft(c *gin.Context) {
	title := c.DefaultQuery("title", "Untitled Quiz")

	quiz, err := ctl.QuizService.CreateDraft(c.Param("courseId"), title)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, quiz)
}

// @Summary Create a chapter quiz draft
// @Tags quiz-admin
// @Produce json
// @Param courseId path string true "Course ID"
// @Param chapterId path string true "Chapter ID"
// @Param title query string false "Quiz title" default(Chapter Quiz)
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/admin/courses/{courseId}/chapters/{chapterId}/quiz [post]
func (ctl *QuizAdminController) CreateChapterDraft(c *gin.Context) {
	title := c.DefaultQuery("title", "Chapter Quiz")

	quiz, err := ctl.QuizService.CreateChapterDraft(c.Param("courseId"), c.Param("chapterId"), title)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, quiz)
}

// @Summary Get a quiz with its full question tree (any status)
// @Tags quiz-admin
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/quizzes/{quizId} [get]
func (ctl *QuizAdminController) GetQuiz(c *gin.Context) {
	quiz, err := ctl.QuizService.GetQuizTree(c.Param("quizId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, quiz)
}

// @Summary Update quiz meta and/or replace its question tree
// @Tags quiz-admin
// @Accept json
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Param body body service.QuizUpdateReq true "Partial update; questions, when present, replace the whole tree"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/quizzes/{quizId} [put]
func (ctl *QuizAdminController) UpdateQuiz(c *gin.Context) {
	var req service.QuizUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	quiz, err := ctl.QuizService.UpdateQuiz(c.Param("quizId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, quiz)
}

// @Summary Publish a quiz
// @Tags quiz-admin
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/admin/quizzes/{quizId}/publish [post]
func (ctl *QuizAdminController) Publish(c *gin.Context) {
	quiz, err := ctl.QuizService.Publish(c.Param("quizId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, quiz)
}

// @Summary Archive a quiz
// @Tags quiz-admin
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/admin/quizzes/{quizId}/archive [post]
func (ctl *QuizAdminController) Archive(c *gin.Context) {
	quiz, err := ctl.QuizService.Archive(c.Param("quizId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, quiz)
}

// @Summary Delete a quiz and everything it owns
// @Tags quiz-admin
// @Param quizId path string true "Quiz ID"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/admin/quizzes/{quizId} [delete]
func (ctl *QuizAdminController) DeleteQuiz(c *gin.Context) {
	removed, err := ctl.QuizService.DeleteQuiz(c.Param("quizId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !removed {
		util.NotFound(c)
		return
	}
	util.NoContent(c)
}

// @Summary List raw attempts for a quiz
// @Tags quiz-admin
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{quizId}/analytics [get]
func (ctl *QuizAdminController) Analytics(c *gin.Context) {
	attempts, err := ctl.GradingService.ListQuizAttempts(c.Param("quizId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, attempts)
}

// @Summary Upload an image for a quiz question or option
// @Tags quiz-admin
// @Accept multipart/form-data
// @Produce json
// @Param quizId path string true "Quiz ID"
// @Param file formData file true "Image file (png/jpeg/webp/gif, max 5MB)"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/admin/quizzes/{quizId}/upload [post]
func (ctl *QuizAdminController) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}

	upload, err := ctl.QuizService.UploadImage(c.Request.Context(), c.Param("quizId"), file, ctl.Cfg.Upload.MaxImageSizeMB)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, upload)
}
