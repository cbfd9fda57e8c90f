package controller

import (
	"io"

	"course_hub_backend/internal/service"
	"course_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	Service *service.LessonService
}

func NewLessonController(svc *service.LessonService) *LessonController {
	return &LessonController{Service: svc}
}

// @Summary List published lessons of a chapter
// @Tags lesson
// @Produce json
// @Param chapterId path string true "Chapter ID"
// @Success 200 {object} util.Response
// @Router /api/chapters/{chapterId}/lessons [get]
func (ctl *LessonController) List(c *gin.Context) {
	lessons, err := ctl.Service.ListByChapter(c.Param("chapterId"), true)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, lessons)
}

// @Summary Get a lesson by id or slug
// @Tags lesson
// @Produce json
// @Param lessonId path string true "Lesson ID or slug"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{lessonId} [get]
func (ctl *LessonController) Get(c *gin.Context) {
	lesson, err := ctl.Service.Get(c.Param("lessonId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, lesson)
}

// @Summary Get a lesson's markdown body
// @Tags lesson
// @Produce json
// @Param lessonId path string true "Lesson ID or slug"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{lessonId}/content [get]
func (ctl *LessonController) GetContent(c *gin.Context) {
	content, err := ctl.Service.GetContent(c.Request.Context(), c.Param("lessonId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, gin.H{"content": content})
}

// @Summary List lessons of a chapter (any status)
// @Tags lesson-admin
// @Produce json
// @Param chapterId path string true "Chapter ID"
// @Success 200 {object} util.Response
// @Router /api/admin/chapters/{chapterId}/lessons [get]
func (ctl *LessonController) ListAdmin(c *gin.Context) {
	lessons, err := ctl.Service.ListByChapter(c.Param("chapterId"), false)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, lessons)
}

// @Summary Create a lesson
// @Tags lesson-admin
// @Accept json
// @Produce json
// @Param chapterId path string true "Chapter ID"
// @Param body body service.LessonCreateReq true "Lesson"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/admin/chapters/{chapterId}/lessons [post]
func (ctl *LessonController) Create(c *gin.Context) {
	var req service.LessonCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	lesson, err := ctl.Service.Create(c.Param("chapterId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, lesson)
}

// @Summary Update a lesson
// @Tags lesson-admin
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Param body body service.LessonUpdateReq true "Partial update"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/lessons/{lessonId} [put]
func (ctl *LessonController) Update(c *gin.Context) {
	var req service.LessonUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	lesson, err := ctl.Service.Update(c.Param("lessonId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, lesson)
}

// @Summary Replace a lesson's markdown body
// @Tags lesson-admin
// @Accept text/markdown
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/lessons/{lessonId}/content [put]
func (ctl *LessonController) UploadContent(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		util.BadRequest(c, "failed to read request body")
		return
	}
	if len(body) == 0 {
		util.BadRequest(c, "content body is required")
		return
	}

	lesson, err := ctl.Service.UploadContent(c.Request.Context(), c.Param("lessonId"), body)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, lesson)
}

// @Summary Delete a lesson and its stored content
// @Tags lesson-admin
// @Param lessonId path string true "Lesson ID"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/admin/lessons/{lessonId} [delete]
func (ctl *LessonController) Delete(c *gin.Context) {
	removed, err := ctl.Service.Delete(c.Request.Context(), c.Param("lessonId"))
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
