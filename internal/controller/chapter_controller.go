package controller

import (
	"course_hub_backend/internal/service"
	"course_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChapterController struct {
	Service *service.ChapterService
}

func NewChapterController(svc *service.ChapterService) *ChapterController {
	return &ChapterController{Service: svc}
}

// @Summary List published chapters of a course
// @Tags chapter
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId}/chapters [get]
func (ctl *ChapterController) List(c *gin.Context) {
	chapters, err := ctl.Service.ListByCourse(c.Param("courseId"), true)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, chapters)
}

// @Summary Get a chapter
// @Tags chapter
// @Produce json
// @Param chapterId path string true "Chapter ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/chapters/{chapterId} [get]
func (ctl *ChapterController) Get(c *gin.Context) {
	chapter, err := ctl.Service.Get(c.Param("chapterId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, chapter)
}

// @Summary List chapters of a course (any status)
// @Tags chapter-admin
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{courseId}/chapters [get]
func (ctl *ChapterController) ListAdmin(c *gin.Context) {
	chapters, err := ctl.Service.ListByCourse(c.Param("courseId"), false)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, chapters)
}

// @Summary Create a chapter
// @Tags chapter-admin
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param body body service.ChapterCreateReq true "Chapter"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/admin/courses/{courseId}/chapters [post]
func (ctl *ChapterController) Create(c *gin.Context) {
	var req service.ChapterCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	chapter, err := ctl.Service.Create(c.Param("courseId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, chapter)
}

// @Summary Update a chapter
// @Tags chapter-admin
// @Accept json
// @Produce json
// @Param chapterId path string true "Chapter ID"
// @Param body body service.ChapterUpdateReq true "Partial update"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/chapters/{chapterId} [put]
func (ctl *ChapterController) Update(c *gin.Context) {
	var req service.ChapterUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	chapter, err := ctl.Service.Update(c.Param("chapterId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, chapter)
}

// @Summary Delete a chapter, its lessons and its quiz
// @Tags chapter-admin
// @Param chapterId path string true "Chapter ID"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/admin/chapters/{chapterId} [delete]
func (ctl *ChapterController) Delete(c *gin.Context) {
	removed, err := ctl.Service.Delete(c.Param("chapterId"))
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
