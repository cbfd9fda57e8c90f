package controller

import (
	"course_hub_backend/internal/service"
	"course_hub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Service *service.CourseService
}

func NewCourseController(svc *service.CourseService) *CourseController {
	return &CourseController{Service: svc}
}

// @Summary List published courses
// @Tags course
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (ctl *CourseController) List(c *gin.Context) {
	courses, err := ctl.Service.List(true)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, courses)
}

// @Summary Get a course by id or slug
// @Tags course
// @Produce json
// @Param id path string true "Course ID or slug"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (ctl *CourseController) Get(c *gin.Context) {
	course, err := ctl.Service.Get(c.Param("courseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, course)
}

// @Summary List all courses (any status)
// @Tags course-admin
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/admin/courses [get]
func (ctl *CourseController) ListAdmin(c *gin.Context) {
	courses, err := ctl.Service.List(false)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, courses)
}

// @Summary Create a course
// @Tags course-admin
// @Accept json
// @Produce json
// @Param body body service.CourseCreateReq true "Course"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/admin/courses [post]
func (ctl *CourseController) Create(c *gin.Context) {
	var req service.CourseCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.Service.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, course)
}

// @Summary Update a course
// @Tags course-admin
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param body body service.CourseUpdateReq true "Partial update"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/courses/{courseId} [put]
func (ctl *CourseController) Update(c *gin.Context) {
	var req service.CourseUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.Service.Update(c.Param("courseId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, course)
}

// @Summary Delete a course and everything under it
// @Tags course-admin
// @Param courseId path string true "Course ID"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/admin/courses/{courseId} [delete]
func (ctl *CourseController) Delete(c *gin.Context) {
	removed, err := ctl.Service.Delete(c.Param("courseId"))
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
