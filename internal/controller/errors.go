package controller

import (
	"course_hub_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

// respondError translates service errors into the HTTP taxonomy:
// 404 not-found-or-not-visible, 409 conflict, 400 validation, 500 storage.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrChapterNotFound),
		errors.Is(err, util.ErrLessonNotFound),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrQuizNotPublished),
		errors.Is(err, util.ErrLessonContentEmpty):
		util.NotFoundMessage(c, err.Error())
	case errors.Is(err, util.ErrChapterQuizExists),
		errors.Is(err, util.ErrCourseQuizExists),
		errors.Is(err, util.ErrSlugTaken):
		util.Conflict(c, err.Error())
	case errors.Is(err, util.ErrInvalidStatus),
		errors.Is(err, util.ErrInvalidTransition),
		errors.Is(err, util.ErrInvalidFileType),
		errors.Is(err, util.ErrFileTooLarge):
		util.BadRequest(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}
