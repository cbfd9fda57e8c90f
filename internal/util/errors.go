package util

import "errors"

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrChapterNotFound    = errors.New("chapter not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuizNotPublished   = errors.New("quiz not published or not accessible")
	ErrChapterQuizExists  = errors.New("a quiz already exists for this chapter")
	ErrCourseQuizExists   = errors.New("a course-level quiz already exists for this course")
	ErrSlugTaken          = errors.New("slug already in use")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrInvalidFileType    = errors.New("invalid file type")
	ErrFileTooLarge       = errors.New("file too large")
	ErrLessonContentEmpty = errors.New("lesson has no stored content")
)
