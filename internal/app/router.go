package app

import (
	"course_hub_backend/docs"
	"course_hub_backend/internal/middleware"
	"course_hub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerLearnerRoutes(router, c)
	a.registerAdminRoutes(router, c)
}

// registerLearnerRoutes is the delivery surface: published content only,
// quizzes always projected through the learner view.
func (a *App) registerLearnerRoutes(router *gin.Engine, c *controllers) {
	api := router.Group("/api")
	api.Use(middleware.Identity(a.Config))
	{
		api.GET("/health", c.health.HealthCheck)

		courses := api.Group("/courses")
		{
			courses.GET("", c.course.List)
			courses.GET("/:courseId", c.course.Get)
			courses.GET("/:courseId/chapters", c.chapter.List)
			courses.GET("/:courseId/quizzes", c.quiz.GetCourseQuizzes)
			courses.GET("/:courseId/quiz", c.quiz.GetCourseQuiz)
			courses.GET("/:courseId/chapters/:chapterId/quiz", c.quiz.GetChapterQuiz)
		}

		chapters := api.Group("/chapters")
		{
			chapters.GET("/:chapterId", c.chapter.Get)
			chapters.GET("/:chapterId/lessons", c.lesson.List)
		}

		lessons := api.Group("/lessons")
		{
			lessons.GET("/:lessonId", c.lesson.Get)
			lessons.GET("/:lessonId/content", c.lesson.GetContent)
		}

		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("/:quizId", c.quiz.GetQuiz)
			quizzes.POST("/:quizId/attempts", c.quiz.SubmitAttempt)
			quizzes.GET("/:quizId/attempts/me", c.quiz.GetMyAttempts)
		}

		api.GET("/users/:userId/attempts", c.quiz.GetUserAttempts)
	}
}

// registerAdminRoutes is the authoring surface: full entities with answer
// keys, every status visible.
func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.Identity(a.Config))
	{
		courses := admin.Group("/courses")
		{
			courses.GET("", c.course.ListAdmin)
			courses.POST("", c.course.Create)
			courses.PUT("/:courseId", c.course.Update)
			courses.DELETE("/:courseId", c.course.Delete)

			courses.GET("/:courseId/chapters", c.chapter.ListAdmin)
			courses.POST("/:courseId/chapters", c.chapter.Create)

			courses.GET("/:courseId/quizzes", c.quizAdmin.ListCourseQuizzes)
			courses.GET("/:courseId/quiz", c.quizAdmin.GetCourseQuiz)
			courses.POST("/:courseId/quiz", c.quizAdmin.CreateDraft)
			courses.GET("/:courseId/chapters/:chapterId/quizzes", c.quizAdmin.ListChapterQuizzes)
			courses.GET("/:courseId/chapters/:chapterId/quiz", c.quizAdmin.GetChapterQuiz)
			courses.POST("/:courseId/chapters/:chapterId/quiz", c.quizAdmin.CreateChapterDraft)
		}

		chapters := admin.Group("/chapters")
		{
			chapters.PUT("/:chapterId", c.chapter.Update)
			chapters.DELETE("/:chapterId", c.chapter.Delete)

			chapters.GET("/:chapterId/lessons", c.lesson.ListAdmin)
			chapters.POST("/:chapterId/lessons", c.lesson.Create)
		}

		lessons := admin.Group("/lessons")
		{
			lessons.PUT("/:lessonId", c.lesson.Update)
			lessons.DELETE("/:lessonId", c.lesson.Delete)
			lessons.PUT("/:lessonId/content", c.lesson.UploadContent)
		}

		quizzes := admin.Group("/quizzes")
		{
			quizzes.GET("/:quizId", c.quizAdmin.GetQuiz)
			quizzes.PUT("/:quizId", c.quizAdmin.UpdateQuiz)
			quizzes.DELETE("/:quizId", c.quizAdmin.DeleteQuiz)
			quizzes.POST("/:quizId/publish", c.quizAdmin.Publish)
			quizzes.POST("/:quizId/archive", c.quizAdmin.Archive)
			quizzes.GET("/:quizId/analytics", c.quizAdmin.Analytics)
			quizzes.POST("/:quizId/upload", c.quizAdmin.UploadImage)
		}
	}
}
