package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lectio/backend/config"
	"lectio/backend/internal/api/handler"
	"lectio/backend/internal/api/middleware"
	"lectio/backend/internal/model"
	"lectio/backend/pkg/jwt"
	"lectio/backend/pkg/redis"
)

// Setup builds the Gin engine with all middleware and routes.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr))
	{
		// lesson scheduling
		lessons := v1.Group("/lessons")
		lessons.Use(middleware.RateLimit(rdb, 120, time.Minute))
		{
			lessons.GET("", h.Lesson.ListLessons)
			lessons.GET("/:id", h.Lesson.GetLesson)
			lessons.GET("/hours-info/:course_module_id", h.Lesson.GetHoursInfo)
			lessons.GET("/by-course/:course_id", h.Lesson.ListByCourse)
			lessons.GET("/by-trainer/:trainer_id", h.Lesson.ListByTrainer)
			lessons.GET("/by-classroom/:classroom_id", h.Lesson.ListByClassroom)
			lessons.POST("/validate", h.Lesson.ValidateLesson)
			lessons.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleTrainer), h.Lesson.CreateLessons)
			lessons.PUT("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleTrainer), h.Lesson.UpdateLesson)
			lessons.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Lesson.DeleteLesson)
		}

		// classroom reference data
		classrooms := v1.Group("/classrooms")
		{
			classrooms.GET("", h.Classroom.ListClassrooms)
			classrooms.GET("/:id", h.Classroom.GetClassroom)
		}

		// trainer availability
		availability := v1.Group("/availability")
		{
			availability.GET("/by-trainer/:trainer_id", h.Availability.ListByTrainer)
			availability.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleTrainer), h.Availability.CreateAvailability)
			availability.PUT("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleTrainer), h.Availability.UpdateAvailability)
			availability.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleTrainer), h.Availability.DeleteAvailability)
		}

		// schedule exports
		export := v1.Group("/export")
		export.Use(middleware.RateLimit(rdb, 20, time.Minute))
		{
			export.GET("/lessons/by-course/:course_id", h.Export.ExportCourseSchedule)
			export.GET("/lessons/by-trainer/:trainer_id/calendar", h.Export.ExportTrainerCalendar)
		}
	}

	return r
}
