package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"motionscope/training-api/internal/domain"
	"motionscope/training-api/internal/service"
)

// SetupRoutes wires every handler under /api. Everything except register,
// login and ping runs behind the token middleware; role middleware narrows
// coach-only and athlete-only groups.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	rosterService service.RosterService,
	exerciseService service.ExerciseService,
	blockService service.BlockService,
	compDayService service.CompDayService,
	programService service.ProgramService,
	templateService service.TemplateService,
	questionnaireService service.QuestionnaireService,
) {
	authHandler := NewAuthHandler(authService)
	rosterHandler := NewRosterHandler(rosterService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	blockHandler := NewBlockHandler(blockService)
	compDayHandler := NewCompDayHandler(compDayService)
	programHandler := NewProgramHandler(programService)
	templateHandler := NewTemplateHandler(templateService)
	questionnaireHandler := NewQuestionnaireHandler(questionnaireService)

	authMiddleware := AuthMiddleware(jwtSecret)
	coachOnly := RoleMiddleware(domain.RoleCoach)
	athleteOnly := RoleMiddleware(domain.RoleAthlete)
	developerOnly := RoleMiddleware(domain.RoleDeveloper)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/users", authHandler.Register)
		apiGroup.POST("/auth", authHandler.Login)
	}

	protected := apiGroup.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/users/me", authHandler.Me)

		// --- Roster ---
		rosterGroup := protected.Group("/roster")
		{
			rosterGroup.GET("", coachOnly, rosterHandler.ListRoster)
			rosterGroup.PUT("/:athleteId", coachOnly, rosterHandler.AddAthlete)
			rosterGroup.DELETE("/:athleteId", coachOnly, rosterHandler.RemoveAthlete)
		}
		// Athlete-initiated removal lives under its own path; the router
		// cannot mix a static segment with the :athleteId wildcard above.
		protected.DELETE("/coaches/:coachId/roster", athleteOnly, rosterHandler.LeaveCoach)

		// --- Exercise catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", coachOnly, exerciseHandler.List)
			exerciseGroup.GET("/:id", exerciseHandler.Get)
			exerciseGroup.PUT("/:id", exerciseHandler.Update)
			exerciseGroup.DELETE("/:id", exerciseHandler.Delete)

			// Demonstration video flow.
			exerciseGroup.POST("/:id/video", exerciseHandler.RequestVideoUpload)
			exerciseGroup.PUT("/:id/video", exerciseHandler.ConfirmVideoUpload)
			exerciseGroup.GET("/:id/video", exerciseHandler.VideoDownloadURL)
		}
		protected.POST("/presetExercises", developerOnly, exerciseHandler.CreatePreset)
		protected.GET("/presetExercises", exerciseHandler.ListPresets)
		protected.POST("/customExercises", coachOnly, exerciseHandler.CreateCustom)
		protected.GET("/customExercises", coachOnly, exerciseHandler.ListCustom)

		// --- Blocks ---
		blockGroup := protected.Group("/blocks")
		{
			blockGroup.POST("", coachOnly, blockHandler.Create)
			blockGroup.GET("/:id", blockHandler.Get)
			blockGroup.PATCH("/:id", coachOnly, blockHandler.Patch)
			blockGroup.DELETE("/:id", coachOnly, blockHandler.Delete)

			blockGroup.PUT("/:id/weeks/:weekNumber", coachOnly, blockHandler.UpdateWeek)
			blockGroup.PUT("/:id/weeks/:weekNumber/days/:dayIndex", coachOnly, blockHandler.UpdateDay)
			blockGroup.POST("/:id/exercises", coachOnly, blockHandler.AddExercise)
			blockGroup.DELETE("/:id/exercises/:entryId", coachOnly, blockHandler.DeleteExercise)

			// Athlete logging.
			blockGroup.PATCH("/:id/exercises/:entryId/sets/:setId", athleteOnly, blockHandler.UpdateSet)
			blockGroup.POST("/:id/exercises/:entryId/warmups", athleteOnly, blockHandler.AddWarmupSet)
			blockGroup.DELETE("/:id/exercises/:entryId/warmups/:setId", athleteOnly, blockHandler.DeleteWarmupSet)
		}
		protected.GET("/athletes/:athleteId/blocks", blockHandler.ListForAthlete)

		// --- Competition days ---
		compDayGroup := protected.Group("/compDays")
		{
			compDayGroup.POST("", coachOnly, compDayHandler.Create)
			compDayGroup.GET("/:id", compDayHandler.Get)
			compDayGroup.PUT("/:id", coachOnly, compDayHandler.Update)
			compDayGroup.PATCH("/:id/attempts", athleteOnly, compDayHandler.MarkAttempt)
			compDayGroup.DELETE("/:id", coachOnly, compDayHandler.Delete)
		}

		// --- Programs ---
		programGroup := protected.Group("/programs")
		{
			programGroup.POST("", coachOnly, programHandler.Create)
			programGroup.GET("/current/:athleteId", programHandler.Current)
			programGroup.PATCH("/:id/archive", coachOnly, programHandler.SetArchived)
			programGroup.DELETE("/:id", coachOnly, programHandler.Delete)
		}

		// --- Block templates ---
		templateGroup := protected.Group("/blockTemplates")
		templateGroup.Use(coachOnly)
		{
			templateGroup.POST("", templateHandler.Create)
			templateGroup.GET("", templateHandler.List)
			templateGroup.GET("/:id", templateHandler.Get)
			templateGroup.DELETE("/:id", templateHandler.Delete)

			// Instantiate a template into a block for an athlete.
			templateGroup.POST("/:id/blocks", blockHandler.CreateFromTemplate)
		}

		// --- Questionnaire ---
		questionnaireGroup := protected.Group("/questionnaire")
		{
			questionnaireGroup.POST("", athleteOnly, questionnaireHandler.Submit)
			questionnaireGroup.GET("", athleteOnly, questionnaireHandler.GetOwn)
			questionnaireGroup.GET("/athlete/:athleteId", coachOnly, questionnaireHandler.GetForAthlete)
		}
	}
}
