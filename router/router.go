package router

import (
	"log"

	"hypatia/config"
	"hypatia/controllers"
	"hypatia/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares.
// Rotas públicas + rotas identificadas (X-User-ID) + rotas admin.
func Initialize(r *gin.Engine, cfg config.Configuration) {
	_ = cfg

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")

	// Public (no identity)
	api.POST("/users", Logger(), controllers.CreateUser)

	// Identified routes (X-User-ID header resolved by the gateway)
	auth := api.Group("")
	auth.Use(controllers.Identify())

	// Validated routes (identity + active user)
	validated := auth.Group("")
	validated.Use(Authorizer())

	validated.GET("/me", Logger(), controllers.GetMe)
	validated.PUT("/me", Logger(), controllers.UpdateMe)

	// Papers
	validated.GET("/papers", Logger(), controllers.GetPapers)
	validated.GET("/papers/:id", Logger(), controllers.GetPaperByID)
	validated.POST("/papers", Logger(), controllers.CreatePaper)
	validated.PUT("/papers/:id", Logger(), controllers.UpdatePaper)
	validated.DELETE("/papers/:id", Logger(), controllers.DeletePaper)
	validated.GET("/papers/:id/similar", Logger(), controllers.GetSimilarPapers)
	validated.POST("/papers/:id/concepts/:conceptId", Logger(), controllers.AttachPaperConcept)
	validated.DELETE("/papers/:id/concepts/:conceptId", Logger(), controllers.DetachPaperConcept)

	// Notes
	validated.GET("/notes", Logger(), controllers.GetNotes)
	validated.POST("/notes", Logger(), controllers.CreateNote)
	validated.PUT("/notes/:id", Logger(), controllers.UpdateNote)
	validated.DELETE("/notes/:id", Logger(), controllers.DeleteNote)
	validated.POST("/notes/:id/concepts/:conceptId", Logger(), controllers.AttachNoteConcept)

	// Concepts (leitura)
	validated.GET("/concepts", Logger(), controllers.GetConcepts)

	// Journals (leitura)
	validated.GET("/journals", Logger(), controllers.GetJournals)
	validated.GET("/journals/:id", Logger(), controllers.GetJournalByID)

	// Projects
	validated.GET("/projects", Logger(), controllers.GetProjects)
	validated.POST("/projects", Logger(), controllers.CreateProject)
	validated.PUT("/projects/:id", Logger(), controllers.UpdateProject)
	validated.DELETE("/projects/:id", Logger(), controllers.DeleteProject)

	// Explicit interests
	validated.PUT("/interests/:conceptId", Logger(), controllers.DeclareInterest)
	validated.DELETE("/interests/:conceptId", Logger(), controllers.RemoveInterest)

	// Reading history
	validated.GET("/history", Logger(), controllers.GetReadingHistory)
	validated.POST("/history", Logger(), controllers.CreateReadingHistory)

	// Recommendations
	validated.GET("/recommendations", Logger(), controllers.GetRecommendations)
	validated.POST("/recommendations/refresh", Logger(), controllers.RefreshRecommendations)
	validated.PUT("/recommendations/:id/read", Logger(), controllers.MarkRecommendationRead)
	validated.GET("/recommendations/random", Logger(), controllers.GetRandomRecommendations)
	validated.GET("/recommendations/interests", Logger(), controllers.GetInterestSummary)
	validated.GET("/recommendations/statistics", Logger(), controllers.GetRecommendationStatistics)

	// Admin routes (catálogo compartilhado)
	admin := validated.Group("")
	admin.Use(Adminizer())

	admin.POST("/concepts", Logger(), controllers.CreateConcept)
	admin.DELETE("/concepts/:id", Logger(), controllers.DeleteConcept)

	admin.POST("/journals", Logger(), controllers.CreateJournal)
	admin.PUT("/journals/:id", Logger(), controllers.UpdateJournal)
	admin.DELETE("/journals/:id", Logger(), controllers.DeleteJournal)

	log.Printf("Routes initialized")
}
