package controllers

import (
	"errors"
	"net/http"

	dbpkg "hypatia/db"
	"hypatia/models"
	"hypatia/recommend"

	"github.com/gin-gonic/gin"
)

// GET /api/papers?skip=&limit=
// Lista os papers do usuário logado.
func GetPapers(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	skip := QueryInt(c, "skip", 0)
	limit := QueryInt(c, "limit", 50)
	if limit > 200 {
		limit = 200
	}

	var papers []models.Paper
	if err := db.Preload("Concepts").
		Where("user_id = ?", user.ID).
		Order("id desc").
		Offset(skip).Limit(limit).
		Find(&papers).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"papers": papers})
}

// GET /api/papers/:id
func GetPaperByID(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var paper models.Paper
	if err := db.Preload("Concepts").First(&paper, id).Error; err != nil {
		RespondError(c, "paper não encontrado", http.StatusNotFound)
		return
	}
	if !paper.IsPublic && paper.UserID != user.ID {
		RespondError(c, "paper não encontrado", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"paper": paper})
}

// POST /api/papers
func CreatePaper(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var paper models.Paper
	if err := c.Bind(&paper); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := paper.MissingFields(); missing != "" {
		RespondError(c, missing+" é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	paper.ID = 0
	paper.UserID = user.ID
	if paper.Source == "" {
		paper.Source = models.PAPER_SOURCE_MANUAL
	}

	if err := db.Create(&paper).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"paper": paper})
}

// PUT /api/papers/:id
func UpdatePaper(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Paper
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var paper models.Paper
	if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&paper).Error; err != nil {
		RespondError(c, "paper não encontrado", http.StatusNotFound)
		return
	}

	if body.Title != "" {
		paper.Title = body.Title
	}
	if body.Authors != "" {
		paper.Authors = body.Authors
	}
	if body.Abstract != "" {
		paper.Abstract = body.Abstract
	}
	if body.DOI != "" {
		paper.DOI = body.DOI
	}
	if body.ArxivID != "" {
		paper.ArxivID = body.ArxivID
	}
	if body.URL != "" {
		paper.URL = body.URL
	}
	if body.Venue != "" {
		paper.Venue = body.Venue
	}
	if body.JournalID != 0 {
		paper.JournalID = body.JournalID
	}
	if body.Year != 0 {
		paper.Year = body.Year
	}
	if body.PublicationDate != nil {
		paper.PublicationDate = body.PublicationDate
	}
	if body.CitationCount != 0 {
		paper.CitationCount = body.CitationCount
	}
	if body.ProjectID != 0 {
		paper.ProjectID = body.ProjectID
	}
	paper.IsPublic = body.IsPublic

	if err := db.Save(&paper).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"paper": paper})
}

// DELETE /api/papers/:id
func DeletePaper(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var paper models.Paper
	if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&paper).Error; err != nil {
		RespondError(c, "paper não encontrado", http.StatusNotFound)
		return
	}

	if err := db.Delete(&paper).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"status": "deleted"})
}

// GET /api/papers/:id/similar?limit=
// Papers públicos mais parecidos, com o detalhamento por dimensão.
func GetSimilarPapers(c *gin.Context) {
	_, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	limit := QueryInt(c, "limit", 10)

	similar, err := recommender.SimilarPapers(db, id, limit)
	if err != nil {
		if errors.Is(err, recommend.ErrPaperNotFound) {
			RespondError(c, "paper não encontrado", http.StatusNotFound)
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"similar": similar})
}

// POST /api/papers/:id/concepts/:conceptId
func AttachPaperConcept(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	conceptID, ok := ParamID(c, "conceptId")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var paper models.Paper
	if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&paper).Error; err != nil {
		RespondError(c, "paper não encontrado", http.StatusNotFound)
		return
	}

	var concept models.Concept
	if err := db.First(&concept, conceptID).Error; err != nil {
		RespondError(c, "conceito não encontrado", http.StatusNotFound)
		return
	}

	if err := db.Model(&paper).Association("Concepts").Append(&concept).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	recommender.InvalidateUser(user.ID)

	RespondSuccess(c, gin.H{"paper_id": paper.ID, "concept_id": concept.ID})
}

// DELETE /api/papers/:id/concepts/:conceptId
func DetachPaperConcept(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	conceptID, ok := ParamID(c, "conceptId")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var paper models.Paper
	if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&paper).Error; err != nil {
		RespondError(c, "paper não encontrado", http.StatusNotFound)
		return
	}

	var concept models.Concept
	if err := db.First(&concept, conceptID).Error; err != nil {
		RespondError(c, "conceito não encontrado", http.StatusNotFound)
		return
	}

	if err := db.Model(&paper).Association("Concepts").Delete(&concept).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	recommender.InvalidateUser(user.ID)

	RespondSuccess(c, gin.H{"status": "detached"})
}
