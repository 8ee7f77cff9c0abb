package controllers

import (
	"net/http"
	"strings"

	dbpkg "hypatia/db"
	"hypatia/models"

	"github.com/gin-gonic/gin"
)

// GET /api/journals?category=&skip=&limit=
func GetJournals(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	skip := QueryInt(c, "skip", 0)
	limit := QueryInt(c, "limit", 100)
	if limit > 500 {
		limit = 500
	}

	query := db.Order("name asc")
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(category))
	}

	var journals []models.Journal
	if err := query.Offset(skip).Limit(limit).Find(&journals).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"journals": journals})
}

// GET /api/journals/:id
func GetJournalByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var journal models.Journal
	if err := db.First(&journal, id).Error; err != nil {
		RespondError(c, "periódico não encontrado", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"journal": journal})
}

// POST /api/journals
func CreateJournal(c *gin.Context) {
	var journal models.Journal
	if err := c.Bind(&journal); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := journal.MissingFields(); missing != "" {
		RespondError(c, missing+" é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	journal.ID = 0
	if err := db.Create(&journal).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"journal": journal})
}

// PUT /api/journals/:id
func UpdateJournal(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Journal
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var journal models.Journal
	if err := db.First(&journal, id).Error; err != nil {
		RespondError(c, "periódico não encontrado", http.StatusNotFound)
		return
	}

	if body.Name != "" {
		journal.Name = body.Name
	}
	if body.Abbreviation != "" {
		journal.Abbreviation = body.Abbreviation
	}
	if body.ISSN != "" {
		journal.ISSN = body.ISSN
	}
	if body.Ranking != "" {
		journal.Ranking = body.Ranking
	}
	if body.Category != "" {
		journal.Category = body.Category
	}
	if body.ImpactFactor > 0 {
		journal.ImpactFactor = body.ImpactFactor
	}
	if body.URL != "" {
		journal.URL = body.URL
	}

	if err := db.Save(&journal).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"journal": journal})
}

// DELETE /api/journals/:id
func DeleteJournal(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := db.Delete(&models.Journal{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"status": "deleted"})
}
