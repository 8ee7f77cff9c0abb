package controllers

import (
	"net/http"

	dbpkg "hypatia/db"
	"hypatia/models"

	"github.com/gin-gonic/gin"
)

// GET /api/concepts?skip=&limit=
func GetConcepts(c *gin.Context) {
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

	var concepts []models.Concept
	if err := db.Order("name asc").
		Offset(skip).Limit(limit).
		Find(&concepts).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"concepts": concepts})
}

// POST /api/concepts
// Nome é único: recriar um conceito existente devolve o registro atual.
func CreateConcept(c *gin.Context) {
	var concept models.Concept
	if err := c.Bind(&concept); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := concept.MissingFields(); missing != "" {
		RespondError(c, missing+" é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var existing models.Concept
	if err := db.Where("name = ?", concept.Name).First(&existing).Error; err == nil {
		RespondSuccess(c, gin.H{"concept": existing})
		return
	}

	concept.ID = 0
	if err := db.Create(&concept).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"concept": concept})
}

// DELETE /api/concepts/:id
func DeleteConcept(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var concept models.Concept
	if err := db.First(&concept, id).Error; err != nil {
		RespondError(c, "conceito não encontrado", http.StatusNotFound)
		return
	}

	if err := db.Delete(&concept).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"status": "deleted"})
}
