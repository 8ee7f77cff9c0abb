package controllers

import (
	"net/http"

	dbpkg "hypatia/db"
	"hypatia/models"

	"github.com/gin-gonic/gin"
)

// GET /api/notes?skip=&limit=
func GetNotes(c *gin.Context) {
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

	var notes []models.Note
	if err := db.Preload("Concepts").
		Where("user_id = ?", user.ID).
		Order("id desc").
		Offset(skip).Limit(limit).
		Find(&notes).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"notes": notes})
}

// POST /api/notes
func CreateNote(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var note models.Note
	if err := c.Bind(&note); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if note.Content == "" {
		RespondError(c, "content é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if note.PaperID != 0 {
		var paper models.Paper
		if err := db.First(&paper, note.PaperID).Error; err != nil {
			RespondError(c, "paper não encontrado", http.StatusNotFound)
			return
		}
	}

	note.ID = 0
	note.UserID = user.ID
	if err := db.Create(&note).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"note": note})
}

// PUT /api/notes/:id
func UpdateNote(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Note
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var note models.Note
	if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&note).Error; err != nil {
		RespondError(c, "nota não encontrada", http.StatusNotFound)
		return
	}

	if body.Title != "" {
		note.Title = body.Title
	}
	if body.Content != "" {
		note.Content = body.Content
	}

	if err := db.Save(&note).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"note": note})
}

// DELETE /api/notes/:id
func DeleteNote(c *gin.Context) {
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

	var note models.Note
	if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&note).Error; err != nil {
		RespondError(c, "nota não encontrada", http.StatusNotFound)
		return
	}

	if err := db.Delete(&note).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"status": "deleted"})
}

// POST /api/notes/:id/concepts/:conceptId
// Conceitos anotados pesam no perfil de interesse do usuário.
func AttachNoteConcept(c *gin.Context) {
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

	var note models.Note
	if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&note).Error; err != nil {
		RespondError(c, "nota não encontrada", http.StatusNotFound)
		return
	}

	var concept models.Concept
	if err := db.First(&concept, conceptID).Error; err != nil {
		RespondError(c, "conceito não encontrado", http.StatusNotFound)
		return
	}

	if err := db.Model(&note).Association("Concepts").Append(&concept).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	recommender.InvalidateUser(user.ID)

	RespondSuccess(c, gin.H{"note_id": note.ID, "concept_id": concept.ID})
}
