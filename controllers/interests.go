package controllers

import (
	"net/http"

	dbpkg "hypatia/db"
	"hypatia/models"

	"github.com/gin-gonic/gin"
)

type DeclareInterestRequest struct {
	Weight float64 `json:"weight" form:"weight"`
}

// PUT /api/interests/:conceptId
// Declara (ou atualiza) o interesse explícito num conceito. Upsert:
// só existe 1 linha por (user, concept).
func DeclareInterest(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	conceptID, ok := ParamID(c, "conceptId")
	if !ok {
		return
	}

	var body DeclareInterestRequest
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Weight < 0 {
		RespondError(c, "weight deve ser >= 0", http.StatusBadRequest)
		return
	}
	if body.Weight == 0 {
		body.Weight = 1.0
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var concept models.Concept
	if err := db.First(&concept, conceptID).Error; err != nil {
		RespondError(c, "conceito não encontrado", http.StatusNotFound)
		return
	}

	var interest models.UserInterest
	err := db.Where("user_id = ? AND concept_id = ?", user.ID, conceptID).First(&interest).Error
	if err == nil {
		interest.Weight = body.Weight
		if err := db.Save(&interest).Error; err != nil {
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		interest = models.UserInterest{UserID: user.ID, ConceptID: conceptID, Weight: body.Weight}
		if err := db.Create(&interest).Error; err != nil {
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
	}

	recommender.InvalidateUser(user.ID)

	RespondSuccess(c, gin.H{"interest": interest})
}

// DELETE /api/interests/:conceptId
func RemoveInterest(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
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

	if err := db.Where("user_id = ? AND concept_id = ?", user.ID, conceptID).
		Delete(&models.UserInterest{}).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	recommender.InvalidateUser(user.ID)

	RespondSuccess(c, gin.H{"status": "removed"})
}
