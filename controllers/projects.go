package controllers

import (
	"net/http"

	dbpkg "hypatia/db"
	"hypatia/models"

	"github.com/gin-gonic/gin"
)

// GET /api/projects
func GetProjects(c *gin.Context) {
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

	var projects []models.Project
	if err := db.Where("user_id = ?", user.ID).
		Order("id asc").
		Find(&projects).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"projects": projects})
}

// POST /api/projects
func CreateProject(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var project models.Project
	if err := c.Bind(&project); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if project.Name == "" {
		RespondError(c, "name é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	project.ID = 0
	project.UserID = user.ID
	if err := db.Create(&project).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"project": project})
}

// PUT /api/projects/:id
func UpdateProject(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Project
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var project models.Project
	if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&project).Error; err != nil {
		RespondError(c, "projeto não encontrado", http.StatusNotFound)
		return
	}

	if body.Name != "" {
		project.Name = body.Name
	}
	if body.Description != "" {
		project.Description = body.Description
	}

	if err := db.Save(&project).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"project": project})
}

// DELETE /api/projects/:id
func DeleteProject(c *gin.Context) {
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

	var project models.Project
	if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&project).Error; err != nil {
		RespondError(c, "projeto não encontrado", http.StatusNotFound)
		return
	}

	if err := db.Delete(&project).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"status": "deleted"})
}
