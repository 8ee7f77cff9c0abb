package controllers

import (
	"hypatia/recommend"

	"github.com/gin-gonic/gin"
)

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(200, payload)
}

// recommender é o motor compartilhado entre os handlers, injetado no boot
// (mesmo esquema do db.SetConfigurations).
var recommender *recommend.Service

func SetRecommender(s *recommend.Service) {
	recommender = s
}
