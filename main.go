package main

import (
	"log"
	"os"
	"strings"

	"hypatia/config"
	"hypatia/controllers"
	"hypatia/db"
	"hypatia/recommend"
	"hypatia/router"
	"hypatia/workers"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env é opcional: em produção as variáveis vêm do ambiente.
	if err := godotenv.Load(); err == nil {
		log.Printf("Variáveis carregadas do .env")
	}

	configPath := getenv("CONFIG_PATH", "config.json")
	cfg := config.Get(configPath)

	db.SetConfigurations(cfg)
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Erro ao conectar no banco: %v", err)
	}
	defer database.Close()

	engine := recommend.New(cfg)
	controllers.SetRecommender(engine)

	workers.StartRefreshProcessor(database, engine)

	r := gin.New()
	r.Use(db.SetDBtoContext(database))
	router.Initialize(r, cfg)

	log.Printf("Hypatia listening on :%s", cfg.ApiPort)
	log.Fatal(r.Run(":" + cfg.ApiPort))
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
