package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Recommender struct {
		CacheTTLMinutes  int `json:"cache_ttl_minutes"`
		CacheMaxUses     int `json:"cache_max_uses"` // 0 = sem limite de usos
		DefaultLimit     int `json:"default_limit"`
		MaxCandidates    int `json:"max_candidates"`
		RecentWindowDays int `json:"recent_window_days"`

		// Pesos da similaridade composta; precisam somar 1.0.
		SimilarityWeights struct {
			Concept float64 `json:"concept"`
			Title   float64 `json:"title"`
			Author  float64 `json:"author"`
			Venue   float64 `json:"venue"`
			Year    float64 `json:"year"`
		} `json:"similarity_weights"`
	} `json:"recommender"`
}

func Get(path string) Configuration {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var c Configuration
	if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}

	// defaults (pra evitar nil/zero chato)
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Recommender.CacheTTLMinutes <= 0 {
		c.Recommender.CacheTTLMinutes = 60
	}
	if c.Recommender.DefaultLimit <= 0 {
		c.Recommender.DefaultLimit = 10
	}
	if c.Recommender.MaxCandidates <= 0 {
		c.Recommender.MaxCandidates = 100
	}
	if c.Recommender.RecentWindowDays <= 0 {
		c.Recommender.RecentWindowDays = 90
	}
	w := &c.Recommender.SimilarityWeights
	if w.Concept == 0 && w.Title == 0 && w.Author == 0 && w.Venue == 0 && w.Year == 0 {
		w.Concept = 0.5
		w.Title = 0.2
		w.Author = 0.15
		w.Venue = 0.1
		w.Year = 0.05
	}

	return c
}
