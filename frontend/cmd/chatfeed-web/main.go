package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/chatfeed-dev/chatfeed/frontend/internal/router"
	"github.com/chatfeed-dev/chatfeed/frontend/internal/setup"
	"github.com/chatfeed-dev/chatfeed/shared/config"
	"github.com/chatfeed-dev/chatfeed/shared/logger"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
)

func main() {
	log.SetFlags(log.Lshortfile)
	_ = godotenv.Load() // optional .env, absence is fine

	var configPath string
	flag.StringVar(&configPath, "config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	logger.Initialize(cfg.Logging.Level, cfg.Logging.JSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Overlay.Close()

	r := router.New(deps)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Frontend.Port
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logger.Log.Info("web client started", "port", port)
	log.Fatal(server.ListenAndServe())
}
