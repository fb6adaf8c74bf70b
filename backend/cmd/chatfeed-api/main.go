package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/chatfeed-dev/chatfeed/backend/internal/router"
	"github.com/chatfeed-dev/chatfeed/backend/internal/setup"
	"github.com/chatfeed-dev/chatfeed/shared/config"
	"github.com/chatfeed-dev/chatfeed/shared/logger"
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

	r := router.New(deps)

	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = cfg.Backend.Port
	}

	logger.Log.Info("API server started", "port", httpPort)
	log.Fatal(http.ListenAndServe(":"+httpPort, r))
}
