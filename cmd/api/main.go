package main

import (
	"flag"
	"os"

	"github.com/yigit/projecthub/internal/bootstrap"
	"github.com/yigit/projecthub/internal/pkg/logger"
	"github.com/yigit/projecthub/internal/server"
)

// @title ProjectHub API
// @version 1.0
// @description API for managing academic project groups, reports, meetings and discussion

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	configPath := flag.String("config", bootstrap.DefaultConfigPath, "path to the YAML configuration")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
