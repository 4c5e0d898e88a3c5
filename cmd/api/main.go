package main

import (
	"os"

	"github.com/yigit/javamaster/internal/pkg/logger"
	"github.com/yigit/javamaster/internal/server"
)

// @title JavaMaster API
// @version 1.0
// @description Course storefront: catalog, student accounts, Razorpay checkout and admin dashboard
// @termsOfService https://javamaster.in/terms

// @contact.name JavaMaster Support
// @contact.url https://javamaster.in/contact
// @contact.email support@javamaster.in

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
