// main.go
package main

import (
	"context"
	"log"
	"time"

	"mahal-booking/cmd"
	"mahal-booking/internal/data/repository"
	"mahal-booking/internal/wire"
	"mahal-booking/pkg/database"
	"mahal-booking/pkg/lock"
	"mahal-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("booking_timezone", config.Booking.Timezone),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.Migrate {
		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.Migrate(migrateCtx, db)
		cancel()
		if err != nil {
			logger.Fatal("Failed to apply schema", zap.Error(err))
		}
		logger.Info("Schema applied")
	}

	// Slot locker: Redis when shared across instances, in-process otherwise
	var locker lock.Locker = lock.NewKeyedMutex()
	if config.Redis.Enabled() {
		client := lock.NewRedisClient(config.Redis.Addr, config.Redis.Password, config.Redis.DB)
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := lock.Ping(pingCtx, client)
		cancel()
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err), zap.String("addr", config.Redis.Addr))
		}

		locker = lock.NewRedisLocker(client, config.Booking.LockTTL, logger)
		logger.Info("Using redis slot locker", zap.String("addr", config.Redis.Addr))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, locker, config, logger)

	// Start server
	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
