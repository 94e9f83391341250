package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/car2chain/inspection-api/internal/auth"
	"github.com/car2chain/inspection-api/internal/db"
	"github.com/car2chain/inspection-api/internal/events"
	"github.com/car2chain/inspection-api/internal/handlers"
	"github.com/car2chain/inspection-api/internal/middleware"
	"github.com/car2chain/inspection-api/internal/models"
	"github.com/car2chain/inspection-api/internal/reports"
)

func main() {
	// Load .env if present; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}

	configureLogging()

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	log.Info("connected to MongoDB")

	database := db.Database(client)
	reportCollection := &db.MongoReportCollection{Collection: database.Collection("reports")}
	shareCollection := &db.MongoShareLinkCollection{Collection: database.Collection("share_links")}
	userCollection := &db.MongoUserCollection{Collection: database.Collection("users")}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to create auth service")
	}

	if err := seedAdminUser(authService, userCollection); err != nil {
		log.WithError(err).Fatal("failed to seed admin user")
	}

	publisher := newPublisher()
	reportService := reports.NewService(reportCollection, shareCollection, publisher)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	router := handlers.NewRouter(
		handlers.NewReportHandler(reportService),
		handlers.NewAuthHandler(authService, userCollection),
		handlers.NewHealthHandler(client),
		authMiddleware,
		rateLimiter,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func configureLogging() {
	if level, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}
	if os.Getenv("ENV") == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	}
}

// newPublisher returns an MQTT publisher when a broker is configured, a
// no-op otherwise.
func newPublisher() events.Publisher {
	brokerURL := os.Getenv("MQTT_BROKER_URL")
	if brokerURL == "" {
		return events.NoopPublisher{}
	}
	publisher, err := events.NewMQTTPublisher(brokerURL)
	if err != nil {
		log.WithError(err).Warn("MQTT broker unreachable, report events disabled")
		return events.NoopPublisher{}
	}
	log.WithField("broker", brokerURL).Info("publishing report events over MQTT")
	return publisher
}

// seedAdminUser creates the initial admin account when it does not exist yet.
func seedAdminUser(authService *auth.Service, users db.UserCollection) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "carchainadmin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "carchain123"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := users.FindUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, db.ErrNoDocument) {
		return err
	}

	hash, err := authService.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := users.InsertUser(ctx, user); err != nil {
		return err
	}
	log.WithField("username", username).Info("admin user created")
	return nil
}
