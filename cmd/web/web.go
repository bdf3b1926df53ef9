package main

import (
	"context"
	"fmt"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/blogicum-app/blogicum-be/config"
	"github.com/blogicum-app/blogicum-be/db/mysql"
	"github.com/blogicum-app/blogicum-be/log"
	"github.com/blogicum-app/blogicum-be/routes"
	"github.com/blogicum-app/blogicum-be/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Error.Fatal("invalid configuration: ", err)
	}

	db, err := mysql.GetDatabase(cfg.DSN())
	if err != nil {
		log.Error.Fatal("received err when attempting to connect to DB: ", err)
	}
	defer db.Close()

	if err := configureFirebaseCredentials(); err != nil {
		log.Error.Fatal("an error occurred while configuring firebase credentials: ", err)
	}
	app, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		log.Error.Fatalf("error initializing firebase: %v", err)
	}
	authClient, err := app.Auth(context.Background())
	if err != nil {
		log.Error.Fatal("error initializing auth client: ", err)
	}

	mediaBucket, err := services.NewStorageBucket(context.Background(), app, cfg.MediaBucket)
	if err != nil {
		log.Error.Fatal("an error occurred while connecting to the media bucket: ", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.FeOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	routes.AddPostRoutes(&r.RouterGroup, db, authClient, mediaBucket)
	routes.AddCommentRoutes(&r.RouterGroup, db, authClient)
	routes.AddProfileRoutes(&r.RouterGroup, db, authClient)
	routes.AddCategoryRoutes(&r.RouterGroup, db)
	routes.AddHealthCheckRoutes(&r.RouterGroup)

	log.Info.Println("listening on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error.Fatal("error when attempting to run web server: ", err)
	}
}

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	TargetCredentialsFile = "./google-application-credentials.json"
)

func configureFirebaseCredentials() error {
	credentialsPath, hasCredentialsPath := os.LookupEnv(CredentialsPathEnvVar)
	if hasCredentialsPath {
		log.Info.Printf("Credentials path detected in env. Expecting credentials to be at %v", credentialsPath)
		return nil
	}
	credentialsJson, hasCredentialsJson := os.LookupEnv(CredentialsJsonEnvVar)
	if hasCredentialsJson {
		log.Info.Println("Credentials JSON string detected in env.")
		err := os.WriteFile(TargetCredentialsFile, []byte(credentialsJson), 0400)
		if err != nil {
			return fmt.Errorf("error writing credentials to temp file, %w", err)
		}
		err = os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile)
		if err != nil {
			return fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
		}
		return nil
	}
	return fmt.Errorf("must specify either %v (a path)"+
		" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
}
