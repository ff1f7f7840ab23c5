package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"eventapi/config"
	"eventapi/db"
	"eventapi/middlewares"
	"eventapi/models"
	"eventapi/routes"
	"eventapi/utils"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTTTL)

	// Mongo
	database, err := db.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("mongo connect error:", err)
	}
	if err := db.EnsureIndexes(database); err != nil {
		log.Fatal("mongo index error:", err)
	}

	// Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	inv := utils.NewCacheInvalidator(rdb)

	// Gin + middlewares
	server := gin.Default()
	server.Use(cors.Default())
	server.Use(middlewares.ResponseCache(rdb, cfg.CacheTTL))

	routes.RegisterRoutes(server,
		models.NewMongoUserRepository(database.Collection("users")),
		models.NewMongoEventRepository(database.Collection("events")),
		models.NewMongoRSVPRepository(database.Collection("rsvps")),
		inv)

	if err := server.Run(cfg.Port); err != nil {
		log.Fatal("gin.Run error:", err)
	}
}
