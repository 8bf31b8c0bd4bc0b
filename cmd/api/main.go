package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/booklyhq/bookly-api/internal/config"
	dbpkg "github.com/booklyhq/bookly-api/internal/db"
	"github.com/booklyhq/bookly-api/internal/logging"
	"github.com/booklyhq/bookly-api/internal/payment"
	"github.com/booklyhq/bookly-api/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logging.NewLogger()

	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	verifier, err := payment.NewMercadoPagoVerifier(cfg.MercadoPagoToken)
	if err != nil {
		log.Error("payment verifier init failed", "err", err)
		os.Exit(1)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, log, verifier)

	log.Info("server listening", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
