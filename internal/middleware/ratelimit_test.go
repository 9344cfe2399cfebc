package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/schoolrecords/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(client *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RateLimit(client, time.Second))
	router.POST("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})
	return router
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	router := limitedRouter(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	// Nothing listens here; every limiter call errors out and the request
	// must still go through.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	router := limitedRouter(client)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
