package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/twinstack/asset-twin-service/pkg/common"
	"github.com/twinstack/asset-twin-service/pkg/db"
	twinHttp "github.com/twinstack/asset-twin-service/pkg/http"
	"github.com/twinstack/asset-twin-service/pkg/twin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	twinDbType := os.Getenv(common.EnvKeyTwinDBType)
	switch twinDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown TWIN_DB_TYPE: " + twinDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyTwinHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyTwinDefaultRate), 64); err != nil {
		log.Fatal("Invalid TWIN_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyTwinDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid TWIN_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	logger := common.GetLogger()

	twinCore := twin.New(*dbInstance)

	if raw := os.Getenv(common.EnvKeyTwinMaxSubtreeSize); raw != "" {
		ceiling, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Fatal("Invalid TWIN_MAX_SUBTREE_SIZE, should be an int value")
		}
		twinCore.MaxSubtreeSize = ceiling
	}
	if raw := os.Getenv(common.EnvKeyTwinMaxTreeResults); raw != "" {
		ceiling, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatal("Invalid TWIN_MAX_TREE_RESULTS, should be an int value")
		}
		twinCore.MaxTreeResults = ceiling
	}

	twinCore.WithServices(twin.ServiceOpts{
		Store:     twinCore.GetIStore(),
		Hierarchy: twinCore.GetIHierarchy(),
		State:     twinCore.GetIState(),
		Query:     twinCore.GetIQuery(),
	})

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &twinHttp.RestfulServer{
		Server:           gin.Default(),
		Twin:             twinCore,
		RateLimiterStore: twin.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)),
		zap.Int64("max_subtree_size", twinCore.MaxSubtreeSize),
		zap.Int("max_tree_results", twinCore.MaxTreeResults))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
