// Command mock-upstream serves the fake place, weather and airport APIs for
// local runs and docker-compose based integration tests.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/kiervincent5/travel-planner/internal/testsupport/upstream"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	port := os.Getenv("MOCK_UPSTREAM_PORT")
	if port == "" {
		port = "8081"
	}

	r := upstream.NewRouter()

	slog.Info("Mock upstream server starting", "port", port)
	if err := r.Run(fmt.Sprintf(":%s", port)); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
