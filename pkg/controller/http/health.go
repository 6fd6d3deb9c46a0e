package http

import (
	"net/http"

	"github.com/neziw/releasecheck/pkg/domain/model"
	"github.com/neziw/releasecheck/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:  "healthy",
		Service: "releasecheck",
		Version: types.Version,
	}

	writeJSON(w, r, status, http.StatusOK)
}
