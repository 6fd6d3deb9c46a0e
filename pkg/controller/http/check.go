package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/neziw/releasecheck/pkg/domain/interfaces"
	"github.com/neziw/releasecheck/pkg/domain/types"
)

// CheckHandler serves release checks
type CheckHandler struct {
	checkUC interfaces.CheckUseCase
}

// NewCheckHandler creates a new CheckHandler
func NewCheckHandler(checkUC interfaces.CheckUseCase) *CheckHandler {
	return &CheckHandler{checkUC: checkUC}
}

// Handle serves GET /api/v1/repos/{owner}/{repo}/check?version=...&tag=...
func (h *CheckHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	owner := chi.URLParam(r, "owner")
	repo := chi.URLParam(r, "repo")
	version := r.URL.Query().Get("version")
	tag := r.URL.Query().Get("tag")

	if version == "" {
		writeError(w, r, goerr.New("version query parameter is required"), http.StatusBadRequest)
		return
	}

	result, err := h.checkUC.Check(ctx, owner, repo, version, tag)
	if err != nil {
		status := statusOf(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to check release", "error", err, "owner", owner, "repo", repo)
		} else {
			logger.Warn("Release check rejected", "error", err, "owner", owner, "repo", repo)
		}
		writeError(w, r, err, status)
		return
	}

	writeJSON(w, r, result, http.StatusOK)
}

// statusOf maps checker errors to response status codes
func statusOf(err error) int {
	switch {
	case types.IsNotFound(err):
		return http.StatusNotFound
	case goerr.HasTag(err, types.ErrTagParse), goerr.HasTag(err, types.ErrTagConfig):
		return http.StatusBadRequest
	case goerr.HasTag(err, types.ErrTagHTTPStatus),
		goerr.HasTag(err, types.ErrTagTransport),
		goerr.HasTag(err, types.ErrTagDecode):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
