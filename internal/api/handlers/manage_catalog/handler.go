package manage_catalog

import (
	"errors"
	"net/http"

	"github.com/avdeevsv/GBS-QueueService/internal/api/handlers"
	catalogService "github.com/avdeevsv/GBS-QueueService/internal/service/catalog"
	"github.com/avdeevsv/GBS-QueueService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgPackageNotFound    = "пакет не найден"
	msgInvalidRequest     = "некорректные параметры запроса"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/packages
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /packages - Failed to list packages: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /packages - Packages listed: count=%d", len(result.Packages))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleReorder POST /api/v1/packages/reorder
func (h *Handler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /packages/reorder - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Reorder(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, catalogService.ErrPackageNotFound):
			h.logger.Warn("POST /packages/reorder - Package not found")
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, catalogService.ErrInvalidInput):
			h.logger.Warn("POST /packages/reorder - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /packages/reorder - Failed to reorder packages: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /packages/reorder - Packages reordered: count=%d", len(req.PackageIDs))
	handlers.RespondJSON(w, http.StatusOK, nil)
}
