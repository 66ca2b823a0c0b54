package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mediareview-backend/internal/domains/catalog/service"
	"mediareview-backend/internal/shared/response"
)

// CatalogHandler serves the seeded reference data clients need to compose a
// review: genres, media kinds and platforms.
type CatalogHandler struct {
	catalogService service.ServiceInterface
}

func NewCatalogHandler(catalogService service.ServiceInterface) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListGenres
// GET /genres
func (h *CatalogHandler) ListGenres(c *gin.Context) {
	genres, err := h.catalogService.ListGenres(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to load genres")
		return
	}
	response.Success(c, http.StatusOK, genres)
}

// ListMedia
// GET /media
func (h *CatalogHandler) ListMedia(c *gin.Context) {
	media, err := h.catalogService.ListMedia(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to load media")
		return
	}
	response.Success(c, http.StatusOK, media)
}

// ListPlatforms
// GET /platforms
func (h *CatalogHandler) ListPlatforms(c *gin.Context) {
	platforms, err := h.catalogService.ListPlatforms(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to load platforms")
		return
	}
	response.Success(c, http.StatusOK, platforms)
}
