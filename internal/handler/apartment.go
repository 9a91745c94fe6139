package handler

import (
	"net/http"

	"github.com/aptmap/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type ApartmentHandler struct {
	svc *service.ApartmentService
}

func NewApartmentHandler(svc *service.ApartmentService) *ApartmentHandler {
	return &ApartmentHandler{svc: svc}
}

// ListApartments godoc
// @Summary List apartments
// @Description The bounding box applies only when all four edges are given. limit defaults to and is capped at 1000.
// @Tags apartments
// @Produce json
// @Param minLat query number false "South edge"
// @Param maxLat query number false "North edge"
// @Param minLng query number false "West edge"
// @Param maxLng query number false "East edge"
// @Param limit query int false "Max rows"
// @Success 200 {array} model.Apartment
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/apartments [get]
func (h *ApartmentHandler) ListApartments(c *gin.Context) {
	q, err := service.ParseApartmentQuery(
		c.Query("minLat"), c.Query("maxLat"),
		c.Query("minLng"), c.Query("maxLng"),
		c.Query("limit"),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	apartments, err := h.svc.ListApartments(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, apartments)
}

// ClusterApartments godoc
// @Summary Cluster apartments on a 10x10 grid
// @Description Missing or invalid edges default to the whole world. area=all or no area disables the area filter.
// @Tags apartments
// @Produce json
// @Param minLat query number false "South edge"
// @Param maxLat query number false "North edge"
// @Param minLng query number false "West edge"
// @Param maxLng query number false "East edge"
// @Param area query string false "Area filter or all"
// @Success 200 {array} model.ApartmentCluster
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/apartments/clusters [get]
func (h *ApartmentHandler) ClusterApartments(c *gin.Context) {
	q := service.ParseClusterQuery(
		c.Query("minLat"), c.Query("maxLat"),
		c.Query("minLng"), c.Query("maxLng"),
		c.Query("area"),
	)

	clusters, err := h.svc.ClusterApartments(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, clusters)
}

// PriceHistory godoc
// @Summary Price history of the last year
// @Description Rows grouped by complex number.
// @Tags apartments
// @Produce json
// @Success 200 {object} map[string][]model.PriceHistory
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/price-history [get]
func (h *ApartmentHandler) PriceHistory(c *gin.Context) {
	history, err := h.svc.PriceHistory(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
