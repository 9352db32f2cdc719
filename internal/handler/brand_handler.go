package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eficaz-commerce/eficaz-api/internal/models"
	"github.com/eficaz-commerce/eficaz-api/internal/service"
	appErrors "github.com/eficaz-commerce/eficaz-api/pkg/errors"
	"github.com/eficaz-commerce/eficaz-api/pkg/response"
)

// BrandHandler wires HTTP endpoints to the brand service.
type BrandHandler struct {
	service *service.BrandService
}

// NewBrandHandler creates a new handler.
func NewBrandHandler(svc *service.BrandService) *BrandHandler {
	return &BrandHandler{service: svc}
}

// List godoc
// @Summary List brands
// @Tags Brands
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /brands [get]
func (h *BrandHandler) List(c *gin.Context) {
	brands, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, brands, nil)
}

// Create godoc
// @Summary Create brand
// @Tags Brands
// @Accept json
// @Produce json
// @Param payload body models.CreateBrandRequest true "Brand payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /brands [post]
func (h *BrandHandler) Create(c *gin.Context) {
	var req models.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid brand payload"))
		return
	}

	brand, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, brand)
}
