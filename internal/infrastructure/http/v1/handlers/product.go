package handlers

import (
	"github.com/gin-gonic/gin"

	"shopcat/internal/core/apperror"
	"shopcat/internal/core/id"
	"shopcat/internal/domain/product"
	"shopcat/internal/infrastructure/http/v1/dto"
)

// ProductHandler exposes the catalog service over HTTP.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service}
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	plain, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromPlain(plain))
}

// List handles GET /products with limit/offset pagination.
func (h *ProductHandler) List(c *gin.Context) {
	var query dto.PaginationQuery
	if !h.BindQuery(c, &query) {
		return
	}

	plains, err := h.service.List(c.Request.Context(), query.ToPagination())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPlainList(plains))
}

// Get handles GET /products/:term where term is a UUID, a title or a slug.
func (h *ProductHandler) Get(c *gin.Context) {
	plain, err := h.service.FindOnePlain(c.Request.Context(), c.Param("term"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPlain(plain))
}

// Update handles PATCH /products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	plain, err := h.service.Update(c.Request.Context(), productID, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPlain(plain))
}

// Delete handles DELETE /products/:id, returning the deleted snapshot.
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	p, err := h.service.Remove(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPlain(p.Flatten()))
}
