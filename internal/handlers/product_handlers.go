package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/01moynul/inventory-dashboard/internal/models"
	"github.com/01moynul/inventory-dashboard/internal/storage"
)

const (
	msgInvalidID      = "Invalid product ID"
	msgNotFound       = "Product not found"
	msgInvalidData    = "Invalid product data"
	msgDeleted        = "Product deleted successfully"
	msgFetchProducts  = "Failed to fetch products"
	msgFetchStats     = "Failed to fetch product stats"
	msgFetchProduct   = "Failed to fetch product"
	msgCreateProduct  = "Failed to create product"
	msgUpdateProduct  = "Failed to update product"
	msgDeleteProduct  = "Failed to delete product"
	msgFetchReport    = "Failed to fetch product report"
	msgExportProducts = "Failed to export products"
	msgBodyTooLarge   = "Request body too large"
)

// maxBodyBytes caps product write payloads.
const maxBodyBytes = 1 << 20

// parseProductID reads the :id path segment. It writes the 400 itself.
func parseProductID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}

// readBody reads at most maxBodyBytes of the request body. It writes the
// error response itself.
func readBody(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return nil, false
		}
		fail(c, http.StatusBadRequest, msgInvalidData)
		return nil, false
	}
	return body, true
}

// ListProducts is the handler for GET /api/products
func (h *Handlers) ListProducts(c *gin.Context) {
	opts := storage.NewListOptions(c.Query("search"), c.Query("sortBy"), c.Query("sortOrder"))

	products, err := h.Store.ListProducts(c.Request.Context(), opts)
	if err != nil {
		h.serverError(c, msgFetchProducts, err,
			zap.String("search", opts.Search),
			zap.String("sort_by", string(opts.SortBy)))
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProductStats is the handler for GET /api/products/stats
func (h *Handlers) GetProductStats(c *gin.Context) {
	stats, err := h.Store.GetProductStats(c.Request.Context())
	if err != nil {
		h.serverError(c, msgFetchStats, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetProduct is the handler for GET /api/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	product, err := h.Store.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fail(c, http.StatusNotFound, msgNotFound)
			return
		}
		h.serverError(c, msgFetchProduct, err, zap.Int64("product_id", id))
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct is the handler for POST /api/products
func (h *Handlers) CreateProduct(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	input, fieldErrs := models.ParseInsertProduct(body)
	if fieldErrs != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgInvalidData, Errors: fieldErrs})
		return
	}

	product, err := h.Store.CreateProduct(c.Request.Context(), input)
	if err != nil {
		h.serverError(c, msgCreateProduct, err, zap.String("name", input.Name))
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct is the handler for PUT /api/products/:id
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	body, ok := readBody(c)
	if !ok {
		return
	}

	input, fieldErrs := models.ParseUpdateProduct(body)
	if fieldErrs != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgInvalidData, Errors: fieldErrs})
		return
	}

	product, err := h.Store.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fail(c, http.StatusNotFound, msgNotFound)
			return
		}
		h.serverError(c, msgUpdateProduct, err, zap.Int64("product_id", id))
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct is the handler for DELETE /api/products/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	deleted, err := h.Store.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, msgDeleteProduct, err, zap.Int64("product_id", id))
		return
	}
	if !deleted {
		fail(c, http.StatusNotFound, msgNotFound)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: msgDeleted})
}
