package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/inventory-dashboard/internal/reports"
	"github.com/01moynul/inventory-dashboard/internal/storage"
)

//
// --- Reports page ---
//

// GetInventoryReport returns the chart data for the reports page
// GET /api/products/reports
func (h *Handlers) GetInventoryReport(c *gin.Context) {
	products, err := h.Store.ListProducts(c.Request.Context(), storage.ListOptions{})
	if err != nil {
		h.serverError(c, msgFetchReport, err)
		return
	}

	c.JSON(http.StatusOK, reports.Build(products))
}

//
// --- CSV export ---
//

// ExportProducts streams the product list as CSV
// GET /api/products/export?search=
func (h *Handlers) ExportProducts(c *gin.Context) {
	opts := storage.NewListOptions(c.Query("search"), c.Query("sortBy"), c.Query("sortOrder"))

	products, err := h.Store.ListProducts(c.Request.Context(), opts)
	if err != nil {
		h.serverError(c, msgExportProducts, err)
		return
	}

	// Render fully before writing so a failure can still become a 500.
	var buf bytes.Buffer
	if err := reports.WriteCSV(&buf, products); err != nil {
		h.serverError(c, msgExportProducts, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="products.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
