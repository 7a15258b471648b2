package handlers

import (
	"errors"
	"net/http"

	response "rugquotes/internal/adapter/http/dto/response"
	"rugquotes/internal/adapter/http/middleware"
	"rugquotes/internal/usecase"
	"rugquotes/pkg"

	"github.com/gin-gonic/gin"
)

// ImportHandler handles bulk CSV import and the matching export.

type ImportHandler struct {
	usecase usecase.IImportUseCase
}

func NewImportHandler(uc usecase.IImportUseCase) *ImportHandler {
	return &ImportHandler{usecase: uc}
}

// ImportQuotes godoc
// @Summary  Bulk-import quotes
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    rows body []usecase.ImportRow true "Parsed CSV rows"
// @Success  200 {object} response.ImportResponse
// @Security Bearer
// @Router   /quotes/import [post]
func (h *ImportHandler) ImportQuotes(c *gin.Context) {
	var rows []usecase.ImportRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_IMPORT_INPUT", "Request body must be a non-empty array of quote data", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	result, err := h.usecase.Import(c.Request.Context(), rows, middleware.Actor(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyImport):
			appErr := pkg.NewDomainErrorSimple("INVALID_IMPORT_INPUT", "Request body must be a non-empty array of quote data", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		case errors.Is(err, usecase.ErrNoValidRows):
			// Every row failed validation; the row errors still go back.
			c.JSON(http.StatusBadRequest, gin.H{
				"code":   "NO_VALID_ROWS",
				"error":  "No valid rows to import",
				"errors": result.Errors,
			})
		default:
			appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		}
		return
	}

	c.JSON(http.StatusOK, response.ImportResponse{Imported: result.Imported, Errors: result.Errors})
}

// ExportQuotes godoc
// @Summary  Export all quotes as CSV
// @Tags     quotes
// @Produce  text/csv
// @Success  200 {string} string "CSV payload"
// @Security Bearer
// @Router   /quotes/export [get]
func (h *ImportHandler) ExportQuotes(c *gin.Context) {
	quotes, err := h.usecase.Export(c.Request.Context())
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="quotes.csv"`)
	c.Status(http.StatusOK)
	if err := response.WriteQuotesCSV(c.Writer, quotes); err != nil {
		// Headers are already out; all that is left is aborting the stream.
		c.Abort()
	}
}
