package handlers

import (
	"errors"
	"net/http"
	"time"

	request "rugquotes/internal/adapter/http/dto/request"
	response "rugquotes/internal/adapter/http/dto/response"
	"rugquotes/internal/adapter/http/middleware"
	"rugquotes/internal/domain/entities"
	"rugquotes/internal/infrastructure/cache"
	"rugquotes/internal/usecase"
	"rugquotes/internal/usecase/interfaces"
	"rugquotes/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)

// QuoteHandler handles the staff-facing quote CRUD surface.

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
	cache   cache.Store
}

func NewQuoteHandler(uc usecase.IQuoteUseCase, cache cache.Store) *QuoteHandler {
	return &QuoteHandler{usecase: uc, cache: cache}
}

// CreateQuote godoc
// @Summary  Create a quote
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    quote body request.CreateQuoteRequest true "Quote"
// @Success  201 {object} response.QuoteResponse
// @Security Bearer
// @Router   /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.Create(c.Request.Context(), payload.ToInput(), middleware.Actor(c))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	h.invalidatePortal(c, quote.CustomerNumber)
	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

// GetQuote godoc
// @Summary  Get a quote by id
// @Tags     quotes
// @Produce  json
// @Param    id path string true "Quote id"
// @Success  200 {object} response.QuoteResponse
// @Security Bearer
// @Router   /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// ListQuotes godoc
// @Summary  List quotes
// @Tags     quotes
// @Produce  json
// @Param    status          query string false "Status filter"
// @Param    customer_number query string false "Customer number filter"
// @Param    search          query string false "Free-text search over customer name/number and quote number"
// @Param    created_from    query string false "Creation range start (RFC 3339)"
// @Param    created_to      query string false "Creation range end (RFC 3339, exclusive)"
// @Success  200 {array} response.QuoteResponse
// @Security Bearer
// @Router   /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	filter := interfaces.QuoteListFilter{
		CustomerNumber: c.Query("customer_number"),
		Search:         c.Query("search"),
	}
	if s := c.Query("status"); s != "" {
		status := entities.QuoteStatus(s)
		filter.Status = &status
	}
	var parseErr error
	filter.CreatedFrom, parseErr = parseTimeQuery(c.Query("created_from"))
	if parseErr == nil {
		filter.CreatedTo, parseErr = parseTimeQuery(c.Query("created_to"))
	}
	if parseErr != nil {
		appErr := pkg.NewDomainErrorSimple("VALIDATION_FAILED", "Invalid date filter", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	quotes, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

// UpdateQuote godoc
// @Summary  Update a quote (partial edit)
// @Tags     quotes
// @Accept   json
// @Produce  json
// @Param    id    path string                     true "Quote id"
// @Param    patch body request.UpdateQuoteRequest true "Fields to change"
// @Success  200 {object} response.QuoteResponse
// @Security Bearer
// @Router   /quotes/{id} [patch]
func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	var payload request.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToPatch(), middleware.Actor(c))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	h.invalidatePortal(c, quote.CustomerNumber)
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// DeleteQuote godoc
// @Summary  Delete a quote
// @Tags     quotes
// @Produce  json
// @Param    id path string true "Quote id"
// @Success  200 {object} map[string]bool
// @Security Bearer
// @Router   /quotes/{id} [delete]
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	quote, err := h.usecase.Delete(c.Request.Context(), c.Param("id"), middleware.Actor(c))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	h.invalidatePortal(c, quote.CustomerNumber)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *QuoteHandler) invalidatePortal(c *gin.Context, customerNumber string) {
	// Best effort; the portal cache TTL bounds staleness anyway.
	_ = h.cache.Delete(c.Request.Context(), portalCacheKey(customerNumber))
}

func parseTimeQuery(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		// Bare calendar dates are accepted too.
		t, err = time.Parse("2006-01-02", v)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingRequiredFields), errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("VALIDATION_FAILED", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotPendingCADApproval):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Quote is not pending CAD approval", http.StatusConflict)
	case errors.Is(err, usecase.ErrNotPendingSwatchApproval):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Quote is not pending swatch approval", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidApprovalType):
		return pkg.NewDomainErrorSimple("INVALID_APPROVAL_TYPE", `Invalid approval type. Must be "cad" or "swatch".`, http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
