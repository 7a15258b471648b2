package handlers

import (
	"net/http"
	"time"

	request "rugquotes/internal/adapter/http/dto/request"
	response "rugquotes/internal/adapter/http/dto/response"
	"rugquotes/internal/infrastructure/cache"
	"rugquotes/internal/usecase"
	"rugquotes/internal/usecase/interfaces"
	"rugquotes/pkg"

	"github.com/gin-gonic/gin"
)

var errConsentRequired = pkg.NewDomainErrorSimple(
	"CONSENT_REQUIRED",
	"All required confirmations must be checked before approving",
	http.StatusBadRequest,
)

// PortalHandler serves the customer-facing iframe: quote listings with
// progress information, and the consent-gated approval commit.
//
// Listings are cached briefly per customer number; admin writes invalidate
// the entry and the TTL bounds staleness for anything missed.

type PortalHandler struct {
	usecase  usecase.IQuoteUseCase
	cache    cache.Store
	cacheTTL time.Duration
}

func NewPortalHandler(uc usecase.IQuoteUseCase, cache cache.Store, cacheTTL time.Duration) *PortalHandler {
	return &PortalHandler{usecase: uc, cache: cache, cacheTTL: cacheTTL}
}

// ListCustomerQuotes godoc
// @Summary  List a customer's quotes for the portal
// @Tags     portal
// @Produce  json
// @Param    customer_number path string true "Customer number"
// @Success  200 {array} response.PortalQuoteResponse
// @Router   /portal/customers/{customer_number}/quotes [get]
func (h *PortalHandler) ListCustomerQuotes(c *gin.Context) {
	customerNumber := c.Param("customer_number")
	key := portalCacheKey(customerNumber)

	var cached []response.PortalQuoteResponse
	if hit, err := h.cache.Get(c.Request.Context(), key, &cached); err == nil && hit {
		c.JSON(http.StatusOK, cached)
		return
	}

	quotes, err := h.usecase.List(c.Request.Context(), interfaces.QuoteListFilter{CustomerNumber: customerNumber})
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	out := response.FromQuotesForPortal(quotes)
	_ = h.cache.Set(c.Request.Context(), key, out, h.cacheTTL)
	c.JSON(http.StatusOK, out)
}

// ApproveQuote godoc
// @Summary  Commit a CAD or swatch approval
// @Tags     portal
// @Accept   json
// @Produce  json
// @Param    id       path string                  true "Quote id"
// @Param    approval body request.ApprovalRequest true "Approval"
// @Success  200 {object} response.QuoteResponse
// @Router   /portal/quotes/{id}/approve [post]
func (h *PortalHandler) ApproveQuote(c *gin.Context) {
	var payload request.ApprovalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	kind, err := usecase.ParseApprovalKind(payload.Type)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	// The consent gate runs before the commit is even attempted. Errors are
	// rendered inline in the consent dialog, which stays open for retry.
	if !payload.ConsentComplete() {
		c.JSON(errConsentRequired.HTTPStatus, errConsentRequired.ToHTTPError())
		return
	}

	quote, err := h.usecase.Approve(c.Request.Context(), c.Param("id"), kind, payload.ApprovedBy)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	_ = h.cache.Delete(c.Request.Context(), portalCacheKey(quote.CustomerNumber))
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func portalCacheKey(customerNumber string) string {
	return "portal:quotes:" + customerNumber
}
