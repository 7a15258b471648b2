package routes

import (
	"rugquotes/internal/adapter/http/handlers"
	"rugquotes/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes       = "/quotes"
	PathActivityLogs = "/activity-logs"
	PathPortal       = "/portal"
)

func addQuoteRoutes(
	rg *gin.RouterGroup,
	jwtSecret string,
	quoteHandler *handlers.QuoteHandler,
	noteHandler *handlers.NoteHandler,
	activityLogHandler *handlers.ActivityLogHandler,
	importHandler *handlers.ImportHandler,
) {
	quotes := rg.Group(PathQuotes, middleware.RequireAuth(jwtSecret))
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.GET("/export", importHandler.ExportQuotes)
		quotes.POST("/import", importHandler.ImportQuotes)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.PATCH("/:id", quoteHandler.UpdateQuote)
		quotes.DELETE("/:id", quoteHandler.DeleteQuote)
		quotes.GET("/:id/notes", noteHandler.ListNotes)
		quotes.POST("/:id/notes", noteHandler.AddNote)
	}

	logs := rg.Group(PathActivityLogs, middleware.RequireAuth(jwtSecret))
	{
		logs.GET("", activityLogHandler.ListActivityLogs)
	}
}

// Portal routes are public: customers reach them from an emailed link that
// embeds their customer number, and approvals are guarded by the status
// eligibility check rather than authentication.
func addPortalRoutes(rg *gin.RouterGroup, portalHandler *handlers.PortalHandler) {
	portal := rg.Group(PathPortal)
	{
		portal.GET("/customers/:customer_number/quotes", portalHandler.ListCustomerQuotes)
		portal.POST("/quotes/:id/approve", portalHandler.ApproveQuote)
	}
}
