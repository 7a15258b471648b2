package handlers

import (
	"errors"
	"net/http"

	request "rugquotes/internal/adapter/http/dto/request"
	response "rugquotes/internal/adapter/http/dto/response"
	"rugquotes/internal/adapter/http/middleware"
	"rugquotes/internal/usecase"
	"rugquotes/pkg"

	"github.com/gin-gonic/gin"
)

// NoteHandler handles staff annotations on a quote.

type NoteHandler struct {
	usecase usecase.INoteUseCase
}

func NewNoteHandler(uc usecase.INoteUseCase) *NoteHandler {
	return &NoteHandler{usecase: uc}
}

// ListNotes godoc
// @Summary  List notes for a quote
// @Tags     notes
// @Produce  json
// @Param    id path string true "Quote id"
// @Success  200 {array} response.NoteResponse
// @Security Bearer
// @Router   /quotes/{id}/notes [get]
func (h *NoteHandler) ListNotes(c *gin.Context) {
	notes, err := h.usecase.ListByQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapNoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromNotes(notes))
}

// AddNote godoc
// @Summary  Add a note to a quote
// @Tags     notes
// @Accept   json
// @Produce  json
// @Param    id   path string              true "Quote id"
// @Param    note body request.NoteRequest true "Note"
// @Success  201 {object} response.NoteResponse
// @Security Bearer
// @Router   /quotes/{id}/notes [post]
func (h *NoteHandler) AddNote(c *gin.Context) {
	var payload request.NoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := pkg.NewDomainErrorSimple("VALIDATION_FAILED", "Note content is required", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	note, err := h.usecase.Add(c.Request.Context(), c.Param("id"), payload.Content, middleware.Actor(c))
	if err != nil {
		appErr := mapNoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromNote(note))
}

func mapNoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrNoteContentRequired):
		return pkg.NewDomainErrorSimple("VALIDATION_FAILED", "Note content is required", http.StatusBadRequest)
	default:
		return mapQuoteError(err)
	}
}
