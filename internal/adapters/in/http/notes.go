package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type newNoteRequest struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	CreatedBy string `json:"createdBy"`
}

type noteResponse struct {
	ID        kernel.UUID `json:"id"`
	Type      string      `json:"type"`
	Content   string      `json:"content"`
	CreatedBy string      `json:"createdBy"`
	CreatedAt time.Time   `json:"createdAt"`
}

// AddNote handles POST /api/v1/orders/{orderId}/notes.
func (s *Server) AddNote(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req newNoteRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewAddNoteCommand(orderID, order.NoteType(req.Type), req.Content, req.CreatedBy)
	if err != nil {
		return s.writeError(c, err)
	}

	note, err := s.h.AddNote(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, noteResponse{
		ID:        note.ID,
		Type:      string(note.Type),
		Content:   note.Content,
		CreatedBy: note.CreatedBy,
		CreatedAt: note.CreatedAt,
	})
}

// ListNotes handles GET /api/v1/orders/{orderId}/notes.
func (s *Server) ListNotes(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetOrderNotesQuery(orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	notes, err := s.h.OrderNotes(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, notes)
}
