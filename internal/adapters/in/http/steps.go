package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/step"

	"github.com/labstack/echo/v4"
)

type stepMetadataRequest struct {
	SubmittedAt            *time.Time `json:"submittedAt"`
	ExpectedCompletionDate *time.Time `json:"expectedCompletionDate"`
	Notes                  *string    `json:"notes"`
}

func (r stepMetadataRequest) metadata() step.Metadata {
	return step.Metadata{
		SubmittedAt:            r.SubmittedAt,
		ExpectedCompletionDate: r.ExpectedCompletionDate,
		Notes:                  r.Notes,
	}
}

type stepTransitionRequest struct {
	Status   string               `json:"status"`
	Actor    string               `json:"actor"`
	Override bool                 `json:"override"`
	Metadata *stepMetadataRequest `json:"metadata"`
}

type warningsResponse struct {
	Warnings []string `json:"warnings"`
}

// GetOrderSteps handles GET /api/v1/orders/{orderId}/steps.
func (s *Server) GetOrderSteps(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetOrderStepsQuery(orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	resp, err := s.h.OrderSteps(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// RegenerateSteps handles POST /api/v1/orders/{orderId}/steps/regenerate.
func (s *Server) RegenerateSteps(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewRegenerateStepsCommand(orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.h.RegenerateSteps(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// TransitionStep handles PUT /api/v1/orders/{orderId}/steps/{stepId}/status.
func (s *Server) TransitionStep(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	stepID, err := stringParam(c, "stepId")
	if err != nil {
		return s.writeError(c, err)
	}

	var req stepTransitionRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	status, err := step.ParseStatus(req.Status)
	if err != nil {
		return s.writeError(c, err)
	}

	var metadata step.Metadata
	if req.Metadata != nil {
		metadata = req.Metadata.metadata()
	}

	cmd, err := commands.NewTransitionStepCommand(orderID, stepID, status, req.Actor, metadata, req.Override)
	if err != nil {
		return s.writeError(c, err)
	}

	warnings, err := s.h.TransitionStep(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	if warnings == nil {
		warnings = []string{}
	}
	return c.JSON(http.StatusOK, warningsResponse{Warnings: warnings})
}

// UpdateStepMetadata handles PATCH /api/v1/orders/{orderId}/steps/{stepId}.
func (s *Server) UpdateStepMetadata(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}
	stepID, err := stringParam(c, "stepId")
	if err != nil {
		return s.writeError(c, err)
	}

	var req stepMetadataRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewUpdateStepMetadataCommand(orderID, stepID, req.metadata())
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.h.UpdateStepMetadata(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
