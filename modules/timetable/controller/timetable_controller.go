package controller

import (
	"moim-api/core/constants"
	"moim-api/core/controller"
	"moim-api/core/errors"
	"moim-api/core/utils"
	"moim-api/modules/timetable/dto"
	"moim-api/modules/timetable/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TimetableController handles external timetable HTTP requests.
type TimetableController struct {
	controller.BaseController
	TimetableService service.TimetableService
}

// NewTimetableController creates a new controller.
func NewTimetableController(svc service.TimetableService) *TimetableController {
	return &TimetableController{
		BaseController:   controller.NewBaseController(),
		TimetableService: svc,
	}
}

// getUserIDFromContext extracts the user ID from JWT context.
func (c *TimetableController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// Fetch handles POST /timetable/fetch
func (c *TimetableController) Fetch(ctx echo.Context) error {
	var req dto.FetchTimetableRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.TimetableService.GetTimetable(ctx.Request().Context(), req.Identifier)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// Import handles POST /timetable/import
func (c *TimetableController) Import(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.FetchTimetableRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.TimetableService.ImportToFixedSchedule(ctx.Request().Context(), userID, req.Identifier)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Timetable imported")
}
