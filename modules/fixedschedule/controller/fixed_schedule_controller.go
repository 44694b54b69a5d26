package controller

import (
	"moim-api/core/constants"
	"moim-api/core/controller"
	"moim-api/core/errors"
	"moim-api/core/utils"
	"moim-api/modules/fixedschedule/dto"
	"moim-api/modules/fixedschedule/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// FixedScheduleController handles fixed schedule HTTP requests.
type FixedScheduleController struct {
	controller.BaseController
	FixedScheduleService service.FixedScheduleServiceInterface
}

// NewFixedScheduleController creates a new controller.
func NewFixedScheduleController(svc service.FixedScheduleServiceInterface) *FixedScheduleController {
	return &FixedScheduleController{
		BaseController:       controller.NewBaseController(),
		FixedScheduleService: svc,
	}
}

// getUserIDFromContext extracts the user ID from JWT context.
func (c *FixedScheduleController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// Update handles PUT /fixed-schedule
func (c *FixedScheduleController) Update(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.UpdateFixedScheduleRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	if appErr := c.FixedScheduleService.Consolidate(ctx.Request().Context(), userID, req.Days); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Fixed schedule saved")
}

// Get handles GET /fixed-schedule
func (c *FixedScheduleController) Get(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.FixedScheduleService.Read(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
