package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "dacsan/internal/delivery/context"
	"dacsan/internal/delivery/http/response"
	"dacsan/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// CheckoutHandlerParams holds dependencies for CheckoutHandler, injected by Fx.
type CheckoutHandlerParams struct {
	fx.In

	CheckoutUC usecase.CheckoutUsecase
	Logger     *slog.Logger
}

// CheckoutHandler holds dependencies for checkout-related handlers
type CheckoutHandler struct {
	checkoutUC usecase.CheckoutUsecase
	logger     *slog.Logger
}

// NewCheckoutHandler is the constructor for CheckoutHandler
func NewCheckoutHandler(params CheckoutHandlerParams) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC: params.CheckoutUC,
		logger:     params.Logger,
	}
}

// PreviewOrder handles computing a full price breakdown for the given cart
// and selections. Nothing is reserved; the preview is safe to repeat.
func (h *CheckoutHandler) PreviewOrder(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req usecase.CheckoutInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout preview input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	preview, err := h.checkoutUC.PreviewOrder(c.Request().Context(), userID, &req)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, preview, "Order preview computed successfully")
}

// PlaceOrder handles committing the checkout: everything the preview showed is
// re-validated and reserved atomically.
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req usecase.PlaceOrderInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	placed, err := h.checkoutUC.PlaceOrder(c.Request().Context(), userID, &req)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, placed, "Order placed successfully")
}

// ListDeliveryMethods handles listing every delivery method with its
// eligibility for the destination province given in the query string.
func (h *CheckoutHandler) ListDeliveryMethods(c echo.Context) error {
	province := c.QueryParam("province")

	decisions, err := h.checkoutUC.ListDeliveryMethods(c.Request().Context(), province)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, decisions, "Delivery methods retrieved successfully")
}
