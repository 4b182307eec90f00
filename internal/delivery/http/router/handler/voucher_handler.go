package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "dacsan/internal/delivery/context"
	"dacsan/internal/delivery/http/response"
	"dacsan/internal/domain/entity"
	"dacsan/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// VoucherHandlerParams holds dependencies for VoucherHandler, injected by Fx.
type VoucherHandlerParams struct {
	fx.In

	VoucherUC usecase.VoucherUsecase
	Logger    *slog.Logger
}

// VoucherHandler holds dependencies for voucher-related handlers
type VoucherHandler struct {
	voucherUC usecase.VoucherUsecase
	logger    *slog.Logger
}

// NewVoucherHandler is the constructor for VoucherHandler
func NewVoucherHandler(params VoucherHandlerParams) *VoucherHandler {
	return &VoucherHandler{
		voucherUC: params.VoucherUC,
		logger:    params.Logger,
	}
}

// ListForCartRequest represents the request body for evaluating vouchers
// against a cart. An empty cart is allowed; eligibility is then computed
// against a zero subtotal.
type ListForCartRequest struct {
	Items []entity.CartItem `json:"items" validate:"dive"`
}

// ListForCart handles evaluating the user's claimed vouchers plus all public
// vouchers against the submitted cart.
func (h *VoucherHandler) ListForCart(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req ListForCartRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	statuses, err := h.voucherUC.ListForCart(c.Request().Context(), userID, req.Items)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, statuses, "Vouchers evaluated successfully")
}

// Claim handles taking one claim slot of the voucher for the user.
func (h *VoucherHandler) Claim(c echo.Context) error {
	userID := deliverycontext.GetUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	code := c.Param("code")
	if code == "" {
		return response.BadRequest(c, "INVALID_CODE", "Voucher code is required")
	}

	claim, err := h.voucherUC.Claim(c.Request().Context(), userID, code)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, claim, "Voucher claimed successfully")
}

// ClaimQR handles rendering a shareable QR code that encodes the claim link
// for the voucher.
func (h *VoucherHandler) ClaimQR(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return response.BadRequest(c, "INVALID_CODE", "Voucher code is required")
	}

	qrCode, err := h.voucherUC.ClaimQR(c.Request().Context(), code)
	if err != nil {
		return errors.WithStack(err)
	}

	// Return QR code as PNG image
	c.Response().Header().Set("Content-Disposition", "inline; filename=voucher-claim-qr.png")

	return c.Blob(http.StatusOK, "image/png", qrCode)
}
