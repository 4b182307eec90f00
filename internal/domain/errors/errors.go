package errors

import (
	"net/http"

	"dacsan/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Cart and preview errors. These are recoverable inputs the caller must fix,
	// not internal failures.
	ErrInvalidCart = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CART",
		"Giỏ hàng trống hoặc không hợp lệ",
		"",
	)

	// Voucher-related errors
	ErrVoucherNotFound = NewBaseError(
		http.StatusNotFound,
		"VOUCHER_NOT_FOUND",
		"Không tìm thấy mã giảm giá",
		"",
	)

	ErrVoucherNotApplicable = NewBaseError(
		http.StatusUnprocessableEntity,
		"VOUCHER_NOT_APPLICABLE",
		"Mã giảm giá không thể áp dụng cho đơn hàng này",
		"",
	)

	ErrVoucherNotClaimed = NewBaseError(
		http.StatusUnprocessableEntity,
		"VOUCHER_NOT_CLAIMED",
		"Bạn chưa lưu mã giảm giá này",
		"",
	)

	ErrVoucherAlreadyClaimed = NewBaseError(
		http.StatusConflict,
		"VOUCHER_ALREADY_CLAIMED",
		"Bạn đã lưu mã giảm giá này rồi",
		"",
	)

	ErrVoucherOutOfSlots = NewBaseError(
		http.StatusConflict,
		"VOUCHER_OUT_OF_SLOTS",
		"Mã giảm giá đã hết lượt lưu",
		"",
	)

	ErrVoucherAlreadyUsed = NewBaseError(
		http.StatusConflict,
		"VOUCHER_ALREADY_USED",
		"Mã giảm giá đã được sử dụng",
		"",
	)

	// Loyalty point errors
	ErrPointsExceedLimit = NewBaseError(
		http.StatusUnprocessableEntity,
		"POINTS_EXCEED_LIMIT",
		"Số điểm sử dụng vượt quá mức cho phép",
		"",
	)

	ErrPointsExpired = NewBaseError(
		http.StatusUnprocessableEntity,
		"POINTS_EXPIRED",
		"Điểm thưởng đã hết hạn sử dụng",
		"",
	)

	// Shipping errors
	ErrShippingIneligible = NewBaseError(
		http.StatusUnprocessableEntity,
		"SHIPPING_INELIGIBLE",
		"Phương thức vận chuyển không khả dụng cho địa chỉ này",
		"",
	)

	// Commit errors. A conflict means a concurrent checkout won a race for stock,
	// a voucher slot or points; retrying with a fresh preview may succeed.
	ErrCommitConflict = NewBaseError(
		http.StatusConflict,
		"COMMIT_CONFLICT",
		"Đơn hàng chưa thể hoàn tất, vui lòng thử lại",
		"",
	)

	ErrProductOutOfStock = NewBaseError(
		http.StatusConflict,
		"PRODUCT_OUT_OF_STOCK",
		"Sản phẩm trong giỏ hàng đã hết hàng",
		"",
	)

	// Order lifecycle errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Không tìm thấy đơn hàng",
		"",
	)

	ErrCancellationWindowClosed = NewBaseError(
		http.StatusConflict,
		"CANCELLATION_WINDOW_CLOSED",
		"Đơn hàng không thể hủy ở giai đoạn này",
		"",
	)

	ErrAddressChangeLimitExceeded = NewBaseError(
		http.StatusConflict,
		"ADDRESS_CHANGE_LIMIT_EXCEEDED",
		"Mỗi đơn hàng chỉ được thay đổi địa chỉ giao hàng một lần",
		"",
	)

	ErrAddressChangeWindowClosed = NewBaseError(
		http.StatusConflict,
		"ADDRESS_CHANGE_WINDOW_CLOSED",
		"Đơn hàng không thể thay đổi địa chỉ ở giai đoạn này",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Dữ liệu gửi lên không hợp lệ",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Giao dịch cơ sở dữ liệu thất bại",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Lỗi hệ thống",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Truy cập bị từ chối",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Không tìm thấy tài nguyên",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Xung đột tài nguyên",
		"",
	)
)

// NewVoucherNotApplicableError builds a VOUCHER_NOT_APPLICABLE error carrying the
// machine-readable reason code from the eligibility evaluator in the details field.
func NewVoucherNotApplicableError(reason string) AppError {
	return ErrVoucherNotApplicable.WithDetails(reason)
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Thao tác cơ sở dữ liệu thất bại"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
