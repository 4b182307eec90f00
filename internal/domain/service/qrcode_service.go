package service

// QRCodeService defines the interface for generating and parsing voucher claim
// QR codes (printed on packaging inserts and shared in chat).
type QRCodeService interface {
	// GenerateClaimQR generates a QR code image encoding a voucher claim link.
	GenerateClaimQR(voucherCode string) ([]byte, error)

	// ParseClaimQR extracts the voucher code from scanned QR data.
	ParseClaimQR(qrData string) (string, error)
}
