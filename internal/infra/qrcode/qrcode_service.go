package qrcode

import (
	"fmt"
	"net/url"
	"strings"

	"dacsan/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

const claimPath = "/vouchers/claim"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance. The generated codes
// encode a claim deep link, so any camera app lands the customer on the claim
// page; the storefront app intercepts the same link natively.
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = 256
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// GenerateClaimQR generates a QR code image encoding a voucher claim link.
func (s *qrcodeService) GenerateClaimQR(voucherCode string) ([]byte, error) {
	link := fmt.Sprintf("%s%s?code=%s", s.baseURL, claimPath, url.QueryEscape(voucherCode))

	qrCode, err := qrcode.New(link, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseClaimQR extracts the voucher code from scanned QR data.
func (s *qrcodeService) ParseClaimQR(qrData string) (string, error) {
	parsed, err := url.Parse(qrData)
	if err != nil {
		return "", fmt.Errorf("failed to parse claim link: %w", err)
	}
	if !strings.HasSuffix(parsed.Path, claimPath) {
		return "", fmt.Errorf("not a voucher claim link: %s", parsed.Path)
	}

	code := parsed.Query().Get("code")
	if code == "" {
		return "", fmt.Errorf("claim link is missing the voucher code")
	}

	return code, nil
}
