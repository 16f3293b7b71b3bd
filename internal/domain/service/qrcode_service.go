package service

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateJoinQR renders a classroom join code as a PNG QR image.
	GenerateJoinQR(joinCode string) ([]byte, error)

	// ParseJoinQR parses scanned QR data and returns the join code.
	ParseJoinQR(qrData string) (string, error)
}
