package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateJoinQR(t *testing.T) {
	service := NewQRCodeService(256, "M")

	qrBytes, err := service.GenerateJoinQR("LEMON-42")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_ParseJoinQR(t *testing.T) {
	service := NewQRCodeService(256, "M")

	payload, err := json.Marshal(QRCodeData{JoinCode: "LEMON-42", Type: "classroom_join"})
	require.NoError(t, err)

	code, err := service.ParseJoinQR(string(payload))
	require.NoError(t, err)
	assert.Equal(t, "LEMON-42", code)
}

func TestQRCodeService_ParseJoinQR_Invalid(t *testing.T) {
	service := NewQRCodeService(256, "M")

	_, err := service.ParseJoinQR("not json")
	assert.Error(t, err)

	payload, _ := json.Marshal(QRCodeData{JoinCode: "LEMON-42", Type: "other"})
	_, err = service.ParseJoinQR(string(payload))
	assert.Error(t, err, "wrong type is rejected")

	payload, _ = json.Marshal(QRCodeData{Type: "classroom_join"})
	_, err = service.ParseJoinQR(string(payload))
	assert.Error(t, err, "empty join code is rejected")
}
