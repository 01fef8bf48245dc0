package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Check-in QR payloads carry the attendee/event/user triple plus an
// HMAC so the check-in endpoint can trust scanned data without a
// lookup round-trip for tampered codes.

func checkInSignature(attendeeID, eventID, userID uuid.UUID, secretKey string) string {
	data := fmt.Sprintf("%s:%s:%s", attendeeID.String(), eventID.String(), userID.String())
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func BuildCheckInPayload(attendeeID, eventID, userID uuid.UUID) string {
	secretKey := os.Getenv("JWT_SECRET")
	signature := checkInSignature(attendeeID, eventID, userID, secretKey)
	return fmt.Sprintf("attendee:%s;event:%s;user:%s;signature:%s",
		attendeeID.String(),
		eventID.String(),
		userID.String(),
		signature,
	)
}

func ParseCheckInPayload(payload string) (attendeeID uuid.UUID, err error) {
	parts := strings.Split(payload, ";")
	if len(parts) != 4 || !strings.HasPrefix(parts[0], "attendee:") || !strings.HasPrefix(parts[3], "signature:") {
		return uuid.Nil, fmt.Errorf("invalid QR data format")
	}
	return uuid.Parse(strings.TrimPrefix(parts[0], "attendee:"))
}

func ValidateCheckInPayload(attendeeID, eventID, userID uuid.UUID, payload string) bool {
	parts := strings.Split(payload, ";")
	if len(parts) != 4 || !strings.HasPrefix(parts[3], "signature:") {
		return false
	}

	secretKey := os.Getenv("JWT_SECRET")
	signature := strings.TrimPrefix(parts[3], "signature:")
	expectedSignature := checkInSignature(attendeeID, eventID, userID, secretKey)
	return hmac.Equal([]byte(expectedSignature), []byte(signature))
}
