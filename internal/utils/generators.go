package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// GenerateRegistrationID returns a server-side registration id.
// Client-supplied ids are never trusted.
func GenerateRegistrationID() string {
	timestamp := time.Now().Unix()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999))
	return fmt.Sprintf("reg_%d_%06d", timestamp, randomNum.Int64())
}

// GenerateEventID returns a fresh event id.
func GenerateEventID() string {
	return uuid.New().String()
}
