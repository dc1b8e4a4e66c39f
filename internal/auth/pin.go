package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	pinTTL  = 15 * time.Minute
	pinLow  = 100000
	pinSpan = 900000
)

// generatePin draws a 6-digit reset PIN uniformly from [100000, 999999] and
// returns it with its absolute expiry in epoch milliseconds.
func generatePin(now time.Time) (string, int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(pinSpan))
	if err != nil {
		return "", 0, fmt.Errorf("failed to draw random pin: %w", err)
	}
	pin := fmt.Sprintf("%06d", pinLow+n.Int64())
	return pin, now.Add(pinTTL).UnixMilli(), nil
}
