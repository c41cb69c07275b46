package utils

import (
	"github.com/google/uuid"
)

// NewReceiptReference generates the receipt identifier attached to a
// recorded donation.
func NewReceiptReference() string {
	return uuid.NewString()
}
