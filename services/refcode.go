package services

import (
	"crypto/rand"
	"errors"

	"github.com/Lebronlang/Boardify/models"

	"gorm.io/gorm"
)

const (
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceLength   = 8
)

// generateReferenceCode returns a fresh 8 character uppercase alphanumeric
// booking reference, checked against existing codes on the given handle.
func generateReferenceCode(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		b := make([]byte, referenceLength)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}
		for i, v := range b {
			b[i] = referenceAlphabet[int(v)%len(referenceAlphabet)]
		}
		code := string(b)

		var count int64
		if err := tx.Model(&models.Booking{}).Unscoped().
			Where("reference_code = ?", code).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique booking reference")
}
