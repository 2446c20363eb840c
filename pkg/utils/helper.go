package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// GenerateOTP creates a numeric code of the given length whose first digit is never zero.
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		length = 6
	}

	var sb strings.Builder
	for i := 0; i < length; i++ {
		max, offset := int64(10), int64(0)
		if i == 0 {
			max, offset = 9, 1
		}
		n, err := rand.Int(rand.Reader, big.NewInt(max))
		if err != nil {
			return "", err
		}
		sb.WriteString(strconv.FormatInt(n.Int64()+offset, 10))
	}

	return sb.String(), nil
}

// HashPIN returns a bcrypt hash of the PIN.
func HashPIN(pin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPIN compares a bcrypt hashed PIN with its possible plaintext equivalent.
func CheckPIN(hashedPIN, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPIN), []byte(pin)) == nil
}
