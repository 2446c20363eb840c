package entity

import "time"

type Account struct {
	BaseNoDelete
	Number       string     `db:"number"`
	Name         string     `db:"name"`
	Address      string     `db:"address"`
	OTP          *string    `db:"otp"`
	OTPExpiresAt *time.Time `db:"otp_expires_at"`
	IsVerified   bool       `db:"is_verified"`
	PINHash      string     `db:"pin_hash"`
	Credit       int        `db:"credit"`
}

// IsNew is true until the owner has completed their profile.
func (a *Account) IsNew() bool {
	return a.Name == ""
}

// OTPMatches checks the stored code and its expiry at the given instant.
func (a *Account) OTPMatches(code string, at time.Time) bool {
	if a.OTP == nil || a.OTPExpiresAt == nil || code == "" {
		return false
	}
	return *a.OTP == code && at.Before(*a.OTPExpiresAt)
}
