package entity

import "time"

// OTPIssued records that an OTP email was accepted by the mail transport.
// Neither the address nor the code is kept; EmailHash is a keyed digest.
type OTPIssued struct {
	EventID   string
	EmailHash string
	IssuedAt  time.Time
}

// PasswordResetRequested records an accepted password reset request. The new
// password is never part of it.
type PasswordResetRequested struct {
	EventID     string
	EmailHash   string
	RequestedAt time.Time
}
