// Package otp generates short numeric one-time passwords (OTP).
//
// Codes are meant to be delivered out of band (for example by email) so a
// user can prove possession of an address. Generation draws from crypto/rand
// and formatting relies on github.com/pquerna/otp digit handling.
package otp
