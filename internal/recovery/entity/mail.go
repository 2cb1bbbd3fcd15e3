package entity

import "fmt"

const OTPMailSubject string = "Your OTP Code"

// OTPMail is the message that carries a one-time password to its recipient.
type OTPMail struct {
	To  string
	OTP string
}

func (m OTPMail) Subject() string {
	return OTPMailSubject
}

func (m OTPMail) Text() string {
	return fmt.Sprintf("Your OTP code is: %s", m.OTP)
}
