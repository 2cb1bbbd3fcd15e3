package mail

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DriverSMTP selects the SMTP backend.
	DriverSMTP = "smtp"
	// DriverSendGrid selects the SendGrid API backend.
	DriverSendGrid = "sendgrid"
)

// ErrUnknownDriver indicates an unsupported mail driver.
var ErrUnknownDriver = errors.New("mail: unknown driver")

// FactoryOptions groups config for supported mail backends.
type FactoryOptions struct {
	// SMTP provides configuration for the SMTP driver.
	SMTP SMTPConfig
	// SendGrid provides configuration for the SendGrid driver.
	SendGrid SendGridConfig
}

// NewFromDriver constructs a Mail implementation by driver name.
//
// An empty driver selects SMTP.
func NewFromDriver(driver string, opts FactoryOptions) (Mail, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSMTP, "":
		return NewSMTP(opts.SMTP)
	case DriverSendGrid:
		return NewSendGrid(opts.SendGrid)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
