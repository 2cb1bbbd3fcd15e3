// Package mail defines the contracts for sending email messages.
//
// Callers depend on the Mail interface and the provider-agnostic Message
// payload. Two delivery mechanisms live here: plain SMTP (optionally using a
// well-known service preset such as Gmail) and the SendGrid HTTP API.
// NewFromDriver picks one by name so the choice stays in configuration.
package mail
