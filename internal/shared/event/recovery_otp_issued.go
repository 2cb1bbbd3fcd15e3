package event

const RecoveryOTPIssuedDestination string = "recovery_otp_issued"
const RecoveryOTPIssuedConsumerAudit string = "recovery_otp_issued_audit"

type RecoveryOTPIssuedMessage struct {
	EventID   string `json:"event_id"`
	EmailHash string `json:"email_hash"`
	IssuedAt  int64  `json:"issued_at"`
}
