package event

const RecoveryPasswordResetRequestedDestination string = "recovery_password_reset_requested"
const RecoveryPasswordResetRequestedConsumerAudit string = "recovery_password_reset_requested_audit"

type RecoveryPasswordResetRequestedMessage struct {
	EventID     string `json:"event_id"`
	EmailHash   string `json:"email_hash"`
	RequestedAt int64  `json:"requested_at"`
}
