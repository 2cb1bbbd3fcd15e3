package config

// defaults apply to every Viper config and are overridden by the file and by
// OTPGATE_* variables.
var defaults = map[string]any{
	"app.name":                         "otpgate",
	"app.server.address":               ":8080",
	"app.server.read_timeout_seconds":  10,
	"app.server.write_timeout_seconds": 30,
	"app.goroutine.max":                100,

	"instrument.log_level":       "info",
	"instrument.log_mask_fields": "authorization,newpassword,otp,password",

	"mail.driver": "smtp",

	"messaging.driver": "none",

	"modules.recovery.expose_otp":                    true,
	"modules.recovery.idempotency.enabled":           false,
	"modules.recovery.idempotency.lock_seconds":      60,
	"modules.recovery.idempotency.state_ttl_seconds": 600,
}

func applyDefaults(set func(key string, value any)) {
	for key, value := range defaults {
		set(key, value)
	}
}
