package notify

import "errors"

var (
	// ErrMailerDisabled is returned when SMTP credentials are not
	// configured.
	ErrMailerDisabled = errors.New("mailer is disabled")
	// ErrAlertCooldown is returned when an alert for the same product is
	// still inside its cooldown window.
	ErrAlertCooldown = errors.New("alert is within cooldown period")
)
