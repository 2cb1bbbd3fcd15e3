// Command otpgate serves the account recovery endpoints: one-time password
// issuance by email and password reset requests.
package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/otpgate/internal/app"
)

func main() {
	application := app.New()
	wait := application.Start()
	<-wait

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx)
}
