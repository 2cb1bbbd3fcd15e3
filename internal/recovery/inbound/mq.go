package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
	"github.com/shandysiswandi/otpgate/internal/shared/event"
)

// RegisterMQConsumer starts the audit consumers listed in
// modules.recovery.consumer_names on the goroutine manager.
func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Consumer,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	enabled := cfg.GetArray("modules.recovery.consumer_names")
	if len(enabled) == 0 {
		return
	}

	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	consumers := []struct {
		name    string // also the nsq channel / nats queue group
		topic   string
		handler messaging.Handler
	}{
		{
			name:    event.RecoveryOTPIssuedConsumerAudit,
			topic:   event.RecoveryOTPIssuedDestination,
			handler: mqHandler.OTPIssuedAudit,
		},
		{
			name:    event.RecoveryPasswordResetRequestedConsumerAudit,
			topic:   event.RecoveryPasswordResetRequestedDestination,
			handler: mqHandler.PasswordResetRequestedAudit,
		},
	}

	for _, consumer := range consumers {
		if !slices.Contains(enabled, consumer.name) {
			continue
		}

		err := routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(pCtx, "running job for handling consumer", "consumer", consumer.name)
			err := messenger.Consume(pCtx,
				consumer.topic,
				consumer.handler,
				messaging.WithGroup(consumer.name),
				messaging.WithConcurrency(4),
				messaging.WithMaxInFlight(16),
			)
			if pCtx.Err() != nil {
				return nil
			}
			return err
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to start consumer", "consumer", consumer.name, "error", err)
		}
	}
}
