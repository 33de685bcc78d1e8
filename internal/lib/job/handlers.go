package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/shoppingcart/internal/lib/email"
	"github.com/hibiken/asynq"
)

// Returning an error lets Asynq retry the task.

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(p.To, p.Name); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("failed to send welcome email")
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("successfully sent welcome email")

	return nil
}

func (j *JobService) handleOrderConfirmationTask(ctx context.Context, t *asynq.Task) error {
	var p OrderConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal order confirmation payload: %w: %w", err, asynq.SkipRetry)
	}

	items := make([]email.OrderConfirmationItem, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, email.OrderConfirmationItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	log := j.logger.With().
		Str("type", "order_confirmation").
		Str("to", p.To).
		Int64("order_id", p.OrderID).
		Logger()

	log.Info().Msg("processing order confirmation task")

	if err := j.mailer.SendOrderConfirmationEmail(p.To, email.NewOrderConfirmationData(p.Name, p.OrderID, items)); err != nil {
		log.Error().Err(err).Msg("failed to send order confirmation email")
		return err
	}

	log.Info().Msg("successfully sent order confirmation email")
	return nil
}
