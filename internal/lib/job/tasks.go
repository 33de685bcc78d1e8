package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskWelcome           = "email:welcome"
	TaskOrderConfirmation = "email:order_confirmation"
)

type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

// NewWelcomeEmailTask retries up to 3 times on the default queue.
func NewWelcomeEmailTask(to, name string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{To: to, Name: name})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

type OrderConfirmationItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int32  `json:"price"`
}

type OrderConfirmationPayload struct {
	To      string                  `json:"to"`
	Name    string                  `json:"name"`
	OrderID int64                   `json:"order_id"`
	Items   []OrderConfirmationItem `json:"items"`
}

// NewOrderConfirmationTask goes to the critical queue; a buyer waits for it.
func NewOrderConfirmationTask(p OrderConfirmationPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskOrderConfirmation,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}
