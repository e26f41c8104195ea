package rating

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeRecomputeRating is the asynq task type for rating recomputation.
// Running recompute through the queue keeps review writes from ever blocking
// on (or failing because of) a transient recompute error; asynq retries the
// task until it lands.
const TypeRecomputeRating = "rating:recompute"

// RecomputePayload is the task payload.
type RecomputePayload struct {
	ShopID string `json:"shopId"`
}

// NewRecomputeTask builds the recompute task for a shop.
func NewRecomputeTask(shopID string) (*asynq.Task, error) {
	payload, err := json.Marshal(RecomputePayload{ShopID: shopID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRecomputeRating, payload), nil
}

// NewRecomputeHandler adapts an Aggregator into an asynq handler.
func NewRecomputeHandler(agg Aggregator) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p RecomputePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid recompute payload: %w", err)
		}
		if _, err := agg.Recompute(ctx, p.ShopID); err != nil {
			return fmt.Errorf("recompute rating for shop %s: %w", p.ShopID, err)
		}
		return nil
	}
}
