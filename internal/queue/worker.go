package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

// HandlePublishPostTask runs when a scheduled post's publish time arrives.
// The scheduler adapter records the outcome, so a failure here is logged and
// not retried.
func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	if err := q.late.SchedulePost(ctx, payload.PostID, payload.Platforms, payload.Timezone); err != nil {
		log.Printf("Error publishing post %d: %v", payload.PostID, err)
	}
	return nil
}
