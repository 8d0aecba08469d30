package queue

import (
	"github.com/cambrewitt-ship-it/contentflow/internal/service"
)

type Queue struct {
	late service.LateService
}

func NewQueue(late service.LateService) *Queue {
	return &Queue{
		late: late,
	}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID    int64    `json:"post_id"`
	Platforms []string `json:"platforms"`
	Timezone  string   `json:"timezone"`
}
