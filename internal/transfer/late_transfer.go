package transfer

// Payload shapes for the Late scheduling API (POST /api/v1/posts).

type LateMediaItem struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type LatePlatform struct {
	Platform  string `json:"platform"`
	AccountID string `json:"accountId"`
}

type LatePostRequest struct {
	ProfileID    string          `json:"profileId"`
	Platforms    []LatePlatform  `json:"platforms"`
	Content      string          `json:"content"`
	ScheduledFor string          `json:"scheduledFor"`
	Timezone     string          `json:"timezone"`
	MediaItems   []LateMediaItem `json:"mediaItems,omitempty"`
}

type LatePostResponse struct {
	Post struct {
		ID        string `json:"_id"`
		Status    string `json:"status"`
		Platforms []struct {
			Platform string `json:"platform"`
			Status   string `json:"status"`
		} `json:"platforms"`
	} `json:"post"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type LateAccount struct {
	ID        string `json:"_id"`
	Platform  string `json:"platform"`
	Username  string `json:"username"`
	Connected bool   `json:"connected"`
}

type LateAccountsResponse struct {
	Accounts []LateAccount `json:"accounts"`
	Error    string        `json:"error"`
}
