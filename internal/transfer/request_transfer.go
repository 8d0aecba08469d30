package transfer

type ClientCreation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	BrandColor  string `json:"brand_color"`
}

type ClientUpdate struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Website       *string `json:"website"`
	BrandColor    *string `json:"brand_color"`
	LateProfileID *string `json:"late_profile_id"`
}

type ProjectCreation struct {
	ClientID    int64  `json:"client_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProjectUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type PostCreation struct {
	ClientID  int64   `json:"client_id"`
	ProjectID *int64  `json:"project_id"`
	Caption   string  `json:"caption"`
	ImageURL  *string `json:"image_url"`
}

type PostUpdate struct {
	Caption       *string `json:"caption"`
	ImageURL      *string `json:"image_url"`
	ScheduledDate *string `json:"scheduled_date"`
	ScheduledTime *string `json:"scheduled_time"`
}

type PostSchedule struct {
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
}

type RevisionCreation struct {
	Caption  string `json:"caption"`
	EditedBy string `json:"edited_by"`
}

type SessionCreation struct {
	ClientID int64 `json:"client_id"`
}

type ApprovalDecision struct {
	Decision      string `json:"decision"`
	Comments      string `json:"comments"`
	EditedCaption string `json:"edited_caption"`
}

type UploadNotes struct {
	Notes string `json:"notes"`
}

type CheckoutCreation struct {
	Tier string `json:"tier"`
}

type CreditDeduction struct {
	Amount int `json:"amount"`
}

type PublishRequest struct {
	Platforms []string `json:"platforms"`
	Timezone  string   `json:"timezone"`
}
