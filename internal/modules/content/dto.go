package content

type JobRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Location    string `json:"location" validate:"max=128"`
	Description string `json:"description" validate:"max=10000"`
	Active      *bool  `json:"active"`
}

type StoryRequest struct {
	ClientName string `json:"client_name" validate:"required,max=255"`
	TrainerID  *int64 `json:"trainer_id" validate:"omitempty,gt=0"`
	Title      string `json:"title" validate:"required,max=255"`
	Story      string `json:"story" validate:"required,max=20000"`
	ImageURL   string `json:"image_url" validate:"omitempty,url"`
	Published  *bool  `json:"published"`
}
