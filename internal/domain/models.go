package domain

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&User{},
		&Profile{},
		&Trainer{},
		&Pricing{},
		&AvailabilitySlot{},
		&TrainingRequest{},
		&TrainingApplication{},
		&Booking{},
		&Payment{},
		&Review{},
		&Message{},
		&FeedbackLink{},
		&FeedbackResponse{},
		&PayoutBatch{},
		&TrainerPayout{},
		&PlatformSetting{},
		&Job{},
		&SuccessStory{},
		&Upload{},
	}
}
