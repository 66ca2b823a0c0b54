package model

const (
	// Content limits
	MaxTitleLength       = 50
	MaxDescriptionLength = 750
)
