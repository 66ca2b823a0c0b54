package model

// ModerationEventPayload is the queue message emitted after a moderation
// transition commits. Field names are part of the wire contract with the
// downstream consumers.
type ModerationEventPayload struct {
	ReviewID  int64 `json:"reviewId"`
	IsBlocked bool  `json:"isBlocked"`
}
