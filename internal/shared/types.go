package shared

// Asynq task types.
const (
	TypeReviewModerationEvent = "review:moderation_event"
	TypeDatabaseBackup        = "maintenance:database_backup"
)

// Queue names. QueueModeration is the name the downstream consumers of the
// moderation feed subscribe to; changing it breaks them.
const (
	QueueModeration  = "undelete-review-service"
	QueueMaintenance = "maintenance"
)
