package constants

const (
	ActivityCreated   = "created"
	ActivityUpdated   = "updated"
	ActivityCompleted = "marked completed"
)
