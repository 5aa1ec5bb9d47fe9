package dto

// TaskRequestData is the task add/edit form.
type TaskRequestData struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	DueDate     string `form:"due_date" json:"due_date"`
	Status      string `form:"status" json:"status"`
	Priority    string `form:"priority" json:"priority"`
}
