package model

import (
	"time"

	"taskhero.com/taskhero/internal/constants"
)

type Task struct {
	ID          string               `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string               `gorm:"size:36;not null;index:idx_tasks_owner_status,priority:1" json:"owner_id"`
	Title       string               `gorm:"size:200;not null" json:"title"`
	Description string               `gorm:"type:text" json:"description"`
	DueDate     *time.Time           `gorm:"type:date;index" json:"due_date,omitempty"`
	Status      constants.TaskStatus `gorm:"type:varchar(20);not null;default:TODO;index:idx_tasks_owner_status,priority:2" json:"status"`
	Priority    constants.Priority   `gorm:"type:varchar(10);not null;default:MEDIUM" json:"priority"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// IsOverdue reports whether the due date lies strictly before today's
// calendar date and the task is not completed.
func (t Task) IsOverdue(today time.Time) bool {
	if t.DueDate == nil || t.Status == constants.StatusCompleted {
		return false
	}
	return dateKey(*t.DueDate) < dateKey(today)
}

func (t Task) PriorityColor() string {
	return t.Priority.Color()
}

// DueDateValue formats the due date for date inputs.
func (t Task) DueDateValue() string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.Format(DateLayout)
}

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
