package models

import "time"

const TaskStatusPending = "pending"

type Task struct {
	ID          string    `db:"id" json:"id"`
	TaskName    string    `db:"task_name" json:"task_name"`
	Description string    `db:"description" json:"description"`
	Status      string    `db:"status" json:"status"`
	UserID      string    `db:"user_id" json:"user_id"`
	Deleted     bool      `db:"deleted" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
