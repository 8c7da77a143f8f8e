package model

import (
	"gorm.io/datatypes"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Rank orders the status columns on a board
func (s TaskStatus) Rank() int {
	switch s {
	case TaskStatusTodo:
		return 0
	case TaskStatusInProgress:
		return 1
	case TaskStatusDone:
		return 2
	}
	return 3
}

// Task lives in one status column of a committee board. Position orders
// tasks inside the column and is never renumbered by the server.
type Task struct {
	BaseModel
	TaskId      string          `gorm:"column:task_id;size:64;not null;uniqueIndex" json:"taskId"`
	CommitteeId string          `gorm:"column:committee_id;size:64;not null;index:idx_task_board,priority:1" json:"committeeId"`
	Title       string          `gorm:"column:title;size:256;not null" json:"title"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Status      TaskStatus      `gorm:"column:status;size:16;not null;index:idx_task_board,priority:2" json:"status"`
	Position    int             `gorm:"column:position;not null;default:0" json:"position"`
	DueDate     *datatypes.Date `gorm:"column:due_date" json:"dueDate"`
	CreatedBy   string          `gorm:"column:created_by;size:64;not null" json:"createdBy"`

	Committee *Committee `gorm:"foreignKey:CommitteeId;references:CommitteeId;constraint:OnDelete:CASCADE" json:"-"`
}

func (Task) TableName() string {
	return "t_task"
}

type TaskAssignment struct {
	BaseModel
	TaskId string `gorm:"column:task_id;size:64;not null;uniqueIndex:uk_task_user,priority:1" json:"taskId"`
	UserId string `gorm:"column:user_id;size:64;not null;uniqueIndex:uk_task_user,priority:2;index" json:"userId"`

	Task *Task `gorm:"foreignKey:TaskId;references:TaskId;constraint:OnDelete:CASCADE" json:"-"`
}

func (TaskAssignment) TableName() string {
	return "t_task_assignment"
}

type CreateTaskReq struct {
	CommitteeId string          `json:"committeeId" validate:"required,max=64"`
	Title       string          `json:"title" validate:"required,max=256"`
	Description string          `json:"description" validate:"max=10000"`
	Status      TaskStatus      `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Position    *int            `json:"position,omitempty" validate:"omitempty,min=0"`
	DueDate     *datatypes.Date `json:"dueDate,omitempty"`
	AssigneeIds []string        `json:"assigneeIds" validate:"omitempty,dive,required,max=64"`
}

// UpdateTaskReq is a full edit. AssigneeIds, when present, replaces the
// assignee set.
type UpdateTaskReq struct {
	Title       *string         `json:"title,omitempty" validate:"omitempty,min=1,max=256"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=10000"`
	Status      *TaskStatus     `json:"status,omitempty" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Position    *int            `json:"position,omitempty" validate:"omitempty,min=0"`
	DueDate     *datatypes.Date `json:"dueDate,omitempty"`
	AssigneeIds *[]string       `json:"assigneeIds,omitempty" validate:"omitempty,dive,required,max=64"`
}

// MoveTaskReq moves a task between columns. Without a position the task is
// appended to the destination column.
type MoveTaskReq struct {
	Status   TaskStatus `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
	Position *int       `json:"position,omitempty" validate:"omitempty,min=0"`
}

// TaskDetail is a task with its assignees
type TaskDetail struct {
	*Task
	AssigneeIds []string `json:"assigneeIds"`
}
