package model

// Comment is immutable once written
type Comment struct {
	BaseModel
	CommentId string `gorm:"column:comment_id;size:64;not null;uniqueIndex" json:"commentId"`
	TaskId    string `gorm:"column:task_id;size:64;not null;index" json:"taskId"`
	UserId    string `gorm:"column:user_id;size:64;not null" json:"userId"`
	Content   string `gorm:"column:content;type:text;not null" json:"content"`

	Task *Task `gorm:"foreignKey:TaskId;references:TaskId;constraint:OnDelete:CASCADE" json:"-"`
}

func (Comment) TableName() string {
	return "t_comment"
}

type CreateCommentReq struct {
	Content string `json:"content" validate:"required,max=4096"`
}
