package model

type User struct {
	BaseModel
	UserId   string `gorm:"column:user_id;size:64;not null;uniqueIndex" json:"userId"`
	Email    string `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	Password string `gorm:"column:password;size:255;not null" json:"-"`
	Name     string `gorm:"column:name;size:64;not null" json:"name"`
	IsActive bool   `gorm:"column:is_active;not null;default:true" json:"isActive"`
}

func (User) TableName() string {
	return "t_user"
}

type RegisterReq struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,max=64"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResp struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	User      *User  `json:"user"`
}

type UpdateUserReq struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6,max=72"`
}

// UserDetail is a user with the roles they hold
type UserDetail struct {
	*User
	Roles []*Role `json:"roles"`
}
