package model

// Role is an organization scoped bundle of committee grants
type Role struct {
	BaseModel
	RoleId      string `gorm:"column:role_id;size:64;not null;uniqueIndex" json:"roleId"`
	OrgId       string `gorm:"column:org_id;size:64;not null;uniqueIndex:uk_role_org_name,priority:1" json:"orgId"`
	Name        string `gorm:"column:name;size:64;not null;uniqueIndex:uk_role_org_name,priority:2" json:"name"`
	Description string `gorm:"column:description;size:512" json:"description"`
}

func (Role) TableName() string {
	return "t_role"
}

type UserRole struct {
	BaseModel
	UserId string `gorm:"column:user_id;size:64;not null;uniqueIndex:uk_user_role,priority:1" json:"userId"`
	RoleId string `gorm:"column:role_id;size:64;not null;uniqueIndex:uk_user_role,priority:2;index" json:"roleId"`

	Role *Role `gorm:"foreignKey:RoleId;references:RoleId;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserRole) TableName() string {
	return "t_user_role"
}

type CreateRoleReq struct {
	Name        string `json:"name" validate:"required,max=64"`
	Description string `json:"description" validate:"max=512"`
}

type UpdateRoleReq struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=512"`
}

type AssignRoleReq struct {
	UserId string `json:"userId" validate:"required,max=64"`
	RoleId string `json:"roleId" validate:"required,max=64"`
}

type RolePermissionView struct {
	CommitteeId   string          `json:"committeeId"`
	CommitteeName string          `json:"committeeName"`
	Permission    PermissionLevel `json:"permission"`
}

// RoleDetail is a role with its committee grants
type RoleDetail struct {
	*Role
	Permissions []RolePermissionView `json:"permissions"`
}
