package model

// Organization is the tenant. Each admin owns at most one.
type Organization struct {
	BaseModel
	OrgId       string `gorm:"column:org_id;size:64;not null;uniqueIndex" json:"orgId"`
	Name        string `gorm:"column:name;size:128;not null" json:"name"`
	Description string `gorm:"column:description;size:1024" json:"description"`
	Logo        string `gorm:"column:logo;size:512" json:"logo"`
	AdminUserId string `gorm:"column:admin_user_id;size:64;not null;uniqueIndex" json:"adminUserId"`
}

func (Organization) TableName() string {
	return "t_organization"
}

type CreateOrganizationReq struct {
	Name        string `json:"name" validate:"required,max=128"`
	Description string `json:"description" validate:"max=1024"`
	Logo        string `json:"logo" validate:"omitempty,max=512"`
}

type UpdateOrganizationReq struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=128"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1024"`
	Logo        *string `json:"logo,omitempty" validate:"omitempty,max=512"`
}
