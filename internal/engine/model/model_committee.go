package model

type Committee struct {
	BaseModel
	CommitteeId string `gorm:"column:committee_id;size:64;not null;uniqueIndex" json:"committeeId"`
	OrgId       string `gorm:"column:org_id;size:64;not null;uniqueIndex:uk_committee_org_name,priority:1" json:"orgId"`
	Name        string `gorm:"column:name;size:128;not null;uniqueIndex:uk_committee_org_name,priority:2" json:"name"`
	Description string `gorm:"column:description;size:1024" json:"description"`
}

func (Committee) TableName() string {
	return "t_committee"
}

type CreateCommitteeReq struct {
	Name        string `json:"name" validate:"required,max=128"`
	Description string `json:"description" validate:"max=1024"`
}

type UpdateCommitteeReq struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=128"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1024"`
}

// CommitteeView carries the caller's resolved access alongside the committee
type CommitteeView struct {
	*Committee
	Permission PermissionLevel `json:"permission"`
	IsAdmin    bool            `json:"isAdmin"`
}
