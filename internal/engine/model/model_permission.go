package model

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// PermissionLevel is the access ceiling a role grants on a committee.
// Levels are totally ordered: PermissionNone < PermissionMember < PermissionLeader.
type PermissionLevel int

const (
	PermissionNone PermissionLevel = iota
	PermissionMember
	PermissionLeader
)

func (p PermissionLevel) String() string {
	switch p {
	case PermissionMember:
		return "MEMBER"
	case PermissionLeader:
		return "LEADER"
	default:
		return "NONE"
	}
}

func (p PermissionLevel) Valid() bool {
	return p >= PermissionNone && p <= PermissionLeader
}

// AtLeast reports whether p satisfies required
func (p PermissionLevel) AtLeast(required PermissionLevel) bool {
	return p >= required
}

// MaxPermission returns the higher of two levels
func MaxPermission(a, b PermissionLevel) PermissionLevel {
	if a > b {
		return a
	}
	return b
}

func ParsePermissionLevel(s string) (PermissionLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE", "":
		return PermissionNone, nil
	case "MEMBER":
		return PermissionMember, nil
	case "LEADER":
		return PermissionLeader, nil
	default:
		return PermissionNone, fmt.Errorf("unknown permission level %q", s)
	}
}

func (p PermissionLevel) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

func (p *PermissionLevel) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("permission level must be a string: %w", err)
	}
	level, err := ParsePermissionLevel(s)
	if err != nil {
		return err
	}
	*p = level
	return nil
}

// Value stores the level by name
func (p PermissionLevel) Value() (driver.Value, error) {
	return p.String(), nil
}

func (p *PermissionLevel) Scan(value any) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*p = PermissionNone
		return nil
	default:
		return fmt.Errorf("cannot scan %T into PermissionLevel", value)
	}
	level, err := ParsePermissionLevel(s)
	if err != nil {
		return err
	}
	*p = level
	return nil
}

// RoleCommitteePermission grants a role a level on one committee. Only MEMBER
// and LEADER are stored; a missing row means NONE.
type RoleCommitteePermission struct {
	BaseModel
	RoleId      string          `gorm:"column:role_id;size:64;not null;uniqueIndex:uk_role_committee,priority:1" json:"roleId"`
	CommitteeId string          `gorm:"column:committee_id;size:64;not null;uniqueIndex:uk_role_committee,priority:2;index" json:"committeeId"`
	Permission  PermissionLevel `gorm:"column:permission;type:varchar(16);not null" json:"permission"`

	Role      *Role      `gorm:"foreignKey:RoleId;references:RoleId;constraint:OnDelete:CASCADE" json:"-"`
	Committee *Committee `gorm:"foreignKey:CommitteeId;references:CommitteeId;constraint:OnDelete:CASCADE" json:"-"`
}

func (RoleCommitteePermission) TableName() string {
	return "t_role_committee_permission"
}

// CommitteePermissionReq sets one committee's level on a role; NONE removes the grant
type CommitteePermissionReq struct {
	CommitteeId string `json:"committeeId" validate:"required,max=64"`
	Permission  string `json:"permission" validate:"required,oneof=NONE MEMBER LEADER"`
}

type SetRolePermissionsReq struct {
	RoleId      string                   `json:"roleId" validate:"required,max=64"`
	Permissions []CommitteePermissionReq `json:"permissions" validate:"required,dive"`
}

// AccessView is the caller's resolved access on a committee
type AccessView struct {
	CommitteeId string          `json:"committeeId"`
	Permission  PermissionLevel `json:"permission"`
	IsAdmin     bool            `json:"isAdmin"`
}
