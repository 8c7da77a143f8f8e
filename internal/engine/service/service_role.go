package service

import (
	"context"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/internal/engine/repo"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/go-arcade/guild/pkg/id"
	"github.com/go-arcade/guild/pkg/log"
	pkgerrors "github.com/pkg/errors"
)

type RoleService struct {
	repos      *repo.Repositories
	permission *PermissionService
	orgs       *OrganizationService
}

func NewRoleService(repos *repo.Repositories, permission *PermissionService, orgs *OrganizationService) *RoleService {
	return &RoleService{
		repos:      repos,
		permission: permission,
		orgs:       orgs,
	}
}

// List returns the roles of the caller's organization
func (rs *RoleService) List(ctx context.Context, userId string) ([]*model.Role, error) {
	org, err := rs.orgs.Mine(ctx, userId)
	if err != nil {
		if isHTTPError(err, http.OrgNotExist) {
			return []*model.Role{}, nil
		}
		return nil, err
	}
	roles, err := rs.repos.Role.ListByOrg(ctx, org.OrgId)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list roles")
	}
	return roles, nil
}

// Get returns a role with its grants to callers belonging to its organization
func (rs *RoleService) Get(ctx context.Context, userId, roleId string) (*model.RoleDetail, error) {
	role, err := rs.load(ctx, roleId)
	if err != nil {
		return nil, err
	}
	orgIds, err := rs.orgs.memberOrgIds(ctx, userId)
	if err != nil {
		return nil, err
	}
	member := false
	for _, orgId := range orgIds {
		if orgId == role.OrgId {
			member = true
			break
		}
	}
	if !member {
		return nil, http.PermissionDenied
	}
	return rs.detail(ctx, role)
}

func (rs *RoleService) Create(ctx context.Context, userId string, req *model.CreateRoleReq) (*model.Role, error) {
	org, err := rs.permission.RequireAdminOrg(ctx, userId)
	if err != nil {
		return nil, err
	}
	taken, err := rs.repos.Role.NameTaken(ctx, org.OrgId, req.Name, "")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "check role name")
	}
	if taken {
		return nil, http.RoleNameExist
	}
	role := &model.Role{
		RoleId:      id.GetUUIDWithoutDashes(),
		OrgId:       org.OrgId,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := rs.repos.Role.Create(ctx, role); err != nil {
		return nil, dbError(err, nil, http.RoleNameExist, "create role")
	}
	return role, nil
}

func (rs *RoleService) Update(ctx context.Context, userId, roleId string, req *model.UpdateRoleReq) (*model.Role, error) {
	role, err := rs.loadAsAdmin(ctx, userId, roleId)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if req.Name != nil && *req.Name != role.Name {
		taken, err := rs.repos.Role.NameTaken(ctx, role.OrgId, *req.Name, roleId)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "check role name")
		}
		if taken {
			return nil, http.RoleNameExist
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) > 0 {
		if err := rs.repos.Role.Update(ctx, roleId, updates); err != nil {
			return nil, dbError(err, nil, http.RoleNameExist, "update role")
		}
	}
	return rs.load(ctx, roleId)
}

// Delete removes the role, its grants and its assignments
func (rs *RoleService) Delete(ctx context.Context, userId, roleId string) error {
	if _, err := rs.loadAsAdmin(ctx, userId, roleId); err != nil {
		return err
	}
	if err := rs.repos.Role.Delete(ctx, roleId); err != nil {
		return pkgerrors.Wrap(err, "delete role")
	}
	log.Infow("role deleted", "roleId", roleId, "by", userId)
	return nil
}

func (rs *RoleService) Assign(ctx context.Context, userId string, req *model.AssignRoleReq) error {
	if _, err := rs.loadAsAdmin(ctx, userId, req.RoleId); err != nil {
		return err
	}
	if _, err := rs.repos.User.Get(ctx, req.UserId); err != nil {
		return dbError(err, http.UserNotExist, nil, "load user")
	}
	exists, err := rs.repos.UserRole.Exists(ctx, req.UserId, req.RoleId)
	if err != nil {
		return pkgerrors.Wrap(err, "check assignment")
	}
	if exists {
		return http.RoleAlreadyAssigned
	}
	ur := &model.UserRole{UserId: req.UserId, RoleId: req.RoleId}
	if err := rs.repos.UserRole.Create(ctx, ur); err != nil {
		return dbError(err, nil, http.RoleAlreadyAssigned, "assign role")
	}
	return nil
}

func (rs *RoleService) Unassign(ctx context.Context, userId, targetUserId, roleId string) error {
	if _, err := rs.loadAsAdmin(ctx, userId, roleId); err != nil {
		return err
	}
	removed, err := rs.repos.UserRole.Delete(ctx, targetUserId, roleId)
	if err != nil {
		return pkgerrors.Wrap(err, "unassign role")
	}
	if !removed {
		return http.UserRoleNotExist
	}
	return nil
}

// SetPermissions writes the role's level on each listed committee. Writing
// the same levels again leaves exactly the same rows. NONE removes the
// grant. Committees must belong to the role's organization.
func (rs *RoleService) SetPermissions(ctx context.Context, userId string, req *model.SetRolePermissionsReq) (*model.RoleDetail, error) {
	role, err := rs.loadAsAdmin(ctx, userId, req.RoleId)
	if err != nil {
		return nil, err
	}

	levels := make(map[string]model.PermissionLevel, len(req.Permissions))
	order := make([]string, 0, len(req.Permissions))
	for _, p := range req.Permissions {
		level, err := model.ParsePermissionLevel(p.Permission)
		if err != nil {
			return nil, http.ValidationFailed.WithIssues([]http.Issue{{
				Field:   "permission",
				Tag:     "oneof",
				Message: err.Error(),
			}})
		}
		committee, err := rs.repos.Committee.Get(ctx, p.CommitteeId)
		if err != nil {
			return nil, dbError(err, http.CommitteeNotExist, nil, "load committee")
		}
		if committee.OrgId != role.OrgId {
			return nil, http.CrossOrgPermission
		}
		if _, ok := levels[p.CommitteeId]; !ok {
			order = append(order, p.CommitteeId)
		}
		levels[p.CommitteeId] = level
	}

	err = rs.repos.Transaction(ctx, func(tx *repo.Repositories) error {
		for _, committeeId := range order {
			level := levels[committeeId]
			if level == model.PermissionNone {
				if err := tx.Permission.Delete(ctx, role.RoleId, committeeId); err != nil {
					return err
				}
				continue
			}
			if err := tx.Permission.Upsert(ctx, role.RoleId, committeeId, level); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "set role permissions")
	}
	return rs.detail(ctx, role)
}

func (rs *RoleService) load(ctx context.Context, roleId string) (*model.Role, error) {
	role, err := rs.repos.Role.Get(ctx, roleId)
	if err != nil {
		return nil, dbError(err, http.RoleNotExist, nil, "load role")
	}
	return role, nil
}

func (rs *RoleService) loadAsAdmin(ctx context.Context, userId, roleId string) (*model.Role, error) {
	role, err := rs.load(ctx, roleId)
	if err != nil {
		return nil, err
	}
	if err := rs.permission.RequireOrgAdmin(ctx, userId, role.OrgId); err != nil {
		return nil, err
	}
	return role, nil
}

func (rs *RoleService) detail(ctx context.Context, role *model.Role) (*model.RoleDetail, error) {
	grants, err := rs.repos.Permission.ListByRole(ctx, role.RoleId)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list role permissions")
	}
	committeeIds := make([]string, 0, len(grants))
	for _, g := range grants {
		committeeIds = append(committeeIds, g.CommitteeId)
	}
	committees, err := rs.repos.Committee.ListByIds(ctx, committeeIds)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list committees")
	}
	names := make(map[string]string, len(committees))
	for _, c := range committees {
		names[c.CommitteeId] = c.Name
	}
	views := make([]model.RolePermissionView, 0, len(grants))
	for _, g := range grants {
		views = append(views, model.RolePermissionView{
			CommitteeId:   g.CommitteeId,
			CommitteeName: names[g.CommitteeId],
			Permission:    g.Permission,
		})
	}
	return &model.RoleDetail{Role: role, Permissions: views}, nil
}
