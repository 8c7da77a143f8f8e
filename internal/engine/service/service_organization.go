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

type OrganizationService struct {
	repos      *repo.Repositories
	permission *PermissionService
}

func NewOrganizationService(repos *repo.Repositories, permission *PermissionService) *OrganizationService {
	return &OrganizationService{repos: repos, permission: permission}
}

// Create makes the caller the admin of a new organization. An admin owns at
// most one.
func (s *OrganizationService) Create(ctx context.Context, userId string, req *model.CreateOrganizationReq) (*model.Organization, error) {
	exists, err := s.repos.Organization.ExistsForAdmin(ctx, userId)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "check organization")
	}
	if exists {
		return nil, http.OrgAlreadyExist
	}
	org := &model.Organization{
		OrgId:       id.GetUUIDWithoutDashes(),
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		AdminUserId: userId,
	}
	if err := s.repos.Organization.Create(ctx, org); err != nil {
		return nil, dbError(err, nil, http.OrgAlreadyExist, "create organization")
	}
	log.Infow("organization created", "orgId", org.OrgId, "adminUserId", userId)
	return org, nil
}

// List returns the organizations the caller administers or holds a role in
func (s *OrganizationService) List(ctx context.Context, userId string) ([]*model.Organization, error) {
	orgIds, err := s.memberOrgIds(ctx, userId)
	if err != nil {
		return nil, err
	}
	orgs := make([]*model.Organization, 0, len(orgIds))
	for _, orgId := range orgIds {
		org, err := s.repos.Organization.Get(ctx, orgId)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, pkgerrors.Wrap(err, "load organization")
		}
		orgs = append(orgs, org)
	}
	return orgs, nil
}

// Mine returns the caller's primary organization: the one they administer,
// otherwise the first one they hold a role in
func (s *OrganizationService) Mine(ctx context.Context, userId string) (*model.Organization, error) {
	orgs, err := s.List(ctx, userId)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, http.OrgNotExist
	}
	return orgs[0], nil
}

func (s *OrganizationService) Get(ctx context.Context, orgId string) (*model.Organization, error) {
	org, err := s.repos.Organization.Get(ctx, orgId)
	if err != nil {
		return nil, dbError(err, http.OrgNotExist, nil, "load organization")
	}
	return org, nil
}

func (s *OrganizationService) Update(ctx context.Context, userId, orgId string, req *model.UpdateOrganizationReq) (*model.Organization, error) {
	if _, err := s.Get(ctx, orgId); err != nil {
		return nil, err
	}
	if err := s.permission.RequireOrgAdmin(ctx, userId, orgId); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Logo != nil {
		updates["logo"] = *req.Logo
	}
	if len(updates) > 0 {
		if err := s.repos.Organization.Update(ctx, orgId, updates); err != nil {
			return nil, dbError(err, nil, nil, "update organization")
		}
	}
	return s.Get(ctx, orgId)
}

// memberOrgIds lists the admin organization first, then role organizations
func (s *OrganizationService) memberOrgIds(ctx context.Context, userId string) ([]string, error) {
	var orgIds []string
	seen := map[string]struct{}{}
	adminOrg, err := s.permission.AdminOrg(ctx, userId)
	if err != nil {
		return nil, err
	}
	if adminOrg != nil {
		orgIds = append(orgIds, adminOrg.OrgId)
		seen[adminOrg.OrgId] = struct{}{}
	}
	roles, err := s.repos.UserRole.ListRoles(ctx, userId)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load user roles")
	}
	for _, r := range roles {
		if _, ok := seen[r.OrgId]; ok {
			continue
		}
		seen[r.OrgId] = struct{}{}
		orgIds = append(orgIds, r.OrgId)
	}
	return orgIds, nil
}
