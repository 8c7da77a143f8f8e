package service

import (
	"context"
	"sort"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/internal/engine/repo"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/go-arcade/guild/pkg/id"
	"github.com/go-arcade/guild/pkg/log"
	pkgerrors "github.com/pkg/errors"
)

type CommitteeService struct {
	repos      *repo.Repositories
	permission *PermissionService
}

func NewCommitteeService(repos *repo.Repositories, permission *PermissionService) *CommitteeService {
	return &CommitteeService{repos: repos, permission: permission}
}

// List returns every committee the caller resolves to at least MEMBER on
func (cs *CommitteeService) List(ctx context.Context, userId string) ([]*model.CommitteeView, error) {
	candidates := map[string]*model.Committee{}

	adminOrg, err := cs.permission.AdminOrg(ctx, userId)
	if err != nil {
		return nil, err
	}
	if adminOrg != nil {
		committees, err := cs.repos.Committee.ListByOrg(ctx, adminOrg.OrgId)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "list committees")
		}
		for _, c := range committees {
			candidates[c.CommitteeId] = c
		}
	}

	roles, err := cs.repos.UserRole.ListRoles(ctx, userId)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load user roles")
	}
	roleIds := make([]string, 0, len(roles))
	for _, r := range roles {
		roleIds = append(roleIds, r.RoleId)
	}
	grants, err := cs.repos.Permission.ListByRoles(ctx, roleIds)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load grants")
	}
	var granted []string
	for _, g := range grants {
		if _, ok := candidates[g.CommitteeId]; !ok {
			granted = append(granted, g.CommitteeId)
		}
	}
	committees, err := cs.repos.Committee.ListByIds(ctx, granted)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list committees")
	}
	for _, c := range committees {
		candidates[c.CommitteeId] = c
	}

	views := make([]*model.CommitteeView, 0, len(candidates))
	for _, c := range candidates {
		d, err := cs.permission.Check(ctx, userId, c.CommitteeId, RequireMember)
		if err != nil {
			return nil, err
		}
		if !d.Allowed {
			continue
		}
		views = append(views, &model.CommitteeView{Committee: c, Permission: d.Level, IsAdmin: d.IsAdmin})
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].Name != views[j].Name {
			return views[i].Name < views[j].Name
		}
		return views[i].CommitteeId < views[j].CommitteeId
	})
	return views, nil
}

func (cs *CommitteeService) Get(ctx context.Context, userId, committeeId string) (*model.CommitteeView, error) {
	d, err := cs.permission.Require(ctx, userId, committeeId, RequireMember)
	if err != nil {
		return nil, err
	}
	c, err := cs.repos.Committee.Get(ctx, committeeId)
	if err != nil {
		return nil, dbError(err, http.CommitteeNotExist, nil, "load committee")
	}
	return &model.CommitteeView{Committee: c, Permission: d.Level, IsAdmin: d.IsAdmin}, nil
}

// Access reports the caller's resolved level on the committee
func (cs *CommitteeService) Access(ctx context.Context, userId, committeeId string) (*model.AccessView, error) {
	d, err := cs.permission.Require(ctx, userId, committeeId, RequireNone)
	if err != nil {
		return nil, err
	}
	return &model.AccessView{CommitteeId: committeeId, Permission: d.Level, IsAdmin: d.IsAdmin}, nil
}

func (cs *CommitteeService) Create(ctx context.Context, userId string, req *model.CreateCommitteeReq) (*model.Committee, error) {
	org, err := cs.permission.RequireAdminOrg(ctx, userId)
	if err != nil {
		return nil, err
	}
	taken, err := cs.repos.Committee.NameTaken(ctx, org.OrgId, req.Name, "")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "check committee name")
	}
	if taken {
		return nil, http.CommitteeNameExist
	}
	c := &model.Committee{
		CommitteeId: id.GetUUIDWithoutDashes(),
		OrgId:       org.OrgId,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := cs.repos.Committee.Create(ctx, c); err != nil {
		return nil, dbError(err, nil, http.CommitteeNameExist, "create committee")
	}
	return c, nil
}

func (cs *CommitteeService) Update(ctx context.Context, userId, committeeId string, req *model.UpdateCommitteeReq) (*model.Committee, error) {
	d, err := cs.permission.Require(ctx, userId, committeeId, RequireAdmin)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if req.Name != nil {
		taken, err := cs.repos.Committee.NameTaken(ctx, d.OrgId, *req.Name, committeeId)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "check committee name")
		}
		if taken {
			return nil, http.CommitteeNameExist
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) > 0 {
		if err := cs.repos.Committee.Update(ctx, committeeId, updates); err != nil {
			return nil, dbError(err, nil, http.CommitteeNameExist, "update committee")
		}
	}
	c, err := cs.repos.Committee.Get(ctx, committeeId)
	if err != nil {
		return nil, dbError(err, http.CommitteeNotExist, nil, "load committee")
	}
	return c, nil
}

// Delete removes the committee with its grants, tasks, assignments and comments
func (cs *CommitteeService) Delete(ctx context.Context, userId, committeeId string) error {
	if _, err := cs.permission.Require(ctx, userId, committeeId, RequireAdmin); err != nil {
		return err
	}
	if err := cs.repos.Committee.Delete(ctx, committeeId); err != nil {
		return pkgerrors.Wrap(err, "delete committee")
	}
	log.Infow("committee deleted", "committeeId", committeeId, "by", userId)
	return nil
}
