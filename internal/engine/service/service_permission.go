package service

import (
	"context"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/internal/engine/repo"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/go-arcade/guild/pkg/log"
	"github.com/go-arcade/guild/pkg/metrics"
	"github.com/go-arcade/guild/pkg/trace"
	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

/**
 * @file: service_permission.go
 * @description: committee permission resolution
 */

// Requirement is what an operation demands of the caller on a committee
type Requirement int

const (
	RequireNone Requirement = iota
	RequireMember
	RequireLeader
	// RequireAdmin is met only by the admin of the committee's organization
	RequireAdmin
)

func (r Requirement) String() string {
	switch r {
	case RequireMember:
		return "MEMBER"
	case RequireLeader:
		return "LEADER"
	case RequireAdmin:
		return "ADMIN"
	default:
		return "NONE"
	}
}

func (r Requirement) level() model.PermissionLevel {
	switch r {
	case RequireMember:
		return model.PermissionMember
	case RequireLeader, RequireAdmin:
		return model.PermissionLeader
	default:
		return model.PermissionNone
	}
}

// Decision is the outcome of resolving a user against a committee
type Decision struct {
	Allowed        bool
	Level          model.PermissionLevel
	IsAdmin        bool
	CommitteeFound bool
	OrgId          string
}

// PermissionService resolves effective committee levels. It keeps no state
// between calls; role and grant rows are read on every request.
type PermissionService struct {
	repos *repo.Repositories
}

func NewPermissionService(repos *repo.Repositories) *PermissionService {
	return &PermissionService{repos: repos}
}

// Resolve computes the user's effective level on the committee. The org
// admin is always LEADER. Otherwise the level is the highest grant across
// the user's roles in the committee's organization. Unknown committees and
// users resolve to NONE.
func (ps *PermissionService) Resolve(ctx context.Context, userId, committeeId string) (Decision, error) {
	var d Decision
	if userId == "" || committeeId == "" {
		return d, nil
	}

	committee, err := ps.repos.Committee.Get(ctx, committeeId)
	if err != nil {
		if isNotFound(err) {
			return d, nil
		}
		return d, pkgerrors.Wrap(err, "resolve committee")
	}
	d.CommitteeFound = true
	d.OrgId = committee.OrgId

	isAdmin, err := ps.IsOrgAdmin(ctx, userId, committee.OrgId)
	if err != nil {
		return d, err
	}
	if isAdmin {
		d.IsAdmin = true
		d.Level = model.PermissionLeader
		return d, nil
	}

	roles, err := ps.repos.UserRole.ListRolesInOrg(ctx, userId, committee.OrgId)
	if err != nil {
		return d, pkgerrors.Wrap(err, "load user roles")
	}
	if len(roles) == 0 {
		return d, nil
	}
	roleIds := make([]string, 0, len(roles))
	for _, r := range roles {
		roleIds = append(roleIds, r.RoleId)
	}

	grants, err := ps.repos.Permission.ListByRolesAndCommittee(ctx, roleIds, committeeId)
	if err != nil {
		return d, pkgerrors.Wrap(err, "load committee grants")
	}
	for _, g := range grants {
		d.Level = model.MaxPermission(d.Level, g.Permission)
		if d.Level == model.PermissionLeader {
			break
		}
	}
	return d, nil
}

// Check resolves the caller and compares the result against req
func (ps *PermissionService) Check(ctx context.Context, userId, committeeId string, req Requirement) (d Decision, err error) {
	if committeeId == "" && req != RequireNone {
		return Decision{}, http.CommitteeIdIsEmpty
	}
	ctx, span := trace.Start(ctx, "permission.check",
		attribute.String("guild.committee_id", committeeId),
		attribute.String("guild.requirement", req.String()),
	)
	defer func() {
		span.SetAttributes(
			attribute.String("guild.level", d.Level.String()),
			attribute.Bool("guild.allowed", d.Allowed),
			attribute.Bool("guild.org_admin", d.IsAdmin),
		)
		trace.End(span, err)
	}()

	d, err = ps.Resolve(ctx, userId, committeeId)
	if err != nil {
		return d, err
	}
	switch req {
	case RequireNone:
		d.Allowed = true
	case RequireAdmin:
		d.Allowed = d.IsAdmin
	default:
		d.Allowed = d.CommitteeFound && d.Level.AtLeast(req.level())
	}
	metrics.RecordPermissionDecision(req.String(), d.Allowed)
	return d, nil
}

// Require is Check turned into an error. A denied caller gets 403. Unknown
// committees are denied the same way so ids cannot be probed.
func (ps *PermissionService) Require(ctx context.Context, userId, committeeId string, req Requirement) (Decision, error) {
	d, err := ps.Check(ctx, userId, committeeId, req)
	if err != nil {
		return d, err
	}
	if !d.CommitteeFound && committeeId != "" && req != RequireNone {
		return d, http.PermissionDenied
	}
	if d.Allowed {
		return d, nil
	}
	log.Debugw("permission denied",
		"userId", userId,
		"committeeId", committeeId,
		"requirement", req.String(),
		"level", d.Level.String(),
	)
	if req == RequireAdmin {
		return d, http.AdminRequired
	}
	return d, http.PermissionDenied
}

func (ps *PermissionService) IsOrgAdmin(ctx context.Context, userId, orgId string) (bool, error) {
	if userId == "" || orgId == "" {
		return false, nil
	}
	org, err := ps.repos.Organization.Get(ctx, orgId)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, pkgerrors.Wrap(err, "load organization")
	}
	return org.AdminUserId == userId, nil
}

// AdminOrg returns the organization the user administers, or nil
func (ps *PermissionService) AdminOrg(ctx context.Context, userId string) (*model.Organization, error) {
	org, err := ps.repos.Organization.GetByAdmin(ctx, userId)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "load admin organization")
	}
	return org, nil
}

// RequireAdminOrg returns the caller's organization or AdminRequired
func (ps *PermissionService) RequireAdminOrg(ctx context.Context, userId string) (*model.Organization, error) {
	org, err := ps.AdminOrg(ctx, userId)
	if err != nil {
		return nil, err
	}
	if org == nil {
		metrics.RecordPermissionDecision(RequireAdmin.String(), false)
		return nil, http.AdminRequired
	}
	metrics.RecordPermissionDecision(RequireAdmin.String(), true)
	return org, nil
}

// RequireOrgAdmin fails with AdminRequired unless the caller administers orgId
func (ps *PermissionService) RequireOrgAdmin(ctx context.Context, userId, orgId string) error {
	ok, err := ps.IsOrgAdmin(ctx, userId, orgId)
	if err != nil {
		return err
	}
	metrics.RecordPermissionDecision(RequireAdmin.String(), ok)
	if !ok {
		return http.AdminRequired
	}
	return nil
}
