package service

import (
	"context"

	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/internal/engine/repo"
	"github.com/go-arcade/guild/pkg/http"
	"github.com/go-arcade/guild/pkg/log"
	pkgerrors "github.com/pkg/errors"
)

type UserService struct {
	repos      *repo.Repositories
	permission *PermissionService
	auth       *AuthService
}

func NewUserService(repos *repo.Repositories, permission *PermissionService, auth *AuthService) *UserService {
	return &UserService{
		repos:      repos,
		permission: permission,
		auth:       auth,
	}
}

// Get returns a profile. The owner sees all their roles, an admin only the
// roles of their own organization.
func (us *UserService) Get(ctx context.Context, callerId, userId string) (*model.UserDetail, error) {
	org, err := us.requireSelfOrAdmin(ctx, callerId, userId)
	if err != nil {
		return nil, err
	}
	user, err := us.repos.User.Get(ctx, userId)
	if err != nil {
		return nil, dbError(err, http.UserNotExist, nil, "load user")
	}
	var roles []*model.Role
	if org == nil {
		roles, err = us.repos.UserRole.ListRoles(ctx, userId)
	} else {
		roles, err = us.repos.UserRole.ListRolesInOrg(ctx, userId, org.OrgId)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load user roles")
	}
	return &model.UserDetail{User: user, Roles: roles}, nil
}

// List returns the users of the caller's organization: its admin and every
// holder of one of its roles. Organization admins only.
func (us *UserService) List(ctx context.Context, callerId string) ([]*model.User, error) {
	org, err := us.permission.RequireAdminOrg(ctx, callerId)
	if err != nil {
		return nil, err
	}
	users, err := us.repos.User.ListByOrg(ctx, org)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list users")
	}
	return users, nil
}

// Update edits a profile. Only the owner may change the password.
func (us *UserService) Update(ctx context.Context, callerId, userId string, req *model.UpdateUserReq) (*model.UserDetail, error) {
	if _, err := us.requireSelfOrAdmin(ctx, callerId, userId); err != nil {
		return nil, err
	}
	if _, err := us.repos.User.Get(ctx, userId); err != nil {
		return nil, dbError(err, http.UserNotExist, nil, "load user")
	}
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		taken, err := us.repos.User.EmailTaken(ctx, email, userId)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "check email")
		}
		if taken {
			return nil, http.UserAlreadyExist
		}
		updates["email"] = email
	}
	if req.Password != nil {
		if callerId != userId {
			return nil, http.Forbidden.WithMsg("Only the account owner can change the password")
		}
		hash, err := getPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}
	if len(updates) > 0 {
		if err := us.repos.User.Update(ctx, userId, updates); err != nil {
			return nil, dbError(err, nil, http.UserAlreadyExist, "update user")
		}
	}
	return us.Get(ctx, callerId, userId)
}

// Deactivate blocks new logins and revokes every live session at once
func (us *UserService) Deactivate(ctx context.Context, callerId, userId string) error {
	if callerId == userId {
		if _, err := us.permission.RequireAdminOrg(ctx, callerId); err != nil {
			return err
		}
		return http.BadRequest.WithMsg("Admins cannot deactivate themselves")
	}
	if _, err := us.requireManaged(ctx, callerId, userId); err != nil {
		return err
	}
	if err := us.setActive(ctx, userId, false); err != nil {
		return err
	}
	if err := us.auth.RevokeAll(ctx, userId); err != nil {
		return err
	}
	log.Infow("user deactivated", "userId", userId, "by", callerId)
	return nil
}

func (us *UserService) Activate(ctx context.Context, callerId, userId string) error {
	if _, err := us.requireManaged(ctx, callerId, userId); err != nil {
		return err
	}
	if err := us.setActive(ctx, userId, true); err != nil {
		return err
	}
	log.Infow("user activated", "userId", userId, "by", callerId)
	return nil
}

func (us *UserService) setActive(ctx context.Context, userId string, active bool) error {
	if _, err := us.repos.User.Get(ctx, userId); err != nil {
		return dbError(err, http.UserNotExist, nil, "load user")
	}
	if err := us.repos.User.SetActive(ctx, userId, active); err != nil {
		return pkgerrors.Wrap(err, "update user status")
	}
	return nil
}

// requireSelfOrAdmin returns the admin's organization, or nil for the owner
func (us *UserService) requireSelfOrAdmin(ctx context.Context, callerId, userId string) (*model.Organization, error) {
	if callerId == userId {
		return nil, nil
	}
	return us.requireManaged(ctx, callerId, userId)
}

// requireManaged fails unless the caller administers an organization the
// target belongs to, as its admin or through one of its roles
func (us *UserService) requireManaged(ctx context.Context, callerId, userId string) (*model.Organization, error) {
	org, err := us.permission.RequireAdminOrg(ctx, callerId)
	if err != nil {
		return nil, err
	}
	if userId == org.AdminUserId {
		return org, nil
	}
	if _, err := us.repos.User.Get(ctx, userId); err != nil {
		return nil, dbError(err, http.UserNotExist, nil, "load user")
	}
	member, err := us.repos.UserRole.InOrg(ctx, userId, org.OrgId)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "check organization membership")
	}
	if !member {
		return nil, http.PermissionDenied.WithMsg("User is not a member of your organization")
	}
	return org, nil
}
