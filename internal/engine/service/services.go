package service

import (
	"github.com/go-arcade/guild/internal/engine/repo"
	"github.com/go-arcade/guild/pkg/cache"
	"github.com/go-arcade/guild/pkg/http"
)

type Services struct {
	Auth         *AuthService
	Permission   *PermissionService
	Organization *OrganizationService
	Role         *RoleService
	Committee    *CommitteeService
	Task         *TaskService
	Comment      *CommentService
	User         *UserService
}

func NewServices(auth http.Auth, repos *repo.Repositories, sessions *cache.SessionStore) *Services {
	permissionService := NewPermissionService(repos)
	authService := NewAuthService(auth, repos, sessions)
	organizationService := NewOrganizationService(repos, permissionService)

	return &Services{
		Auth:         authService,
		Permission:   permissionService,
		Organization: organizationService,
		Role:         NewRoleService(repos, permissionService, organizationService),
		Committee:    NewCommitteeService(repos, permissionService),
		Task:         NewTaskService(repos, permissionService),
		Comment:      NewCommentService(repos, permissionService),
		User:         NewUserService(repos, permissionService, authService),
	}
}
