package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/arcofed/federation-api/internal/repository"
)

type rolePermissionsRepository struct {
	db *sqlx.DB
}

type uiSettingsRepository struct {
	db *sqlx.DB
}

type sidebarLayoutRepository struct {
	db *sqlx.DB
}

type uiBuilderRepository struct {
	db *sqlx.DB
}

type roleModuleConfigRepository struct {
	db *sqlx.DB
}

type orgModuleConfigRepository struct {
	db *sqlx.DB
}

type userRepository struct {
	db *sqlx.DB
}

func NewRolePermissionsRepository(db *sqlx.DB) repository.RolePermissionsRepository {
	return &rolePermissionsRepository{db: db}
}

func NewUISettingsRepository(db *sqlx.DB) repository.UISettingsRepository {
	return &uiSettingsRepository{db: db}
}

func NewSidebarLayoutRepository(db *sqlx.DB) repository.SidebarLayoutRepository {
	return &sidebarLayoutRepository{db: db}
}

func NewUIBuilderRepository(db *sqlx.DB) repository.UIBuilderRepository {
	return &uiBuilderRepository{db: db}
}

func NewRoleModuleConfigRepository(db *sqlx.DB) repository.RoleModuleConfigRepository {
	return &roleModuleConfigRepository{db: db}
}

func NewOrgModuleConfigRepository(db *sqlx.DB) repository.OrgModuleConfigRepository {
	return &orgModuleConfigRepository{db: db}
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}
