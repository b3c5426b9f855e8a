package repository

import (
	"Lighthouse/internal/model"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type OrganizationRepo interface {
	// GetByName 按名称精确查找，未找到时返回 nil, nil
	GetByName(ctx context.Context, name string) (*model.Organization, error)
	// FindNamesLike 名称模糊匹配，用于解析失败时向调用方提示候选
	FindNamesLike(ctx context.Context, name string, limit int) ([]string, error)
	ListIDs(ctx context.Context) ([]string, error)
}

type organizationRepoImpl struct {
	db *gorm.DB
}

func NewOrganizationRepo(db *gorm.DB) OrganizationRepo {
	return &organizationRepoImpl{db: db}
}

func (r *organizationRepoImpl) GetByName(ctx context.Context, name string) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepoImpl) FindNamesLike(ctx context.Context, name string, limit int) ([]string, error) {
	names := make([]string, 0, limit)
	err := r.db.WithContext(ctx).
		Model(&model.Organization{}).
		Where("lower(name) LIKE ?", "%"+strings.ToLower(name)+"%").
		Limit(limit).
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *organizationRepoImpl) ListIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&model.Organization{}).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
