// Package repository provides a small generic gorm-backed store shared by
// the tenant-scoped CRUD services.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// QueryOption mutates the statement before it runs (ordering, limits,
// extra conditions).
type QueryOption func(*gorm.DB) *gorm.DB

func WithOrder(order string) QueryOption {
	return func(stmt *gorm.DB) *gorm.DB { return stmt.Order(order) }
}

func WithLimit(limit int) QueryOption {
	return func(stmt *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return stmt
		}
		return stmt.Limit(limit)
	}
}

func WithOffset(offset int) QueryOption {
	return func(stmt *gorm.DB) *gorm.DB {
		if offset <= 0 {
			return stmt
		}
		return stmt.Offset(offset)
	}
}

func WithCondition(query string, args ...any) QueryOption {
	return func(stmt *gorm.DB) *gorm.DB { return stmt.Where(query, args...) }
}

type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...QueryOption) (*T, error)
	Create(ctx context.Context, resource *T) error
	BatchCreate(ctx context.Context, resources []*T) error
	Update(ctx context.Context, resourceID string, resource any) error
	Delete(ctx context.Context, resourceID string) error
	DeleteWhere(ctx context.Context, query string, args ...any) error
	Count(ctx context.Context, query *T) (int64, error)
}

type store[T any] struct {
	db *gorm.DB
}

func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (r *store[T]) WithTrx(tx *gorm.DB) Repository[T] {
	return &store[T]{db: tx}
}

func (r *store[T]) Find(ctx context.Context, query *T, opts ...QueryOption) ([]*T, error) {
	var result []*T
	err := r.buildQuery(ctx, query, opts...).Find(&result).Error
	return result, err
}

func (r *store[T]) FindOne(ctx context.Context, query *T, opts ...QueryOption) (*T, error) {
	var result T
	err := r.buildQuery(ctx, query, opts...).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *store[T]) Create(ctx context.Context, resource *T) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *store[T]) BatchCreate(ctx context.Context, resources []*T) error {
	if len(resources) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(resources).Error
}

func (r *store[T]) Update(ctx context.Context, resourceID string, resource any) error {
	return r.db.WithContext(ctx).Model(new(T)).Where("id = ?", resourceID).Updates(resource).Error
}

func (r *store[T]) Delete(ctx context.Context, resourceID string) error {
	var dummy T
	return r.db.WithContext(ctx).Where("id = ?", resourceID).Delete(&dummy).Error
}

func (r *store[T]) DeleteWhere(ctx context.Context, query string, args ...any) error {
	var dummy T
	return r.db.WithContext(ctx).Where(query, args...).Delete(&dummy).Error
}

func (r *store[T]) Count(ctx context.Context, query *T) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(query).Where(query).Count(&count).Error
	return count, err
}

func (r *store[T]) buildQuery(ctx context.Context, filter *T, opts ...QueryOption) *gorm.DB {
	stmt := r.db.WithContext(ctx).Where(filter)
	for _, opt := range opts {
		stmt = opt(stmt)
	}
	return stmt
}
