package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	dbm "wtsplinks/internal/models/db_models"
)

type DashboardRepository interface {
	// KPIs / counts
	CountTotalAccounts(ctx context.Context) (int64, error)
	CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error)
	CountTotalGroups(ctx context.Context) (int64, error)
	CountNewGroups(ctx context.Context, start, end time.Time) (int64, error)
	CountTotalCategories(ctx context.Context) (int64, error)
	CountUnindexedGroups(ctx context.Context) (int64, error)

	// Time series
	NewUsersSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error)
	NewGroupsSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error)

	CategoryMix(ctx context.Context) ([]CategoryMixRow, error)
	RecentGroups(ctx context.Context, limit int) ([]RecentGroupRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type BucketSum struct {
	Bucket time.Time `gorm:"column:bucket"`
	Sum    int64     `gorm:"column:sum"`
}

type CategoryMixRow struct {
	CategoryID   string `gorm:"column:category_id"`
	CategoryName string `gorm:"column:category_name"`
	Count        int64  `gorm:"column:count"`
}

type RecentGroupRow struct {
	ID           string `gorm:"column:id"`
	Name         string `gorm:"column:name"`
	Link         string `gorm:"column:link"`
	CategoryName string `gorm:"column:category_name"`
	CreatedAt    int64  `gorm:"column:created_at"`
}

// dateTrunc buckets a column holding unix seconds. Both placeholders are bound by the caller.
func dateTrunc(tz string, unixColumn string) string {
	if tz == "" {
		return "date_trunc(?, to_timestamp(" + unixColumn + "))"
	}
	return "date_trunc(?, timezone(?, to_timestamp(" + unixColumn + ")))"
}

func bucketArgs(interval, tz string) []interface{} {
	if tz == "" {
		return []interface{}{interval}
	}
	return []interface{}{interval, tz}
}

// ---------- Counts ----------
func (r *dashboardRepository) CountTotalAccounts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Account{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Account{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountTotalGroups(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Group{}).Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountNewGroups(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Group{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountTotalCategories(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Category{}).Count(&n).Error
	return n, err
}

// CountUnindexedGroups counts live groups with no embedding row, the backlog a reindex would clear.
func (r *dashboardRepository) CountUnindexedGroups(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Group{}).
		Where("NOT EXISTS (SELECT 1 FROM group_embeddings e WHERE e.group_id = groups.id)").
		Count(&n).Error
	return n, err
}

// ---------- Series ----------
func (r *dashboardRepository) NewUsersSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	return r.countSeries(ctx, "accounts", start, end, interval, tz)
}

func (r *dashboardRepository) NewGroupsSeries(ctx context.Context, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	return r.countSeries(ctx, "groups", start, end, interval, tz)
}

func (r *dashboardRepository) countSeries(ctx context.Context, table string, start, end time.Time, interval, tz string) ([]BucketSum, error) {
	var rows []BucketSum
	err := r.db.WithContext(ctx).
		Table(table).
		Select(dateTrunc(tz, "created_at")+" AS bucket, COUNT(*) AS sum", bucketArgs(interval, tz)...).
		Where("deleted_at IS NULL").
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC").
		Find(&rows).Error
	return rows, err
}

// ---------- Category mix ----------
func (r *dashboardRepository) CategoryMix(ctx context.Context) ([]CategoryMixRow, error) {
	var rows []CategoryMixRow
	err := r.db.WithContext(ctx).
		Table("categories c").
		Select("c.id AS category_id, c.name AS category_name, COUNT(g.id) AS count").
		Joins("LEFT JOIN groups g ON g.category_id = c.id AND g.deleted_at IS NULL").
		Where("c.deleted_at IS NULL").
		Group("c.id, c.name").
		Order("count DESC, c.name ASC").
		Find(&rows).Error
	return rows, err
}

// ---------- Recent groups ----------
func (r *dashboardRepository) RecentGroups(ctx context.Context, limit int) ([]RecentGroupRow, error) {
	var rows []RecentGroupRow
	err := r.db.WithContext(ctx).
		Table("groups g").
		Select("g.id, g.name, g.link, c.name AS category_name, g.created_at").
		Joins("LEFT JOIN categories c ON c.id = g.category_id").
		Where("g.deleted_at IS NULL").
		Order("g.created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
