package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"creatorcore/internal/access"
	"creatorcore/internal/domain"
	"creatorcore/internal/genre"
)

// Source is one agency API.
type Source interface {
	SourceKey() string
	FetchPage(ctx context.Context, entity domain.EntityType, cursor int64, limit int) (*domain.Page, error)
	FetchByID(ctx context.Context, entity domain.EntityType, id string) (domain.RawRecord, error)
}

type SourceRegistry interface {
	Register(ctx context.Context, ac access.Context, sources []domain.AgencySource) error
	DeactivateMissing(ctx context.Context, ac access.Context, keys []string) (int64, error)
	Active(ctx context.Context, ac access.Context) ([]domain.AgencySource, error)
}

type CursorStore interface {
	Get(ctx context.Context, ac access.Context, entity domain.EntityType, sourceKey string) (*domain.SyncCursor, error)
	Advance(ctx context.Context, ac access.Context, entity domain.EntityType, sourceKey string, observed int64, syncedAt time.Time) (*domain.SyncCursor, error)
}

type CampaignStore interface {
	Upsert(ctx context.Context, ac access.Context, campaigns []*domain.Campaign, now time.Time) (domain.UpsertCounts, error)
	ListCampaigns(ctx context.Context, ac access.Context, f domain.CampaignFilter, now time.Time) ([]domain.CampaignListItem, error)
}

type PostStore interface {
	Upsert(ctx context.Context, ac access.Context, posts []*domain.Post, now time.Time) (domain.UpsertCounts, error)
	PostIDsForCampaign(ctx context.Context, ac access.Context, campaignID int64, limit int) ([]string, error)
}

type CreatorStore interface {
	RecordSeen(ctx context.Context, ac access.Context, usernames []string, seenAt time.Time) (int, error)
}

type SweepStore interface {
	PendingCandidates(ctx context.Context, ac access.Context, q domain.PendingQuery) ([]domain.CampaignRef, error)
	DiscoveryCandidates(ctx context.Context, ac access.Context, q domain.DiscoveryQuery) ([]domain.CampaignRef, error)
	MarkAttempted(ctx context.Context, ac access.Context, ids []int64, at time.Time) error
}

type MetricsStore interface {
	Aggregates(ctx context.Context, ac access.Context, ids []int64) ([]domain.CampaignAggregate, error)
	Save(ctx context.Context, ac access.Context, metrics []domain.CampaignMetrics) error
}

type StatsStore interface {
	Organizations(ctx context.Context, ac access.Context) ([]string, error)
	Compute(ctx context.Context, ac access.Context, w domain.StatsWindow) (*domain.OrgDashboardStats, error)
	Save(ctx context.Context, ac access.Context, stats *domain.OrgDashboardStats) error
	Get(ctx context.Context, ac access.Context) (*domain.OrgDashboardStats, error)
}

type GenreStore interface {
	UnclassifiedCampaigns(ctx context.Context, ac access.Context, limit int) ([]domain.CampaignRef, error)
	SaveCampaignClassification(ctx context.Context, ac access.Context, campaignID int64, title string, c domain.Classification, classified bool) error
	RollupCreatorGenres(ctx context.Context, ac access.Context) (int64, error)
}

type RunStore interface {
	SaveRun(ctx context.Context, ac access.Context, run domain.ClassificationRun) error
}

type Classifier interface {
	Classify(ctx context.Context, title string, budget *genre.Budget) domain.Classification
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, event *domain.SyncEvent) error
	Close() error
}
