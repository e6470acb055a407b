package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"creatorcore/internal/access"
	"creatorcore/internal/config"
	"creatorcore/internal/domain"
)

type RollupServiceTestSuite struct {
	suite.Suite
	serviceMocks

	now     time.Time
	service *RollupService
}

func (s *RollupServiceTestSuite) SetupTest() {
	s.serviceMocks = newServiceMocks(s.T())
	s.now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	cfg := &config.Config{
		Quality: config.QualityConfig{MetadataGrace: 30 * time.Minute},
		Sweep:   config.SweepConfig{PendingMinAge: 10 * time.Minute, PendingHorizon: 14 * 24 * time.Hour},
		Rollup:  config.RollupConfig{TopN: 5},
	}
	s.service = NewRollupService(s.stores(), s.logger, cfg)
	s.service.now = func() time.Time { return s.now }
}

func (s *RollupServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRollupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RollupServiceTestSuite))
}

func (s *RollupServiceTestSuite) window() domain.StatsWindow {
	return domain.StatsWindow{Now: s.now, MinAge: 10 * time.Minute, Horizon: 14 * 24 * time.Hour, TopN: 5}
}

func (s *RollupServiceTestSuite) TestRefreshCampaignMetrics_DerivesStatus() {
	ctx := context.Background()
	s.metrics.EXPECT().Aggregates(ctx, access.System(), []int64{1, 2}).Return([]domain.CampaignAggregate{
		{CampaignID: 1, Title: "Fresh", FirstSeenAt: s.now.Add(-5 * time.Minute)},
		{CampaignID: 2, Title: "Old", FirstSeenAt: s.now.Add(-48 * time.Hour), ActualPosts: 3, ValidURLPosts: 3},
	}, nil)
	s.metrics.EXPECT().Save(ctx, access.System(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ access.Context, rows []domain.CampaignMetrics) error {
			s.Require().Len(rows, 2)
			s.Equal(int64(1), rows[0].CampaignID)
			s.Equal(int64(2), rows[1].CampaignID)
			return nil
		},
	)

	n, err := s.service.RefreshCampaignMetrics(ctx, []int64{1, 2})

	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *RollupServiceTestSuite) TestRefreshCampaignMetrics_SaveFailure() {
	ctx := context.Background()
	s.metrics.EXPECT().Aggregates(ctx, access.System(), gomock.Nil()).Return([]domain.CampaignAggregate{{CampaignID: 1}}, nil)
	s.metrics.EXPECT().Save(ctx, access.System(), gomock.Any()).Return(errors.New("deadlock"))

	n, err := s.service.RefreshCampaignMetrics(ctx, nil)

	s.Error(err)
	s.Zero(n)
	s.Contains(err.Error(), "save campaign metrics")
}

func (s *RollupServiceTestSuite) TestRefreshDashboards_ContinuesPastFailedScope() {
	ctx := context.Background()
	org := access.ForOrganization("org-1")
	unassigned := access.ForOrganization(access.Unassigned)

	s.stats.EXPECT().Organizations(ctx, access.System()).Return([]string{"org-1"}, nil)
	s.stats.EXPECT().Compute(ctx, org, s.window()).
		Return(&domain.OrgDashboardStats{OrganizationKey: "org-1", TotalCampaigns: 2}, nil)
	s.stats.EXPECT().Compute(ctx, unassigned, s.window()).Return(nil, errors.New("statement timeout"))
	s.stats.EXPECT().Compute(ctx, access.System(), s.window()).
		Return(&domain.OrgDashboardStats{OrganizationKey: access.AllOrganizations, TotalCampaigns: 5}, nil)
	s.stats.EXPECT().Save(ctx, access.System(), gomock.Any()).Return(nil).Times(2)

	saved, err := s.service.RefreshDashboards(ctx)

	s.Error(err)
	s.Equal(2, saved)
	s.Contains(err.Error(), "statement timeout")
}

func (s *RollupServiceTestSuite) TestRefreshDashboards_OrganizationListFailure() {
	s.stats.EXPECT().Organizations(gomock.Any(), access.System()).Return(nil, errors.New("db down"))

	saved, err := s.service.RefreshDashboards(context.Background())

	s.Error(err)
	s.Zero(saved)
}

func (s *RollupServiceTestSuite) TestDashboardStats_ServesSnapshot() {
	ctx := context.Background()
	ac := access.ForOrganization("org-1")
	snapshot := &domain.OrgDashboardStats{OrganizationKey: "org-1", TotalCampaigns: 3, ComputedAt: s.now}
	s.stats.EXPECT().Get(ctx, ac).Return(snapshot, nil)

	got, err := s.service.DashboardStats(ctx, ac)

	s.Require().NoError(err)
	s.Same(snapshot, got)
}

func (s *RollupServiceTestSuite) TestDashboardStats_FallsBackToLiveCompute() {
	ctx := context.Background()
	ac := access.System()
	live := &domain.OrgDashboardStats{OrganizationKey: access.AllOrganizations, TotalPosts: 9}

	s.stats.EXPECT().Get(ctx, ac).Return(nil, errors.New("no rows"))
	s.stats.EXPECT().Compute(ctx, ac, s.window()).Return(live, nil)

	got, err := s.service.DashboardStats(ctx, ac)

	s.Require().NoError(err)
	s.Same(live, got)
}

func (s *RollupServiceTestSuite) TestDashboardStats_RejectsInvalidContext() {
	_, err := s.service.DashboardStats(context.Background(), access.Context{})

	s.Error(err)
}

func (s *RollupServiceTestSuite) TestListCampaigns_PassesClock() {
	ctx := context.Background()
	ac := access.ForOrganization("org-1")
	filter := domain.CampaignFilter{Sort: "views", Limit: 10}
	items := []domain.CampaignListItem{{ID: 1, Slug: "launch-day"}}

	s.campaigns.EXPECT().ListCampaigns(ctx, ac, filter, s.now).Return(items, nil)

	got, err := s.service.ListCampaigns(ctx, ac, filter)

	s.Require().NoError(err)
	s.Equal(items, got)
}
