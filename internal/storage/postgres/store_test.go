package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creatorcore/internal/access"
	"creatorcore/internal/domain"
	"creatorcore/internal/normalize"
	"creatorcore/internal/testutil"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func anyArgs(n int) []driver.Value {
	out := make([]driver.Value, n)
	for i := range out {
		out[i] = sqlmock.AnyArg()
	}
	return out
}

func TestValuesClause(t *testing.T) {
	assert.Equal(t, "($1, $2)", valuesClause(1, 2, 0))
	assert.Equal(t, "($3, $4),\n\t\t\t($5, $6)", valuesClause(2, 2, 2))
}

func TestChunks(t *testing.T) {
	got := chunks([]int{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, got)
	assert.Nil(t, chunks([]int{}, 2))
	assert.Equal(t, [][]int{{1, 2}}, chunks([]int{1, 2}, 0))
}

func TestCursorStore_GetMissingStartsAtZero(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewCursorStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_cursors")).
		WithArgs(domain.EntityCampaign, "agency-a").
		WillReturnError(sql.ErrNoRows)

	cursor, err := store.Get(context.Background(), access.System(), domain.EntityCampaign, "agency-a")
	require.NoError(t, err)
	assert.Equal(t, int64(0), cursor.LastCursor)
	assert.Equal(t, "agency-a", cursor.SourceKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCursorStore_AdvanceUsesGreatest(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewCursorStore(db)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`last_cursor = GREATEST\(sync_cursors.last_cursor, EXCLUDED.last_cursor\)`).
		WithArgs(domain.EntityPost, "agency-a", int64(0), now).
		WillReturnRows(sqlmock.NewRows([]string{"entity_type", "source_key", "last_cursor", "last_synced_at", "records_synced"}).
			AddRow("post", "agency-a", 120, now, 120))

	// Negative observations clamp to zero.
	cursor, err := store.Advance(context.Background(), access.System(), domain.EntityPost, "agency-a", -5, now)
	require.NoError(t, err)
	assert.Equal(t, int64(120), cursor.LastCursor)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSourceStore_RegisterRequiresUnrestricted(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSourceStore(db)

	err := store.Register(context.Background(), access.ForOrganization("org-1"), []domain.AgencySource{{Key: "a"}})
	assert.ErrorIs(t, err, access.ErrForbidden)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO agency_sources (key, name, base_endpoint)")).
		WithArgs("a", "Agency A", "https://a.test", "b", "Agency B", "https://b.test").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err = store.Register(context.Background(), access.System(), []domain.AgencySource{
		{Key: "a", Name: "Agency A", BaseEndpoint: "https://a.test"},
		{Key: "b", Name: "Agency B", BaseEndpoint: "https://b.test"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignStore_UpsertCountsAndSlugFixup(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewCampaignStore(db, 10)
	now := time.Now()

	campaigns := []*domain.Campaign{
		{SourceKey: "a", CampaignID: "c1", Slug: "summer", Title: "Summer"},
		{SourceKey: "a", CampaignID: "c2", Slug: "winter", Title: "Winter"},
		{SourceKey: "a", CampaignID: "c1", Slug: "summer", Title: "Summer v2"},
	}

	cols := len(campaignTable.Columns())
	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)INSERT INTO campaigns \(source_key, campaign_id, slug, slug_is_fallback, title.*ON CONFLICT \(source_key, campaign_id\) DO UPDATE SET.*title = CASE WHEN EXCLUDED.title IS NULL.*RETURNING id, \(xmax = 0\) AS inserted`).
		WithArgs(anyArgs(2 * cols)...).
		WillReturnRows(sqlmock.NewRows([]string{"id", "inserted"}).AddRow(1, false).AddRow(2, true))
	mock.ExpectExec(regexp.QuoteMeta("SET slug = c.slug || '-' || c.id")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	counts, err := store.Upsert(context.Background(), access.System(), campaigns, now)
	require.NoError(t, err)

	assert.Equal(t, 1, counts.Inserted)
	assert.Equal(t, 1, counts.Updated)
	assert.Equal(t, 1, counts.Skipped)
	assert.ElementsMatch(t, []int64{1, 2}, counts.CampaignIDs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignStore_UpsertScopedGuard(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewCampaignStore(db, 10)

	campaigns := []*domain.Campaign{
		{SourceKey: "a", CampaignID: "mine", Slug: "mine", Title: "Mine", OrganizationID: testutil.Ptr("org-1")},
		{SourceKey: "a", CampaignID: "theirs", Slug: "theirs", Title: "Theirs", OrganizationID: testutil.Ptr("org-2")},
	}

	cols := len(campaignTable.Columns())
	args := append(anyArgs(cols), "org-1")
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE campaigns.organization_id = $20")).
		WithArgs(args...).
		WillReturnRows(sqlmock.NewRows([]string{"id", "inserted"}))
	mock.ExpectCommit()

	counts, err := store.Upsert(context.Background(), access.ForOrganization("org-1"), campaigns, time.Now())
	require.NoError(t, err)

	// One refused by Permits, one refused by the update guard.
	assert.Equal(t, 2, counts.Skipped)
	assert.Zero(t, counts.Inserted+counts.Updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignStore_UpsertRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewCampaignStore(db, 10)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO campaigns").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := store.Upsert(context.Background(), access.System(), []*domain.Campaign{
		{SourceKey: "a", CampaignID: "c1", Slug: "s", Title: "T"},
	}, time.Now())
	require.ErrorIs(t, err, sql.ErrConnDone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollapsePosts(t *testing.T) {
	posts := []*domain.Post{
		{SourceKey: "a", PostID: "p1", CanonicalKey: "k1", Views: testutil.Ptr(int64(100))},
		{SourceKey: "b", PostID: "x9", CanonicalKey: "k1", Views: testutil.Ptr(int64(40))},
		{SourceKey: "a", PostID: "p2", CanonicalKey: "k2"},
		{SourceKey: "a", PostID: "p2", CanonicalKey: "k3", Views: testutil.Ptr(int64(7))},
	}

	got := collapsePosts(posts)
	require.Len(t, got, 2)

	assert.Equal(t, "k1", got[0].CanonicalKey)
	assert.Equal(t, "b", got[0].SourceKey)
	assert.Equal(t, int64(100), *got[0].Views)

	assert.Equal(t, "k3", got[1].CanonicalKey)
}

func TestPostStore_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostStore(db, 10)

	posts := []*domain.Post{
		{SourceKey: "a", PostID: "p1", CanonicalKey: "k1", CampaignRef: "c1", Views: testutil.Ptr(int64(10)), URLReason: domain.URLValid, URLValid: true},
		{SourceKey: "a", PostID: "p2", CanonicalKey: "k2", CampaignRef: "c1", URLReason: domain.URLMissing},
		nil,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT p.source_key, p.post_id, p.url")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"source_key", "post_id", "url"}))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE source_key = ANY($1) AND campaign_id = ANY($2) AND TRUE")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "source_key", "campaign_id"}).AddRow(7, "a", "c1"))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET canonical_key = v.canonical_key")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`(?s)ON CONFLICT \(canonical_key\) DO UPDATE SET.*views = GREATEST\(posts.views, EXCLUDED.views\)`).
		WithArgs(anyArgs(2 * len(postTable.Columns()))...).
		WillReturnRows(sqlmock.NewRows([]string{"id", "campaign_id", "inserted"}).
			AddRow(1, 7, true).
			AddRow(2, 7, false))
	mock.ExpectCommit()

	counts, err := store.Upsert(context.Background(), access.System(), posts, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, counts.Inserted)
	assert.Equal(t, 1, counts.Updated)
	assert.Equal(t, 1, counts.Skipped)
	assert.Equal(t, []int64{7}, counts.CampaignIDs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostStore_ScopedSkipsUnresolvedCampaigns(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostStore(db, 10)

	posts := []*domain.Post{
		{SourceKey: "a", PostID: "p1", CanonicalKey: "k1", CampaignRef: "hidden"},
		{SourceKey: "a", PostID: "p2", CanonicalKey: "k2"},
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT p.source_key, p.post_id, p.url")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"source_key", "post_id", "url"}))
	mock.ExpectQuery(regexp.QuoteMeta("AND organization_id = $3")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "org-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "source_key", "campaign_id"}))

	counts, err := store.Upsert(context.Background(), access.ForOrganization("org-1"), posts, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Skipped)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatorStore_RecordSeenCountsNew(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewCreatorStore(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO creators (username, first_seen_at, last_seen_at)")).
		WithArgs(sqlmock.AnyArg(), now).
		WillReturnRows(sqlmock.NewRows([]string{"inserted"}).AddRow(true).AddRow(false).AddRow(true))

	created, err := store.RecordSeen(context.Background(), access.System(), []string{"Alice", " bob ", "", "CAROL"}, now)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = store.RecordSeen(context.Background(), access.System(), []string{"", "  "}, now)
	require.NoError(t, err)
	assert.Zero(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepStore_PendingScopesAndOrders(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSweepStore(db)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)COALESCE\(m.quality_status, 'missing_posts'\) <> 'ready'.*AND c.organization_id = \$7.*WHEN c.first_seen_at >= \$3 THEN 0.*LIMIT \$6`).
		WithArgs(
			now.Add(-14*24*time.Hour),
			now.Add(-10*time.Minute),
			now.Add(-24*time.Hour),
			now.Add(-7*24*time.Hour),
			"agency-a",
			50,
			"org-1",
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "source_key", "campaign_id", "title", "first_seen_at"}).
			AddRow(3, "agency-a", "c3", "T", now.Add(-time.Hour)))

	refs, err := store.PendingCandidates(context.Background(), access.ForOrganization("org-1"), domain.PendingQuery{
		SourceKey: "agency-a",
		Now:       now,
		MinAge:    10 * time.Minute,
		Horizon:   14 * 24 * time.Hour,
		Limit:     50,
	})
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "c3", refs[0].CampaignID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepStore_RejectsScopedWithoutOrg(t *testing.T) {
	db, _ := newMockDB(t)
	store := NewSweepStore(db)

	_, err := store.DiscoveryCandidates(context.Background(), access.Context{Role: access.RoleMember}, domain.DiscoveryQuery{})
	assert.ErrorIs(t, err, access.ErrMissingOrganization)
}

func TestMetricsStore_AggregatesFiltersIDs(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewMetricsStore(db, 10)
	seen := time.Now().Add(-time.Hour)

	mock.ExpectQuery(`(?s)FILTER \(WHERE p.url_valid\).*WHERE c.id = ANY\(\$1\) AND c.organization_id = \$2\s+GROUP BY c.id`).
		WithArgs(sqlmock.AnyArg(), "org-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"campaign_id", "title", "platform_count", "first_seen_at", "actual_posts", "actual_creators",
			"total_views", "verified_views", "valid_url_posts", "invalid_url_posts",
		}).AddRow(1, "T", 2, seen, 3, 2, 900, 600, 2, 1))

	aggs, err := store.Aggregates(context.Background(), access.ForOrganization("org-1"), []int64{1})
	require.NoError(t, err)
	require.Len(t, aggs, 1)
	assert.Equal(t, int64(600), aggs[0].VerifiedViews)
	assert.Equal(t, 1, aggs[0].InvalidURLPosts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGenreStore_CacheMissIsNil(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGenreStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM genre_cache")).
		WithArgs("dj nova").
		WillReturnError(sql.ErrNoRows)

	entry, err := store.GetArtistGenre(context.Background(), "dj nova")
	require.NoError(t, err)
	assert.Nil(t, entry)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGenreStore_SaveClassification(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGenreStore(db)

	c := domain.Classification{Genre: "Electronic/EDM", GenreID: "electronic-edm", Confidence: 0.9, Source: "search", Evidence: "score=5.0 runner_up=1.0"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET genre = $2, genre_id = $3, genre_confidence = $4, genre_source = $5, genre_title = $6")).
		WithArgs(int64(42), c.Genre, c.GenreID, c.Confidence, c.Source, "DJ Nova - Pulse").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM entity_genre_labels")).
		WithArgs(domain.GenreEntityCampaign, "42", c.GenreID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("VALUES ($1, $2, $3, 1.0, $4, $5, $6, NOW())")).
		WithArgs(domain.GenreEntityCampaign, "42", c.GenreID, c.Confidence, c.Source, c.Evidence).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.SaveCampaignClassification(context.Background(), access.System(), 42, "DJ Nova - Pulse", c, true))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGenreStore_RollupCreatorGenres(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGenreStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM entity_genre_labels WHERE entity_type = $1")).
		WithArgs(domain.GenreEntityCreator).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`w.weight / t.total`).
		WithArgs(domain.GenreEntityCreator, domain.GenreSourceCreatorRollup).
		WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectCommit()

	n, err := store.RollupCreatorGenres(context.Background(), access.System())
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsStore_GetMissingSnapshot(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStatsStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT stats FROM org_dashboard_stats")).
		WithArgs("org-1").
		WillReturnError(sql.ErrNoRows)

	stats, err := store.Get(context.Background(), access.ForOrganization("org-1"))
	require.NoError(t, err)
	assert.Nil(t, stats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsStore_GetDecodesSnapshot(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStatsStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT stats FROM org_dashboard_stats")).
		WithArgs("__all__").
		WillReturnRows(sqlmock.NewRows([]string{"stats"}).
			AddRow([]byte(`{"organization_key":"__all__","total_campaigns":4,"top_genres":[{"key":"Pop","count":3,"views":10}]}`)))

	stats, err := store.Get(context.Background(), access.System())
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 4, stats.TotalCampaigns)
	require.Len(t, stats.TopGenres, 1)
	assert.Equal(t, "Pop", stats.TopGenres[0].Key)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListCampaigns_BuildsFilters(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewCampaignStore(db, 10)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)WHERE NOT c.is_test_data AND \(c.organization_id IS NULL OR c.organization_id = ''\) AND \(c.title ILIKE \$1 OR c.slug ILIKE \$1\) AND LOWER\(c.genre\) = LOWER\(\$2\) AND \$3 = ANY\(c.platforms\) AND c.budget >= \$4.*ORDER BY total_views DESC, c.id DESC\s+LIMIT \$5 OFFSET \$6`).
		WithArgs(`%50\% off%`, "Pop", "tiktok", 100.0, 200, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "title", "source_key", "budget", "currency", "genre", "total_views", "actual_posts", "quality_status", "first_seen_at"}))

	_, err := store.ListCampaigns(context.Background(), access.ForOrganization(access.Unassigned), domain.CampaignFilter{
		Search:    "50% off",
		Genre:     "Pop",
		Platform:  "TikTok",
		MinBudget: testutil.Ptr(100.0),
		Sort:      "views",
		Limit:     500,
	}, now)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	_, err = store.ListCampaigns(context.Background(), access.System(), domain.CampaignFilter{Sort: "random"}, now)
	assert.Error(t, err)
}

func TestPostStore_UpsertInheritsStoredURL(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostStore(db, 10)
	link := "https://www.tiktok.com/@mira/video/1"
	urlKey := normalize.CanonicalKey(&domain.Post{URL: &link})

	posts := []*domain.Post{
		{SourceKey: "a", PostID: "p1", CanonicalKey: "fallback-key", URLReason: domain.URLMissing},
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT p.source_key, p.post_id, p.url")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"source_key", "post_id", "url"}).AddRow("a", "p1", link))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET canonical_key = v.canonical_key")).
		WithArgs(anyArgs(3)...).
		WillReturnResult(sqlmock.NewResult(0, 0))

	args := anyArgs(len(postTable.Columns()))
	args[0], args[1], args[2] = "a", "p1", urlKey
	args[5], args[6], args[7], args[8] = "tiktok", link, true, string(domain.URLValid)
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (canonical_key) DO UPDATE SET")).
		WithArgs(args...).
		WillReturnRows(sqlmock.NewRows([]string{"id", "campaign_id", "inserted"}).AddRow(1, nil, false))
	mock.ExpectCommit()

	counts, err := store.Upsert(context.Background(), access.System(), posts, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Updated)
	assert.Nil(t, posts[0].URL, "caller's post is not mutated")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostStore_RekeyRepeatsUntilSettled(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostStore(db, 10)

	// p2 frees KB on the first pass, p1 takes it on the second.
	chunk := []*domain.Post{
		{SourceKey: "s", PostID: "p1", CanonicalKey: "KB"},
		{SourceKey: "s", PostID: "p2", CanonicalKey: "KC"},
	}
	for _, moved := range []int64{1, 1, 0} {
		mock.ExpectExec(regexp.QuoteMeta("SET canonical_key = v.canonical_key")).
			WithArgs(anyArgs(3)...).
			WillReturnResult(sqlmock.NewResult(0, moved))
	}

	require.NoError(t, store.rekey(context.Background(), chunk))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostStore_PostIDsForCampaignIsScoped(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPostStore(db, 10)

	mock.ExpectQuery(`(?s)JOIN campaigns c ON c.id = p.campaign_id\s+WHERE p.campaign_id = \$1 AND c.organization_id = \$3.*LIMIT \$2`).
		WithArgs(int64(7), 20, "org-1").
		WillReturnRows(sqlmock.NewRows([]string{"post_id"}).AddRow("p9"))

	ids, err := store.PostIDsForCampaign(context.Background(), access.ForOrganization("org-1"), 7, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"p9"}, ids)

	_, err = store.PostIDsForCampaign(context.Background(), access.Context{Role: access.RoleMember}, 7, 20)
	assert.ErrorIs(t, err, access.ErrMissingOrganization)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepStore_MarkAttempted(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSweepStore(db)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.MarkAttempted(context.Background(), access.System(), nil, now))

	mock.ExpectExec(`(?s)UPDATE campaigns c\s+SET last_hydration_attempt_at = \$2\s+WHERE c.id = ANY\(\$1\) AND c.organization_id = \$3`).
		WithArgs(sqlmock.AnyArg(), now, "org-1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, store.MarkAttempted(context.Background(), access.ForOrganization("org-1"), []int64{4, 5}, now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepStore_DiscoveryOrdersByLastTouched(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewSweepStore(db)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	touched := regexp.QuoteMeta(lastTouched)

	mock.ExpectQuery(`(?s)WHERE `+touched+` <= \$1.*ORDER BY `+touched+` ASC, c.id ASC`).
		WithArgs(now.Add(-6*time.Hour), "agency-a", 25).
		WillReturnRows(sqlmock.NewRows([]string{"id", "source_key", "campaign_id", "title", "first_seen_at"}))

	_, err := store.DiscoveryCandidates(context.Background(), access.System(), domain.DiscoveryQuery{
		SourceKey: "agency-a",
		Now:       now,
		Stale:     6 * time.Hour,
		Limit:     25,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGenreStore_UnclassifiedRetriesChangedTitles(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewGenreStore(db)
	seen := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.Contains(t, titleSources, domain.GenreSourceNoArtist)

	mock.ExpectQuery(`(?s)OR genre_source = ANY\(\$1\)\s+OR \(genre_source = ANY\(\$2\) AND title IS DISTINCT FROM genre_title\).*AND TRUE.*LIMIT \$3`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "source_key", "campaign_id", "title", "first_seen_at"}).
			AddRow(9, "agency-a", "c9", "Kaytra - Neon", seen))

	refs, err := store.UnclassifiedCampaigns(context.Background(), access.System(), 50)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Kaytra - Neon", refs[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsStore_PendingCountAppliesMinAge(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStatsStore(db)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)c.first_seen_at >= \$3\s+AND c.first_seen_at <= \$4\s+AND c.last_synced_at <= \$4`).
		WithArgs(now.Add(-24*time.Hour), now.Add(-7*24*time.Hour), now.Add(-14*24*time.Hour), now.Add(-10*time.Minute)).
		WillReturnRows(sqlmock.NewRows([]string{"total", "new_24h", "new_7d", "review", "pending"}).AddRow(3, 1, 2, 1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM posts p")).WillReturnError(sql.ErrConnDone)

	_, err := store.Compute(context.Background(), access.System(), domain.StatsWindow{
		Now:     now,
		MinAge:  10 * time.Minute,
		Horizon: 14 * 24 * time.Hour,
		TopN:    5,
	})
	require.ErrorIs(t, err, sql.ErrConnDone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGlobalWritersRequireUnrestricted(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()
	org := access.ForOrganization("org-1")
	now := time.Now()

	_, err := NewCursorStore(db).Advance(ctx, org, domain.EntityPost, "agency-a", 10, now)
	assert.ErrorIs(t, err, access.ErrForbidden)

	_, err = NewCreatorStore(db).RecordSeen(ctx, org, []string{"mira"}, now)
	assert.ErrorIs(t, err, access.ErrForbidden)

	err = NewMetricsStore(db, 10).Save(ctx, org, []domain.CampaignMetrics{{CampaignID: 1}})
	assert.ErrorIs(t, err, access.ErrForbidden)

	stats := NewStatsStore(db)
	_, err = stats.Organizations(ctx, org)
	assert.ErrorIs(t, err, access.ErrForbidden)
	err = stats.Save(ctx, org, &domain.OrgDashboardStats{OrganizationKey: "org-1"})
	assert.ErrorIs(t, err, access.ErrForbidden)

	genres := NewGenreStore(db)
	err = genres.SaveCampaignClassification(ctx, org, 1, "T", domain.Classification{}, false)
	assert.ErrorIs(t, err, access.ErrForbidden)
	_, err = genres.RollupCreatorGenres(ctx, org)
	assert.ErrorIs(t, err, access.ErrForbidden)

	err = NewRunStore(db).SaveRun(ctx, org, domain.ClassificationRun{RunID: "r1"})
	assert.ErrorIs(t, err, access.ErrForbidden)

	require.NoError(t, mock.ExpectationsWereMet())
}
