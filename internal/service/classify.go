package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"creatorcore/internal/access"
	"creatorcore/internal/config"
	"creatorcore/internal/domain"
	"creatorcore/internal/genre"
	"creatorcore/internal/metrics"
)

type ClassifyOptions struct {
	Limit        int
	SearchBudget int
}

// ClassificationService labels unclassified campaigns and rolls the labels up to creators.
type ClassificationService struct {
	stores     Stores
	classifier Classifier
	recorder   *metrics.Recorder
	logger     *slog.Logger
	config     config.GenreConfig
	now        func() time.Time
	newRunID   func() string
}

func NewClassificationService(
	stores Stores,
	classifier Classifier,
	recorder *metrics.Recorder,
	logger *slog.Logger,
	cfg config.GenreConfig,
) *ClassificationService {
	return &ClassificationService{
		stores:     stores,
		classifier: classifier,
		recorder:   recorder,
		logger:     logger.With("component", "classify"),
		config:     cfg,
		now:        time.Now,
		newRunID:   uuid.NewString,
	}
}

// Run classifies up to Limit campaigns with at most SearchBudget external searches, then
// recomputes creator labels. A failure to save one campaign is counted, not returned.
func (s *ClassificationService) Run(ctx context.Context, opts ClassifyOptions) (*domain.ClassificationResult, error) {
	if opts.Limit <= 0 {
		opts.Limit = s.config.ClassifyLimit
	}
	if opts.SearchBudget <= 0 {
		opts.SearchBudget = s.config.SearchBudget
	}

	run := domain.ClassificationRun{RunID: s.newRunID(), StartedAt: s.now()}
	result := &domain.ClassificationResult{RunID: run.RunID, BySource: make(map[string]int)}
	logger := s.logger.With("run_id", run.RunID)

	ac := access.System()
	refs, err := s.stores.Genres.UnclassifiedCampaigns(ctx, ac, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("list unclassified campaigns: %w", err)
	}
	logger.Info("starting classification", "campaigns", len(refs), "search_budget", opts.SearchBudget)

	budget := genre.NewBudget(opts.SearchBudget)
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Considered++

		c := s.classifier.Classify(ctx, ref.Title, budget)
		classified := genre.IsClassified(c)
		if err := s.stores.Genres.SaveCampaignClassification(ctx, ac, ref.ID, ref.Title, c, classified); err != nil {
			result.Failed++
			logger.Warn("save classification failed", "campaign_id", ref.ID, "error", err)
			continue
		}

		result.BySource[c.Source]++
		if c.Source == domain.GenreSourceCache || c.Source == domain.GenreSourceCacheNegative {
			result.CacheHits++
		}
		if classified {
			result.Classified++
		} else {
			result.Unclassified++
		}
	}
	result.SearchCalls = budget.Used()

	rows, err := s.stores.Genres.RollupCreatorGenres(ctx, ac)
	if err != nil {
		return result, fmt.Errorf("rollup creator genres: %w", err)
	}
	result.CreatorRows = int(rows)

	run.FinishedAt = s.now()
	run.Considered = result.Considered
	run.Classified = result.Classified
	run.Unclassified = result.Unclassified
	run.SearchCalls = result.SearchCalls
	run.CacheHits = result.CacheHits
	run.Failed = result.Failed
	if s.stores.Runs != nil {
		if err := s.stores.Runs.SaveRun(ctx, ac, run); err != nil {
			logger.Warn("save classification run failed", "error", err)
		}
	}

	s.recorder.ObserveClassification(result)
	logger.Info("classification completed",
		"considered", result.Considered,
		"classified", result.Classified,
		"unclassified", result.Unclassified,
		"search_calls", result.SearchCalls,
		"cache_hits", result.CacheHits,
		"failed", result.Failed,
		"creator_rows", result.CreatorRows,
	)
	return result, nil
}
