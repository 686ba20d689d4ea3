// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/o1x3/profile-stats/internal/domain"
	"github.com/o1x3/profile-stats/internal/gateway"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxContributions caps the number of external pull requests listed.
	MaxContributions = 20
	// MaxLanguages caps the number of ranked languages kept in a profile.
	MaxLanguages = 8

	languageConcurrency = 4
)

// Collector is the use case for collecting a user's profile data.
// It orchestrates the fetching and combining of data.
type Collector struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	now     func() time.Time
}

// NewCollector creates a new Collector instance.
func NewCollector(fetcher gateway.Fetcher, logger *log.Logger) *Collector {
	return &Collector{
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// Collect fetches owned repositories, merged pull requests and language usage concurrently
// and combines them into a Profile.
func (c *Collector) Collect(ctx context.Context, user string) (*domain.Profile, error) {
	c.logger.Println("Usecase: Starting profile collection...")

	var owned map[string]bool
	var prs []gateway.MergedPR
	var languages []domain.Language

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		owned, err = c.fetcher.FetchOwnedRepos(egCtx, user)
		return err
	})

	eg.Go(func() error {
		var err error
		prs, err = c.fetcher.SearchMergedPRs(egCtx, user, MaxContributions*3)
		return err
	})

	eg.Go(func() error {
		var err error
		languages, err = c.collectLanguages(egCtx, user)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	c.logger.Println("Usecase: All data fetched successfully.")

	contributions := externalContributions(prs, owned)
	c.logger.Printf("  %d external contributions\n", len(contributions))
	c.logger.Printf("  %d languages found\n", len(languages))

	return &domain.Profile{
		User:          user,
		Languages:     languages,
		Contributions: contributions,
		GeneratedAt:   c.now().UTC(),
	}, nil
}

// externalContributions keeps pull requests to repositories outside owned, in search order,
// up to MaxContributions, then orders them newest first.
func externalContributions(prs []gateway.MergedPR, owned map[string]bool) []domain.Contribution {
	contributions := make([]domain.Contribution, 0, MaxContributions)
	for _, pr := range prs {
		if pr.Repo == "" || owned[pr.Repo] {
			continue
		}
		c := domain.Contribution{
			Repo:     pr.Repo,
			Number:   pr.Number,
			Title:    pr.Title,
			URL:      pr.URL,
			Stars:    pr.Stars,
			Language: pr.Language,
		}
		if !pr.MergedAt.IsZero() {
			merged := pr.MergedAt
			c.MergedAt = &merged
		}
		contributions = append(contributions, c)
		if len(contributions) >= MaxContributions {
			break
		}
	}

	sort.SliceStable(contributions, func(i, j int) bool {
		a, b := contributions[i].MergedAt, contributions[j].MergedAt
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})
	return contributions
}

// collectLanguages sums language bytes across the user's source repositories.
func (c *Collector) collectLanguages(ctx context.Context, user string) ([]domain.Language, error) {
	repos, err := c.fetcher.FetchSourceRepos(ctx, user)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	totals := make(map[string]int64)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(languageConcurrency)
	for _, repo := range repos {
		eg.Go(func() error {
			langs, err := c.fetcher.FetchLanguages(egCtx, repo)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for name, count := range langs {
				totals[name] += int64(count)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return rankLanguages(totals), nil
}

// rankLanguages orders languages by bytes, keeps the top MaxLanguages and computes each share
// against the total of all languages.
func rankLanguages(totals map[string]int64) []domain.Language {
	counts := make(stats.Float64Data, 0, len(totals))
	ranked := make([]domain.Language, 0, len(totals))
	for name, count := range totals {
		counts = append(counts, float64(count))
		ranked = append(ranked, domain.Language{Name: name, Bytes: count})
	}

	total, err := stats.Sum(counts)
	if err != nil || total == 0 {
		total = 1
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Bytes != ranked[j].Bytes {
			return ranked[i].Bytes > ranked[j].Bytes
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > MaxLanguages {
		ranked = ranked[:MaxLanguages]
	}
	for i := range ranked {
		ranked[i].Share = float64(ranked[i].Bytes) / total
	}
	return ranked
}
