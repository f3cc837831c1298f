package search

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/check-scam/api-go/models"
	"gorm.io/gorm"
)

// Index is the slice of Client the providers need. Split out so tests can
// stand in a stub index.
type Index interface {
	Healthy(ctx context.Context) bool
	SearchWarningIDs(ctx context.Context, query, searchType string, page, pageSize int) ([]uint, int64, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
	TopScammers(ctx context.Context, days, limit int) ([]ScammerStat, error)
	TopSearches(ctx context.Context, days, limit int) ([]SearchStat, error)
}

// RankedSearchProvider answers ranked warning searches and the top-N
// aggregations behind the dashboard. There are two implementations: one
// backed by the search index, one by the relational store. The Searcher
// picks between them so call sites never branch on index health.
type RankedSearchProvider interface {
	SearchWarnings(ctx context.Context, query, searchType string, page, pageSize int) ([]models.Warning, int64, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
	TopScammers(ctx context.Context, days, limit int) ([]ScammerStat, error)
	TopSearches(ctx context.Context, days, limit int) ([]SearchStat, error)
}

// IndexProvider searches the index for ranked IDs, hydrates the rows from
// the store and keeps the index ordering. Hydration re-filters on approved
// status: the index may be stale, the store is authoritative.
type IndexProvider struct {
	Index Index
	DB    *gorm.DB
}

func (p *IndexProvider) SearchWarnings(ctx context.Context, query, searchType string, page, pageSize int) ([]models.Warning, int64, error) {
	ids, total, err := p.Index.SearchWarningIDs(ctx, query, searchType, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return []models.Warning{}, total, nil
	}

	var rows []models.Warning
	if err := p.DB.WithContext(ctx).
		Where("id IN ?", ids).
		Where("status = ?", models.StatusApproved).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	// Ranking order comes from the index even though the data comes from
	// the store.
	byID := make(map[uint]models.Warning, len(rows))
	for _, w := range rows {
		byID[w.ID] = w
	}
	ordered := make([]models.Warning, 0, len(rows))
	for _, id := range ids {
		if w, ok := byID[id]; ok {
			ordered = append(ordered, w)
		}
	}
	return ordered, total, nil
}

func (p *IndexProvider) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	return p.Index.Suggest(ctx, prefix, limit)
}

func (p *IndexProvider) TopScammers(ctx context.Context, days, limit int) ([]ScammerStat, error) {
	return p.Index.TopScammers(ctx, days, limit)
}

func (p *IndexProvider) TopSearches(ctx context.Context, days, limit int) ([]SearchStat, error) {
	return p.Index.TopSearches(ctx, days, limit)
}

// StoreProvider is the database fallback: case-insensitive substring match
// on the field implied by the search type, recency order, no relevance.
type StoreProvider struct {
	DB *gorm.DB
}

func (p *StoreProvider) SearchWarnings(ctx context.Context, query, searchType string, page, pageSize int) ([]models.Warning, int64, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	q := p.DB.WithContext(ctx).Model(&models.Warning{}).
		Where("status = ?", models.StatusApproved)

	switch searchType {
	case "phone", "bank_account":
		q = q.Where("lower(bank_account) LIKE ?", pattern)
	case "facebook":
		q = q.Where("lower(facebook_link) LIKE ?", pattern)
	default:
		q = q.Where("lower(scammer_name) LIKE ? OR lower(title) LIKE ? OR lower(content) LIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Warning
	if err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Suggest is the database fallback for search suggestions: distinct scammer
// names of approved warnings matching the prefix, no relevance.
func (p *StoreProvider) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	pattern := "%" + strings.ToLower(prefix) + "%"
	var names []string
	err := p.DB.WithContext(ctx).Model(&models.Warning{}).
		Where("status = ?", models.StatusApproved).
		Where("lower(scammer_name) LIKE ?", pattern).
		Distinct("scammer_name").
		Limit(limit).
		Pluck("scammer_name", &names).Error
	return names, err
}

func (p *StoreProvider) TopScammers(ctx context.Context, days, limit int) ([]ScammerStat, error) {
	since := time.Now().AddDate(0, 0, -days)
	var stats []ScammerStat
	err := p.DB.WithContext(ctx).Model(&models.Warning{}).
		Select("scammer_name, bank_account, count(id) AS warning_count").
		Where("status = ?", models.StatusApproved).
		Where("created_at >= ?", since).
		Group("scammer_name, bank_account").
		Order("warning_count DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

func (p *StoreProvider) TopSearches(ctx context.Context, days, limit int) ([]SearchStat, error) {
	since := time.Now().AddDate(0, 0, -days)
	var stats []SearchStat
	err := p.DB.WithContext(ctx).Model(&models.SearchLog{}).
		Select("search_query AS query, count(id) AS search_count").
		Where("created_at >= ?", since).
		Group("search_query").
		Order("search_count DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

// Searcher fronts both providers. The index is preferred when it answers
// its health check; any index error degrades to the store. Index trouble is
// logged, never returned, so the caller only sees store errors.
type Searcher struct {
	index IndexProvider
	store StoreProvider
}

func NewSearcher(index Index, db *gorm.DB) *Searcher {
	return &Searcher{
		index: IndexProvider{Index: index, DB: db},
		store: StoreProvider{DB: db},
	}
}

func (s *Searcher) SearchWarnings(ctx context.Context, query, searchType string, page, pageSize int) ([]models.Warning, int64, error) {
	if s.index.Index.Healthy(ctx) {
		rows, total, err := s.index.SearchWarnings(ctx, query, searchType, page, pageSize)
		if err == nil {
			return rows, total, nil
		}
		log.Printf("index search failed, falling back to store: %v", err)
	}
	return s.store.SearchWarnings(ctx, query, searchType, page, pageSize)
}

func (s *Searcher) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	if s.index.Index.Healthy(ctx) {
		suggestions, err := s.index.Suggest(ctx, prefix, limit)
		if err == nil {
			return suggestions, nil
		}
		log.Printf("index suggest failed, falling back to store: %v", err)
	}
	return s.store.Suggest(ctx, prefix, limit)
}

func (s *Searcher) TopScammers(ctx context.Context, days, limit int) ([]ScammerStat, error) {
	if s.index.Index.Healthy(ctx) {
		stats, err := s.index.TopScammers(ctx, days, limit)
		if err == nil {
			return stats, nil
		}
		log.Printf("index top scammers failed, falling back to store: %v", err)
	}
	return s.store.TopScammers(ctx, days, limit)
}

func (s *Searcher) TopSearches(ctx context.Context, days, limit int) ([]SearchStat, error) {
	if s.index.Index.Healthy(ctx) {
		stats, err := s.index.TopSearches(ctx, days, limit)
		if err == nil {
			return stats, nil
		}
		log.Printf("index top searches failed, falling back to store: %v", err)
	}
	return s.store.TopSearches(ctx, days, limit)
}
