package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/check-scam/api-go/models"
	elasticsearch "github.com/elastic/go-elasticsearch/v8"
)

const (
	WarningIndex   = "warnings"
	SearchLogIndex = "search_logs"
)

const warningMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 1,
		"analysis": {
			"analyzer": {
				"vi_analyzer": {
					"tokenizer": "standard",
					"filter": ["lowercase", "asciifolding"]
				}
			}
		}
	},
	"mappings": {
		"properties": {
			"id": {"type": "keyword"},
			"scammer_name": {"type": "text", "analyzer": "vi_analyzer", "fields": {"keyword": {"type": "keyword"}, "completion": {"type": "completion"}}},
			"bank_account": {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
			"bank_name": {"type": "keyword"},
			"facebook_link": {"type": "keyword"},
			"title": {"type": "text", "analyzer": "vi_analyzer"},
			"content": {"type": "text", "analyzer": "vi_analyzer"},
			"category": {"type": "keyword"},
			"status": {"type": "keyword"},
			"search_combined": {"type": "text", "analyzer": "vi_analyzer"},
			"reporter_name": {"type": "keyword"},
			"view_count": {"type": "integer"},
			"search_count": {"type": "integer"},
			"warning_count": {"type": "integer"},
			"created_at": {"type": "date"},
			"approved_at": {"type": "date"}
		}
	}
}`

const searchLogMapping = `{
	"mappings": {
		"properties": {
			"search_query": {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
			"search_type": {"type": "keyword"},
			"user_id": {"type": "keyword"},
			"ip_address": {"type": "keyword"},
			"result_count": {"type": "integer"},
			"created_at": {"type": "date"}
		}
	}
}`

// WarningDoc is the denormalized projection of a warning kept in the index.
// The store stays authoritative; this copy only drives ranking.
type WarningDoc struct {
	ID             string `json:"id"`
	ScammerName    string `json:"scammer_name"`
	BankAccount    string `json:"bank_account"`
	BankName       string `json:"bank_name"`
	FacebookLink   string `json:"facebook_link"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Category       string `json:"category"`
	Status         string `json:"status"`
	SearchCombined string `json:"search_combined"`
	ReporterName   string `json:"reporter_name"`
	ViewCount      int    `json:"view_count"`
	SearchCount    int    `json:"search_count"`
	WarningCount   int    `json:"warning_count"`
	CreatedAt      string `json:"created_at"`
	ApprovedAt     string `json:"approved_at,omitempty"`
}

// SearchLogDoc is the analytics event written per search request.
type SearchLogDoc struct {
	SearchQuery string `json:"search_query"`
	SearchType  string `json:"search_type,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	IPAddress   string `json:"ip_address,omitempty"`
	ResultCount int    `json:"result_count"`
	CreatedAt   string `json:"created_at"`
}

type ScammerStat struct {
	ScammerName  string `json:"scammer_name"`
	BankAccount  string `json:"bank_account"`
	WarningCount int64  `json:"warning_count"`
}

type SearchStat struct {
	Query       string `json:"query"`
	SearchCount int64  `json:"search_count"`
}

// Client wraps the Elasticsearch client. Every method returns an error;
// callers treat index errors as a degradation signal, never a failure.
type Client struct {
	es *elasticsearch.Client
}

func NewClient(url string) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     []string{url},
		MaxRetries:    3,
		RetryOnStatus: []int{502, 503, 504, 429},
	})
	if err != nil {
		return nil, err
	}
	return &Client{es: es}, nil
}

func (c *Client) Healthy(ctx context.Context) bool {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return false
	}
	defer res.Body.Close()
	return !res.IsError()
}

// EnsureIndices creates the warning and search-log indices if missing.
func (c *Client) EnsureIndices(ctx context.Context) error {
	for index, mapping := range map[string]string{
		WarningIndex:   warningMapping,
		SearchLogIndex: searchLogMapping,
	} {
		res, err := c.es.Indices.Exists([]string{index}, c.es.Indices.Exists.WithContext(ctx))
		if err != nil {
			return err
		}
		res.Body.Close()
		if res.StatusCode == 200 {
			continue
		}
		created, err := c.es.Indices.Create(index,
			c.es.Indices.Create.WithBody(strings.NewReader(mapping)),
			c.es.Indices.Create.WithContext(ctx))
		if err != nil {
			return err
		}
		created.Body.Close()
		if created.IsError() {
			return fmt.Errorf("creating index %s: %s", index, created.Status())
		}
	}
	return nil
}

// WarningToDoc flattens a warning into its index projection.
func WarningToDoc(w *models.Warning) WarningDoc {
	doc := WarningDoc{
		ID:           strconv.FormatUint(uint64(w.ID), 10),
		ScammerName:  w.ScammerName,
		BankAccount:  w.BankAccount,
		BankName:     w.BankName,
		FacebookLink: w.FacebookLink,
		Title:        w.Title,
		Content:      w.Content,
		Category:     string(w.Category),
		Status:       string(w.Status),
		SearchCombined: strings.Join([]string{
			w.ScammerName, w.BankAccount, w.FacebookLink, w.Title, w.Content,
		}, " "),
		ReporterName: w.ReporterName,
		ViewCount:    w.ViewCount,
		SearchCount:  w.SearchCount,
		WarningCount: w.WarningCount,
		CreatedAt:    w.CreatedAt.UTC().Format(time.RFC3339),
	}
	if w.ApprovedAt != nil {
		doc.ApprovedAt = w.ApprovedAt.UTC().Format(time.RFC3339)
	}
	return doc
}

func (c *Client) IndexWarning(ctx context.Context, w *models.Warning) error {
	doc := WarningToDoc(w)
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := c.es.Index(WarningIndex, bytes.NewReader(body),
		c.es.Index.WithDocumentID(doc.ID),
		c.es.Index.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("indexing warning %s: %s", doc.ID, res.Status())
	}
	return nil
}

func (c *Client) DeleteWarning(ctx context.Context, id uint) error {
	res, err := c.es.Delete(WarningIndex, strconv.FormatUint(uint64(id), 10),
		c.es.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("deleting warning %d: %s", id, res.Status())
	}
	return nil
}

func (c *Client) LogSearch(ctx context.Context, doc SearchLogDoc) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := c.es.Index(SearchLogIndex, bytes.NewReader(body),
		c.es.Index.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("logging search: %s", res.Status())
	}
	return nil
}

// BulkIndexWarnings backfills the index on startup. Individual failures are
// logged and skipped.
func (c *Client) BulkIndexWarnings(ctx context.Context, warnings []models.Warning) {
	indexed := 0
	for i := range warnings {
		if err := c.IndexWarning(ctx, &warnings[i]); err != nil {
			log.Printf("bulk index: warning %d: %v", warnings[i].ID, err)
			continue
		}
		indexed++
	}
	log.Printf("bulk index: %d/%d warnings indexed", indexed, len(warnings))
}

// SearchWarningIDs runs the ranked query and returns warning IDs in
// relevance order plus the total hit count. Only approved documents match.
func (c *Client) SearchWarningIDs(ctx context.Context, query, searchType string, page, pageSize int) ([]uint, int64, error) {
	var match map[string]interface{}
	switch searchType {
	case "phone", "bank_account":
		match = map[string]interface{}{"match": map[string]interface{}{"bank_account": query}}
	case "facebook":
		match = map[string]interface{}{"match": map[string]interface{}{"facebook_link": query}}
	default:
		match = map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"scammer_name^10", "bank_account^8", "search_combined^5", "title^3", "content^1"},
				"type":      "best_fields",
				"fuzziness": "AUTO",
				"operator":  "and",
			},
		}
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   match,
				"filter": []interface{}{map[string]interface{}{"term": map[string]interface{}{"status": "approved"}}},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"_score": map[string]interface{}{"order": "desc"}},
			map[string]interface{}{"created_at": map[string]interface{}{"order": "desc"}},
		},
		"from":    (page - 1) * pageSize,
		"size":    pageSize,
		"_source": []string{"id"},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, 0, err
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(WarningIndex),
		c.es.Search.WithBody(&buf),
		c.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, 0, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		id, err := strconv.ParseUint(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, r.Hits.Total.Value, nil
}

// Suggest runs the completion suggester over scammer names and returns the
// suggested texts in ranking order.
func (c *Client) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	body := map[string]interface{}{
		"suggest": map[string]interface{}{
			"warning_suggest": map[string]interface{}{
				"prefix": prefix,
				"completion": map[string]interface{}{
					"field": "scammer_name.completion",
					"fuzzy": map[string]interface{}{"fuzziness": 2},
					"size":  limit,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(WarningIndex),
		c.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("suggest: %s", res.Status())
	}

	var r struct {
		Suggest struct {
			WarningSuggest []struct {
				Options []struct {
					Text string `json:"text"`
				} `json:"options"`
			} `json:"warning_suggest"`
		} `json:"suggest"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	var suggestions []string
	for _, entry := range r.Suggest.WarningSuggest {
		for _, option := range entry.Options {
			suggestions = append(suggestions, option.Text)
		}
	}
	return suggestions, nil
}

// TopScammers aggregates approved warnings by scammer name over the
// trailing window.
func (c *Client) TopScammers(ctx context.Context, days, limit int) ([]ScammerStat, error) {
	body := map[string]interface{}{
		"size": 0,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{"term": map[string]interface{}{"status": "approved"}},
					map[string]interface{}{"range": map[string]interface{}{
						"created_at": map[string]interface{}{"gte": fmt.Sprintf("now-%dd/d", days), "lte": "now/d"},
					}},
				},
			},
		},
		"aggs": map[string]interface{}{
			"top_scammers": map[string]interface{}{
				"terms": map[string]interface{}{
					"field": "scammer_name.keyword",
					"size":  limit,
					"order": map[string]interface{}{"_count": "desc"},
				},
				"aggs": map[string]interface{}{
					"bank_accounts": map[string]interface{}{
						"terms": map[string]interface{}{"field": "bank_account.keyword", "size": 1},
					},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(WarningIndex),
		c.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("top scammers aggregation: %s", res.Status())
	}

	var r struct {
		Aggregations struct {
			TopScammers struct {
				Buckets []struct {
					Key          string `json:"key"`
					DocCount     int64  `json:"doc_count"`
					BankAccounts struct {
						Buckets []struct {
							Key string `json:"key"`
						} `json:"buckets"`
					} `json:"bank_accounts"`
				} `json:"buckets"`
			} `json:"top_scammers"`
		} `json:"aggregations"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	stats := make([]ScammerStat, 0, len(r.Aggregations.TopScammers.Buckets))
	for _, bucket := range r.Aggregations.TopScammers.Buckets {
		stat := ScammerStat{ScammerName: bucket.Key, WarningCount: bucket.DocCount}
		if len(bucket.BankAccounts.Buckets) > 0 {
			stat.BankAccount = bucket.BankAccounts.Buckets[0].Key
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

// TopSearches aggregates logged queries over the trailing window.
func (c *Client) TopSearches(ctx context.Context, days, limit int) ([]SearchStat, error) {
	body := map[string]interface{}{
		"size": 0,
		"query": map[string]interface{}{
			"range": map[string]interface{}{
				"created_at": map[string]interface{}{"gte": fmt.Sprintf("now-%dd/d", days), "lte": "now/d"},
			},
		},
		"aggs": map[string]interface{}{
			"top_searches": map[string]interface{}{
				"terms": map[string]interface{}{
					"field": "search_query.keyword",
					"size":  limit,
					"order": map[string]interface{}{"_count": "desc"},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(SearchLogIndex),
		c.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("top searches aggregation: %s", res.Status())
	}

	var r struct {
		Aggregations struct {
			TopSearches struct {
				Buckets []struct {
					Key      string `json:"key"`
					DocCount int64  `json:"doc_count"`
				} `json:"buckets"`
			} `json:"top_searches"`
		} `json:"aggregations"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	stats := make([]SearchStat, 0, len(r.Aggregations.TopSearches.Buckets))
	for _, bucket := range r.Aggregations.TopSearches.Buckets {
		stats = append(stats, SearchStat{Query: bucket.Key, SearchCount: bucket.DocCount})
	}
	return stats, nil
}
