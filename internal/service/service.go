package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront/search/internal/client"
	"storefront/search/internal/domain"
	"storefront/search/internal/domain/task"
	"storefront/search/internal/queue"
	"storefront/search/internal/repository"
	"storefront/search/internal/search"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// SearchResult is the outcome of one smart search.
type SearchResult struct {
	Suggestion domain.NavigationSuggestion `json:"suggestion"`
	URL        string                      `json:"url"`
	Degraded   bool                        `json:"degraded"` // product fetch failed
}

type Service struct {
	catalog     client.CatalogClient
	queue       queue.Queue
	repository  repository.SearchEventRepository
	groupName   string
	minIdleTime time.Duration
	retryDelay  time.Duration
	now         func() time.Time
}

// Delay before a worker polls again after the stream read failed.
const defaultRetryDelay = time.Second

func NewService(
	catalog client.CatalogClient,
	queue queue.Queue,
	repository repository.SearchEventRepository,
	groupName string,
	minIdleTime int,
) *Service {
	return &Service{
		catalog:     catalog,
		queue:       queue,
		repository:  repository,
		groupName:   groupName,
		minIdleTime: max(time.Duration(minIdleTime)*time.Second, time.Second),
		retryDelay:  defaultRetryDelay,
		now:         time.Now,
	}
}

// Search classifies query and records the outcome. Products are fetched only
// when the query could be a product name; a failed fetch degrades the search
// to the rule tables instead of failing it.
func (s *Service) Search(ctx context.Context, query string) (*SearchResult, error) {
	var products []domain.Product
	degraded := false

	if search.ShouldFetchProducts(query) {
		var err error
		products, err = s.fetchProducts(ctx)
		if err != nil {
			log.Warnf("⚠️ Could not fetch products for %q, searching without them: %v", query, err)
			degraded = true
		}
	}

	suggestion := search.Classify(query, products)
	result := &SearchResult{
		Suggestion: suggestion,
		URL:        search.BuildURL(suggestion),
		Degraded:   degraded,
	}

	log.Debugf("Search %q -> %s (%s)", query, result.URL, suggestion.Kind)

	s.publish(ctx, query, result, len(products))

	return result, nil
}

// Suggest returns autocomplete entries for a partial query.
func (s *Service) Suggest(ctx context.Context, partial string) ([]domain.Suggestion, error) {
	if len([]rune(search.Normalize(partial))) < search.MinSuggestQueryLen {
		return []domain.Suggestion{}, nil
	}

	products, err := s.fetchProducts(ctx)
	if err != nil {
		log.Warnf("⚠️ Could not fetch products for suggestions: %v", err)
	}

	return search.Suggest(partial, products), nil
}

// TopQueries reports the most frequent searches.
func (s *Service) TopQueries(ctx context.Context, limit int) ([]domain.QueryStat, error) {
	stats, err := s.repository.TopQueries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load top queries: %w", err)
	}
	return stats, nil
}

func (s *Service) fetchProducts(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.GetProducts(ctx, client.ProductFilter{})
}

// publish enqueues a search event. Analytics must never break a search, so
// failures are only logged.
func (s *Service) publish(ctx context.Context, query string, result *SearchResult, productCount int) {
	event := &task.SearchEventTask{
		Event: domain.SearchEvent{
			ID:              uuid.New(),
			Query:           result.Suggestion.Query,
			NormalizedQuery: result.Suggestion.MatchedQuery,
			Kind:            result.Suggestion.Kind,
			Route:           result.Suggestion.Route,
			URL:             result.URL,
			ProductCount:    productCount,
			Degraded:        result.Degraded,
			CreatedAt:       s.now().UTC(),
		},
	}

	if _, err := s.queue.AddTask(context.WithoutCancel(ctx), event); err != nil {
		log.Errorf("❌ Failed to publish search event for %q: %v", query, err)
	}
}

func (s *Service) RunWorkers(ctx context.Context, numWorkers int) error {
	var wg sync.WaitGroup

	s.runWorkersForStream(ctx, &wg, numWorkers, queue.StreamName(task.SearchEventTaskType), "events")

	wg.Wait()
	return nil
}

func (s *Service) runWorkersForStream(ctx context.Context, wg *sync.WaitGroup, numWorkers int, streamName, workerType string) {
	// Auto-claimer for this stream
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.minIdleTime)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				consumer := fmt.Sprintf("autoclaimer-%s", workerType)
				claimedMessages, err := s.queue.AutoClaim(ctx, s.groupName, consumer, streamName, s.minIdleTime)
				if err != nil {
					log.Errorf("❌ Failed to auto-claim messages for %s: %v", streamName, err)
					continue
				}
				if len(claimedMessages) > 0 {
					log.Infof("🔄 Auto-claimed %d messages from %s stream", len(claimedMessages), workerType)
					for _, msg := range claimedMessages {
						if err := s.processMessage(ctx, streamName, &msg); err != nil {
							log.Errorf("❌ Failed to process auto-claimed message %s: %v", msg.ID, err)
						}
					}
				}
			}
		}
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			consumer := fmt.Sprintf("%s-worker-%d", workerType, workerID)
			log.Infof("🚀 Starting %s worker %d as consumer %s", workerType, workerID, consumer)
			for {
				select {
				case <-ctx.Done():
					log.Infof("🛑 %s worker %d stopping", workerType, workerID)
					return
				default:
					msg, err := s.queue.GetTask(ctx, s.groupName, consumer, streamName)
					if err != nil {
						if ctx.Err() == nil {
							log.Errorf("❌ Failed to get task from %s, retrying in %v: %v", streamName, s.retryDelay, err)
						}
						select {
						case <-ctx.Done():
							log.Infof("🛑 %s worker %d stopping", workerType, workerID)
							return
						case <-time.After(s.retryDelay):
						}
						continue
					}

					if msg != nil {
						if err := s.processMessage(ctx, streamName, msg); err != nil {
							log.Errorf("❌ Failed to process message %s: %v", msg.ID, err)
						}
					}
				}
			}
		}(i + 1)
	}
}

// processMessage persists one event and acks it. Messages that cannot be
// decoded are acked too: redelivering them would never succeed.
func (s *Service) processMessage(ctx context.Context, streamName string, msg *redis.XMessage) error {
	taskType, _ := msg.Values["task_type"].(string)
	taskData, ok := msg.Values["task_data"].(string)

	switch {
	case taskType != task.SearchEventTaskType || !ok:
		log.Warnf("⚠️ Dropping malformed message %s (type %q)", msg.ID, taskType)
	default:
		eventTask, err := task.UnmarshalTask[*task.SearchEventTask]([]byte(taskData))
		if err != nil || eventTask == nil {
			log.Warnf("⚠️ Dropping undecodable search event %s: %v", msg.ID, err)
			break
		}
		if err := s.repository.SaveSearchEvent(ctx, &eventTask.Event); err != nil {
			// Left pending; the auto-claimer retries it.
			return fmt.Errorf("failed to save search event: %w", err)
		}
	}

	if err := s.queue.AckTask(ctx, streamName, s.groupName, msg.ID); err != nil {
		return fmt.Errorf("failed to ack message %s: %w", msg.ID, err)
	}

	return nil
}
