package upstream

import (
	"context"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

const maxParallelProbes = 8

// Pool hands out catalog API base URLs in round-robin fashion
type Pool interface {
	Next() string
	Size() int
}

type pool struct {
	endpoints []string
	current   int
	mutex     sync.Mutex
}

// NewPool probes every base URL in parallel and keeps the healthy ones. If no
// endpoint answers, all of them are kept: the catalog may still be starting
// and the client's breaker handles a dead upstream.
func NewPool(ctx context.Context, baseURLs []string, healthPath string) Pool {
	endpoints := make([]string, 0, len(baseURLs))
	for _, u := range baseURLs {
		if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
			endpoints = append(endpoints, u)
		}
	}

	if len(endpoints) <= 1 || healthPath == "" {
		return &pool{endpoints: endpoints}
	}

	log.Infof("🔄 Probing %d catalog endpoints in parallel...", len(endpoints))

	healthy := make([]bool, len(endpoints))
	semaphore := make(chan struct{}, maxParallelProbes)

	var wg sync.WaitGroup
	for i, endpoint := range endpoints {
		wg.Add(1)

		go func(index int, endpoint string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if isHealthy(ctx, endpoint+healthPath) {
				healthy[index] = true
				log.Infof("✅ Catalog endpoint %s is healthy", endpoint)
			} else {
				log.Warnf("❌ Catalog endpoint %s is not responding, skipping", endpoint)
			}
		}(i, endpoint)
	}
	wg.Wait()

	// Keep configuration order so rotation is predictable.
	alive := make([]string, 0, len(endpoints))
	for i, endpoint := range endpoints {
		if healthy[i] {
			alive = append(alive, endpoint)
		}
	}

	if len(alive) == 0 {
		log.Warnf("⚠️ No catalog endpoint passed the health check, keeping all %d", len(endpoints))
		return &pool{endpoints: endpoints}
	}

	log.Infof("✅ Catalog pool initialized with %d healthy endpoints out of %d", len(alive), len(endpoints))
	return &pool{endpoints: alive}
}

// Next returns the next endpoint, or "" when the pool is empty.
func (p *pool) Next() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if len(p.endpoints) == 0 {
		return ""
	}

	endpoint := p.endpoints[p.current]
	p.current = (p.current + 1) % len(p.endpoints)

	return endpoint
}

func (p *pool) Size() int {
	return len(p.endpoints)
}

func isHealthy(ctx context.Context, url string) bool {
	client := resty.New().
		SetTimeout(3 * time.Second).
		SetRetryCount(0)
	defer client.Close()

	resp, err := client.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		log.Debugf("Health probe failed for %s: %v", url, err)
		return false
	}

	if resp.IsError() {
		log.Debugf("Health probe failed for %s with status: %s", url, resp.Status())
		return false
	}

	return true
}
