package cache_adapter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"

	"golang.org/x/sync/singleflight"
)

const loadKey = "developers"

// CachedDeveloperDirectory кэширует справочник застройщиков на TTL.
// Конкурентные промахи схлопываются в один запрос к источнику.
// Если обновление упало, а старая копия есть, отдается старая копия.
type CachedDeveloperDirectory struct {
	source port.DeveloperDirectoryPort
	ttl    time.Duration
	now    func() time.Time
	logger port.LoggerPort

	group singleflight.Group

	mu       sync.RWMutex
	items    []domain.Developer
	loadedAt time.Time
	valid    bool

	// generation растет на каждый Invalidate; загрузка, начатая до него,
	// не может пометить кэш свежим
	generation uint64
}

func NewCachedDeveloperDirectory(source port.DeveloperDirectoryPort, ttl time.Duration, logger port.LoggerPort) (*CachedDeveloperDirectory, error) {
	if source == nil {
		return nil, fmt.Errorf("developer directory source cannot be nil")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("developer cache ttl must be positive, got %s", ttl)
	}
	return &CachedDeveloperDirectory{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		logger: logger.WithFields(port.Fields{"component": "CachedDeveloperDirectory"}),
	}, nil
}

func (c *CachedDeveloperDirectory) ListDevelopers(ctx context.Context) ([]domain.Developer, error) {
	if items, fresh := c.snapshot(); fresh {
		return items, nil
	}

	v, err, _ := c.group.Do(loadKey, func() (interface{}, error) {
		// другой вызов мог успеть обновить кэш, пока мы ждали
		if items, fresh := c.snapshot(); fresh {
			return items, nil
		}
		return c.load(ctx)
	})
	if err != nil {
		c.mu.RLock()
		stale, valid := c.items, c.valid
		c.mu.RUnlock()
		if valid {
			contextkeys.LoggerFromContext(ctx).Warn("Developer directory refresh failed, serving stale copy", port.Fields{"error": err.Error()})
			return stale, nil
		}
		return nil, err
	}
	return v.([]domain.Developer), nil
}

// Invalidate помечает кэш устаревшим, следующий вызов сходит в источник.
func (c *CachedDeveloperDirectory) Invalidate() {
	c.mu.Lock()
	c.generation++
	c.loadedAt = time.Time{}
	c.mu.Unlock()
	// идущая загрузка могла прочитать источник до изменения
	c.group.Forget(loadKey)
}

// Start обновляет кэш каждые ttl, пока ctx не отменен.
func (c *CachedDeveloperDirectory) Start(ctx context.Context) error {
	if _, err := c.Refresh(ctx); err != nil {
		c.logger.Warn("Initial developer directory warmup failed", port.Fields{"error": err.Error()})
	}

	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := c.Refresh(ctx); err != nil {
				c.logger.Warn("Scheduled developer directory refresh failed", port.Fields{"error": err.Error()})
			}
		}
	}
}

// Refresh принудительно перечитывает источник.
func (c *CachedDeveloperDirectory) Refresh(ctx context.Context) ([]domain.Developer, error) {
	v, err, _ := c.group.Do(loadKey, func() (interface{}, error) {
		return c.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Developer), nil
}

func (c *CachedDeveloperDirectory) Close() error { return nil }

func (c *CachedDeveloperDirectory) snapshot() ([]domain.Developer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fresh := c.valid && !c.loadedAt.IsZero() && c.now().Sub(c.loadedAt) < c.ttl
	return c.items, fresh
}

func (c *CachedDeveloperDirectory) load(ctx context.Context) ([]domain.Developer, error) {
	c.mu.RLock()
	generation := c.generation
	c.mu.RUnlock()

	items, err := c.source.ListDevelopers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load developers: %w", err)
	}
	items = append([]domain.Developer(nil), items...)

	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		// справочник менялся во время чтения: копия годится только как устаревшая
		if !c.valid {
			c.items = items
			c.valid = true
		}
		c.logger.Debug("Developer directory changed during load, not marking fresh", port.Fields{"count": len(items)})
		return items, nil
	}
	c.items = items
	c.loadedAt = c.now()
	c.valid = true

	c.logger.Debug("Developer directory cached", port.Fields{"count": len(items)})
	return items, nil
}
