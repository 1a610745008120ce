package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/KarpovAlexandrGo/todo-service/internal/entity"
	"github.com/KarpovAlexandrGo/todo-service/internal/repo"
	"github.com/KarpovAlexandrGo/todo-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTTL = 5 * time.Minute

	// TombstoneTTL - сколько живет метка удаленной задачи.
	TombstoneTTL = 30 * time.Second

	tombstone = "deleted"
)

// CachedBackend - кэш чтения поверх другого Backend. Ошибки Redis не
// прерывают запрос: чтение уходит в основной Backend. После записи в кэше
// лежит зафиксированное состояние, чтение только дополняет кэш.
type CachedBackend struct {
	next   repo.Backend
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewCachedBackend(next repo.Backend, client *redis.Client, ttl time.Duration) *CachedBackend {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedBackend{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.Log,
	}
}

func listKey(id uuid.UUID) string { return "todo:list:" + id.String() }
func taskKey(id uuid.UUID) string { return "todo:task:" + id.String() }

func (c *CachedBackend) FindList(ctx context.Context, id uuid.UUID) (*entity.TaskList, error) {
	var s entity.TaskListState
	if hit, gone := c.get(ctx, listKey(id), &s); gone {
		return nil, repo.ErrNotFound
	} else if hit {
		return entity.RestoreTaskList(s), nil
	}

	list, err := c.next.FindList(ctx, id)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, listKey(id), list.State())
	return list, nil
}

func (c *CachedBackend) FindTask(ctx context.Context, id uuid.UUID) (*entity.TodoTask, error) {
	var s entity.TodoTaskState
	if hit, gone := c.get(ctx, taskKey(id), &s); gone {
		return nil, repo.ErrNotFound
	} else if hit {
		return entity.RestoreTodoTask(s), nil
	}

	task, err := c.next.FindTask(ctx, id)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, taskKey(id), task.State())
	return task, nil
}

// Apply после успешной записи кладет в кэш новое состояние сущностей,
// а для удаленных задач - метку удаления на TombstoneTTL.
func (c *CachedBackend) Apply(ctx context.Context, cs *repo.ChangeSet) error {
	if err := c.next.Apply(ctx, cs); err != nil {
		return err
	}
	if cs.Empty() {
		return nil
	}

	_, err := c.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, l := range cs.Lists {
			if data, err := json.Marshal(l); err == nil {
				p.Set(ctx, listKey(l.ID), data, c.ttl)
			}
		}
		for _, t := range cs.Tasks {
			if data, err := json.Marshal(t); err == nil {
				p.Set(ctx, taskKey(t.ID), data, c.ttl)
			}
		}
		for _, id := range cs.DeletedTasks {
			p.Set(ctx, taskKey(id), tombstone, c.tombstoneTTL())
		}
		return nil
	})
	if err != nil {
		// запись в кэш не удалась: удаляем ключи, чтобы не отдавать старое состояние
		keys := touchedKeys(cs)
		c.logger.WithField("keys", keys).WithError(err).Error("Failed to update cache")
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.WithField("keys", keys).WithError(err).Error("Failed to invalidate cache")
		}
	}
	return nil
}

func (c *CachedBackend) tombstoneTTL() time.Duration {
	if c.ttl < TombstoneTTL {
		return c.ttl
	}
	return TombstoneTTL
}

func touchedKeys(cs *repo.ChangeSet) []string {
	keys := make([]string, 0, len(cs.Lists)+len(cs.Tasks)+len(cs.DeletedTasks))
	for _, l := range cs.Lists {
		keys = append(keys, listKey(l.ID))
	}
	for _, t := range cs.Tasks {
		keys = append(keys, taskKey(t.ID))
	}
	for _, id := range cs.DeletedTasks {
		keys = append(keys, taskKey(id))
	}
	return keys
}

// Ping проверяет подключение к Redis
func (c *CachedBackend) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// get возвращает hit, если значение найдено и разобрано, и gone, если
// в ключе лежит метка удаления.
func (c *CachedBackend) get(ctx context.Context, key string, dst interface{}) (hit, gone bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, false
	}
	if err != nil {
		c.logger.WithField("key", key).WithError(err).Warn("Failed to read cache")
		return false, false
	}
	if string(data) == tombstone {
		return false, true
	}

	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.WithField("key", key).WithError(err).Warn("Failed to decode cached value")
		return false, false
	}
	return true, false
}

// fill заполняет кэш после чтения из базы. SETNX не дает прочитанному
// до чужой записи состоянию затереть то, что положил Apply.
func (c *CachedBackend) fill(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.SetNX(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.WithField("key", key).WithError(err).Warn("Failed to write cache")
	}
}
