package chatmem

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// 会話の1ターン。UserIDは発話者が分かる場合だけ入る
type Turn struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
	UserID  *int64 `json:"user_id,omitempty"`
}

// 会話履歴の保存先。プロセス内のグローバルmapは持たない
type ConversationStore interface {
	Recent(ctx context.Context, conversationID string, limit int) ([]Turn, error)
	Append(ctx context.Context, conversationID string, turns ...Turn) error
}

type RedisConversationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisConversationStore(addr string, password string, db int, ttl time.Duration) *RedisConversationStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisConversationStore{client: client, ttl: ttl}
}

func (s *RedisConversationStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisConversationStore) Close() error {
	return s.client.Close()
}

func key(conversationID string) string {
	return "chat:history:" + conversationID
}

func (s *RedisConversationStore) Recent(ctx context.Context, conversationID string, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 10
	}

	vals, err := s.client.LRange(ctx, key(conversationID), int64(-limit), -1).Result()
	if err == redis.Nil {
		return []Turn{}, nil
	}
	if err != nil {
		return nil, err
	}

	turns := make([]Turn, 0, len(vals))
	for _, v := range vals {
		var t Turn
		if err := json.Unmarshal([]byte(v), &t); err != nil {
			// 壊れたエントリは飛ばす
			continue
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (s *RedisConversationStore) Append(ctx context.Context, conversationID string, turns ...Turn) error {
	if len(turns) == 0 {
		return nil
	}

	k := key(conversationID)
	vals := make([]interface{}, 0, len(turns))
	for _, t := range turns {
		payload, err := json.Marshal(t)
		if err != nil {
			return err
		}
		vals = append(vals, payload)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, k, vals...)
	pipe.LTrim(ctx, k, -50, -1)
	pipe.Expire(ctx, k, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// redis未設定時のフォールバック（履歴なしで動く）
type NoopConversationStore struct{}

func (NoopConversationStore) Recent(_ context.Context, _ string, _ int) ([]Turn, error) {
	return []Turn{}, nil
}

func (NoopConversationStore) Append(_ context.Context, _ string, _ ...Turn) error {
	return nil
}
