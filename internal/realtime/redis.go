package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "safedrive:"

// Доставка событий между инстансами через Redis pub/sub:
// сервисы публикуют в канал комнаты, каждый инстанс подписан на все
// комнаты и раздает сообщения своим websocket-клиентам.
type RedisNotifier struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisNotifier(logger *zap.Logger) (*RedisNotifier, error) {
	// config
	addr := os.Getenv("SAFEDRIVE_REDIS_URL")
	if addr == "" {
		return nil, fmt.Errorf("env SAFEDRIVE_REDIS_URL is not set")
	}
	user := os.Getenv("SAFEDRIVE_REDIS_USER")
	pwd := os.Getenv("SAFEDRIVE_REDIS_PWD")

	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    pwd,
		Username:    user,
		DB:          0,
		MaxRetries:  5,
		DialTimeout: 10 * time.Second,
	})
	err := client.Ping(context.Background()).Err()
	if err != nil {
		return nil, err
	}
	return &RedisNotifier{client, logger}, nil
}

func (n *RedisNotifier) Publish(ctx context.Context, room string, event string, payload any) error {
	msg, err := json.Marshal(Event{Room: room, Event: event, Payload: payload})
	if err != nil {
		return err
	}
	return n.client.Publish(ctx, channelPrefix+room, msg).Err()
}

// Перекачка сообщений из Redis в локальный hub. Блокируется до отмены ctx.
func (n *RedisNotifier) Run(ctx context.Context, hub *Hub) error {
	sub := n.client.PSubscribe(ctx, channelPrefix+"*")
	defer sub.Close()

	for {
		msg, err := sub.ReceiveMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		room := strings.TrimPrefix(msg.Channel, channelPrefix)
		hub.Broadcast(room, []byte(msg.Payload))
	}
}

func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
