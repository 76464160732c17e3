package pub

import (
	"context"
	"time"

	"github.com/garyburd/redigo/redis"
)

type redisSink struct {
	pool *redis.Pool
}

// NewRedis returns a sink that PUBLISHes on a Redis channel. Connections are
// dialed lazily.
func NewRedis(addr string) Sink {
	return &redisSink{
		pool: &redis.Pool{
			MaxIdle:     2,
			IdleTimeout: 4 * time.Minute,
			Dial: func() (redis.Conn, error) {
				return redis.Dial("tcp", addr)
			},
		},
	}
}

func (s *redisSink) Send(_ context.Context, topic string, msg []byte) error {
	conn := s.pool.Get()
	defer conn.Close() // nolint
	_, err := conn.Do("PUBLISH", topic, msg)
	return err
}

func (s *redisSink) Close() error {
	return s.pool.Close()
}
