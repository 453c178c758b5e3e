package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := parseRedisURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

func parseRedisURL(redisURL string) (*redis.Options, error) {
	u, err := url.Parse(redisURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported redis scheme %q", u.Scheme)
	}

	opts := &redis.Options{
		Addr: u.Host,
	}

	if u.User != nil {
		if password, ok := u.User.Password(); ok {
			opts.Password = password
		}
		if u.User.Username() != "" {
			opts.Username = u.User.Username()
		}
	}

	if u.Path != "" && u.Path != "/" {
		db, err := strconv.Atoi(u.Path[1:])
		if err != nil {
			return nil, fmt.Errorf("invalid redis database %q", u.Path[1:])
		}
		opts.DB = db
	}

	// Enable TLS for secure connections
	if u.Scheme == "rediss" {
		opts.TLSConfig = &tls.Config{
			ServerName: u.Hostname(),
		}
	}

	return opts, nil
}
