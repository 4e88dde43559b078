package cache

import "github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/redis"

var _ Store = (*redis.Client)(nil)
