// Package redis provides the Redis client wrapper used by authkit's
// distributed token blacklist.
//
// It wraps go-redis with authkit logging and configuration conventions.
// TTL expiry is delegated to Redis itself; the client only exposes the
// primitives the blacklist needs (SET, SETNX, EXISTS, DEL).
//
// # Quick Start
//
//	cfg := redis.Config{Enabled: true, Addr: "localhost:6379"}
//	client, err := redis.New(cfg, log)
package redis
