package main

import (
	"fmt"

	redisAdapter "github.com/aretw0/aasedit/pkg/adapters/redis"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// redisFromFlags returns a pinged client, or nil when --redis-addr is empty.
func redisFromFlags(cmd *cobra.Command) (*backend.Client, string, error) {
	addr, _ := cmd.Flags().GetString("redis-addr")
	if addr == "" {
		return nil, "", nil
	}
	password, _ := cmd.Flags().GetString("redis-password")
	db, _ := cmd.Flags().GetInt("redis-db")
	channel, _ := cmd.Flags().GetString("redis-channel")

	client := redisAdapter.NewClient(addr, password, db)
	if err := client.Ping(cmd.Context()).Err(); err != nil {
		_ = client.Close()
		return nil, "", fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return client, channel, nil
}
