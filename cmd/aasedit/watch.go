package main

import (
	"errors"
	"fmt"

	redisAdapter "github.com/aretw0/aasedit/pkg/adapters/redis"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print commits published to Redis by serving instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, channel, err := redisFromFlags(cmd)
			if err != nil {
				return err
			}
			if client == nil {
				return errors.New("--redis-addr is required")
			}
			defer client.Close()

			pub := redisAdapter.NewPublisher(client, redisAdapter.WithChannel(channel))
			notices, closeSub, err := pub.Subscribe(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSub()

			logger.Info("Watching commits", "channel", pub.Channel())
			for n := range notices {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
					n.Event.Timestamp.Format("15:04:05"), n.SessionID, n.Event.Outcome, n.Event.Message)
			}
			return nil
		},
	}
	addRedisFlags(cmd)
	return cmd
}
