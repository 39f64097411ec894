//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/redis/go-redis/v9"

	"github.com/region-map-service/internal/domain"
)

// Печатает события выбора региона из стрима, как их видит сервис заявлений.
// go run scripts/tail_selection.go -redis localhost:6379
func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	from := flag.String("from", "$", "Stream ID to start after ($ = only new events, 0 = from the beginning)")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	fmt.Printf("Listening on %s...\n", domain.StreamMapSelection)

	lastID := *from
	for {
		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{domain.StreamMapSelection, lastID},
			Count:   10,
			Block:   0,
		}).Result()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if err == redis.Nil {
				continue
			}
			log.Fatalf("Failed to read stream: %v", err)
		}

		for _, stream := range results {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var event domain.SelectionChangedEvent
				if err := json.Unmarshal([]byte(dataStr), &event); err != nil {
					fmt.Printf("%s: bad payload: %v\n", msg.ID, err)
					continue
				}

				parent := event.ActiveParentName
				if parent == "" {
					parent = "-"
				}
				fmt.Printf("%s  session=%s  %s=%s  parent=%s  at=%s\n",
					msg.ID, event.SessionID, event.Layer, event.SelectedRegionName, parent,
					event.OccurredAt.Format("15:04:05"))
			}
		}
	}
}
