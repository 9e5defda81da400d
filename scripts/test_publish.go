//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type TripRouteEvent struct {
	TripID uuid.UUID `json:"trip_id"`
	Mode   string    `json:"mode,omitempty"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	tripID := flag.String("trip", "", "Trip UUID (random if empty)")
	mode := flag.String("mode", "", "Transport mode (walking/driving/cycling, empty = all)")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	id := uuid.New()
	if *tripID != "" {
		parsed, err := uuid.Parse(*tripID)
		if err != nil {
			log.Fatalf("Invalid trip UUID: %v", err)
		}
		id = parsed
	}

	event := TripRouteEvent{
		TripID: id,
		Mode:   *mode,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:trips:route-invalidate",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: stream:trips:route-invalidate\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Trip ID: %s\n", event.TripID)
	if event.Mode != "" {
		fmt.Printf("   Mode: %s\n", event.Mode)
	} else {
		fmt.Printf("   Mode: <all>\n")
	}
}
