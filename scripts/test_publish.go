//go:build ignore

// Manual helper: publishes a county-assign event so the worker can be
// exercised end to end without going through the API.
//
//	go run scripts/test_publish.go -redis localhost:6379
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

const streamCountyAssign = "stream:county:assign"

type countyAssignEvent struct {
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
	Name       string    `json:"name"`
	Address    string    `json:"address,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	Zip        string    `json:"zip,omitempty"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	entityID := flag.String("id", "", "Entity id (UUID); random when empty")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	id := uuid.New()
	if *entityID != "" {
		parsed, err := uuid.Parse(*entityID)
		if err != nil {
			log.Fatalf("Invalid entity id: %v", err)
		}
		id = parsed
	}

	event := countyAssignEvent{
		EntityType: "organization",
		EntityID:   id,
		Name:       "Test Organization",
		Address:    "100 SE 2nd St",
		City:       "Miami",
		State:      "FL",
		Zip:        "33131",
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	msgID, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamCountyAssign,
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Published event %s for entity %s\n", msgID, event.EntityID)
}
