package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redis "github.com/redis/go-redis/v9"

	"github.com/franco-vega/backend-tienda/internal/catalog"
)

// Validates the catalog dataset and warms the Redis cache for the default
// product listing so the first request after a deploy hits warm data.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	feed, err := catalog.LoadFeed(os.Getenv("CATALOG_PATH"))
	if err != nil {
		log.Fatalf("Catalog dataset invalid: %v", err)
	}
	fmt.Printf("Catalog OK: %d products\n", feed.Len())
	for _, facet := range feed.Categories() {
		fmt.Printf("  category %-20s %d products\n", facet.ID, facet.Count)
	}
	for _, facet := range feed.Suppliers() {
		fmt.Printf("  supplier %-20s %d products\n", facet.ID, facet.Count)
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set, skipping cache warmup")
		return
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse REDIS_URL: %v", err)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to ping Redis: %v", err)
	}

	service, err := catalog.NewService(catalog.ServiceConfig{
		Feed:  feed,
		Cache: catalog.NewCache(client, 5*time.Minute),
	})
	if err != nil {
		log.Fatalf("Failed to build catalog service: %v", err)
	}

	fmt.Println("Warming catalog cache...")
	params, err := service.ParseListParams(nil)
	if err != nil {
		log.Fatalf("Failed to build default listing params: %v", err)
	}
	result, err := service.ListProducts(ctx, params)
	if err != nil {
		log.Fatalf("Failed to warm catalog cache: %v", err)
	}
	fmt.Printf("Cached default listing: %d of %d products\n", len(result.Items), result.Total)

	log.Println("Seeding completed successfully!")
}
