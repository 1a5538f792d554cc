package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
)

// Rebuilds item:<owner>:instances from the originalUuid flags of the stored
// items and reports items whose JSON no longer decodes.
func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning items for action copies...")

	// owner -> canonical uuid -> copy id
	wanted := make(map[string]map[string]string)
	var corruptedKeys []string
	var checkedCount int

	iter := client.Scan(ctx, 0, "item:*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		parts := strings.Split(key, ":")
		if len(parts) != 3 || parts[2] == "index" {
			continue
		}
		if parts[2] == "instances" {
			// Owners left with an index but no copies still need checking
			if wanted[parts[1]] == nil {
				wanted[parts[1]] = make(map[string]string)
			}
			continue
		}
		checkedCount++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var item simulacrum.Item
		if err := json.Unmarshal([]byte(data), &item); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", key)
			corruptedKeys = append(corruptedKeys, key)
			continue
		}

		orig := item.OriginalUUID()
		if orig == "" {
			continue
		}
		owner := parts[1]
		if wanted[owner] == nil {
			wanted[owner] = make(map[string]string)
		}
		if prev, dup := wanted[owner][orig]; dup {
			fmt.Printf("! %s holds two copies of %s: %s and %s\n", owner, orig, prev, item.ID)
			if prev < item.ID {
				continue
			}
		}
		wanted[owner][orig] = item.ID
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	owners := make([]string, 0, len(wanted))
	for owner := range wanted {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	var drifted []string
	for _, owner := range owners {
		current, err := client.HGetAll(ctx, instancesKey(owner)).Result()
		if err != nil {
			log.Fatalf("Failed to read %s: %v", instancesKey(owner), err)
		}
		if !sameIndex(current, wanted[owner]) {
			fmt.Printf("✗ Instance index of %s is out of date (%d stored, %d expected)\n",
				owner, len(current), len(wanted[owner]))
			drifted = append(drifted, owner)
		}
	}

	fmt.Printf("\nChecked %d items, %d owners with drifted indexes, %d corrupted entries\n",
		checkedCount, len(drifted), len(corruptedKeys))

	for _, key := range corruptedKeys {
		fmt.Printf("  corrupted: %s\n", key)
	}

	if len(drifted) == 0 {
		fmt.Println("Instance indexes are consistent!")
		return
	}

	fmt.Print("\nDo you want to REBUILD the drifted indexes? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, owner := range drifted {
		pipe := client.TxPipeline()
		pipe.Del(ctx, instancesKey(owner))
		for orig, id := range wanted[owner] {
			pipe.HSet(ctx, instancesKey(owner), orig, id)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			fmt.Printf("Failed to rebuild %s: %v\n", instancesKey(owner), err)
			continue
		}
		fmt.Printf("Rebuilt %s\n", instancesKey(owner))
	}
	fmt.Println("\nRebuild complete!")
}

func instancesKey(owner string) string {
	return "item:" + owner + ":instances"
}

func sameIndex(current, wanted map[string]string) bool {
	if len(current) != len(wanted) {
		return false
	}
	for orig, id := range wanted {
		if current[orig] != id {
			return false
		}
	}
	return true
}
