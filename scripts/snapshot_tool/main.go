// Command snapshot_tool inspects and repairs calendar snapshot files
// without starting the server. It reports how many records a snapshot
// holds, how many would be dropped on load, and can rewrite the file with
// only the surviving records.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/eventflow-app/eventflow-api/internal/store"
	"github.com/eventflow-app/eventflow-api/pkg/blob"
)

func main() {
	var (
		dir     string
		key     string
		rewrite bool
	)

	flag.StringVar(&dir, "dir", "./data", "snapshot directory")
	flag.StringVar(&key, "key", "calendar-events", "snapshot key")
	flag.BoolVar(&rewrite, "rewrite", false, "rewrite the snapshot keeping only valid records")
	flag.Parse()

	fileStore, err := blob.NewFileStore(dir, key)
	if err != nil {
		log.Fatalf("open snapshot store: %v", err)
	}

	ctx := context.Background()
	raw, err := fileStore.Load(ctx)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			fmt.Printf("no snapshot at %s\n", fileStore.Path())
			return
		}
		log.Fatalf("load snapshot: %v", err)
	}

	events, dropped, err := store.DecodeEvents(raw)
	if err != nil {
		log.Fatalf("snapshot is not a JSON array: %v", err)
	}

	fmt.Printf("snapshot:  %s\n", fileStore.Path())
	fmt.Printf("valid:     %d\n", len(events))
	fmt.Printf("dropped:   %d\n", dropped)

	if !rewrite {
		if dropped > 0 {
			fmt.Println("run with -rewrite to keep only the valid records")
		}
		return
	}
	if dropped == 0 {
		fmt.Println("nothing to rewrite")
		return
	}

	data, err := store.EncodeEvents(events)
	if err != nil {
		log.Fatalf("encode snapshot: %v", err)
	}
	if err := fileStore.Save(ctx, data); err != nil {
		log.Fatalf("save snapshot: %v", err)
	}
	fmt.Printf("rewrote %s with %d records\n", fileStore.Path(), len(events))
}
