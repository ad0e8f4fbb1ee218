package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

var maxAssets int = 1000
var maxDepth int = 8
var updatesPerAsset int = 10
var httpHostPort string = "127.0.0.1:1080"

var tenantID string = uuid.NewString()

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified, tenant %s\n", tenantID)

	// build a random tree: each asset hangs off a previous one, capped at
	// maxDepth so updates exercise a realistic ancestor chain
	assetIDs := make([]string, 0, maxAssets)
	depths := make(map[string]int, maxAssets)

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	for i := 0; i < maxAssets; i++ {
		var parentID *string
		if i > 0 {
			candidate := assetIDs[rnd.Intn(len(assetIDs))]
			if depths[candidate] < maxDepth {
				parentID = &candidate
			}
		}
		id := createAsset(fmt.Sprintf("asset-%04d", i), parentID)
		assetIDs = append(assetIDs, id)
		if parentID != nil {
			depths[id] = depths[*parentID] + 1
		}
		fmt.Printf("\rcreated asset %v", i)
	}
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rcreated %v assets: used time=%v seconds, throughput=%v action/second\n",
		maxAssets, usedTime.Seconds(), float64(maxAssets)/usedTime.Seconds(),
	)

	totalUpdates := maxAssets * updatesPerAsset

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxAssets; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < updatesPerAsset; n++ {
				postState(assetIDs[i])
			}
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"posted %v state updates: used time=%v seconds, throughput=%v action/second\n",
		totalUpdates, usedTime.Seconds(), float64(totalUpdates)/usedTime.Seconds(),
	)

	startTime = time.Now()
	getTree(assetIDs[0])
	usedTime = time.Since(startTime)

	fmt.Printf("fetched full tree of root in %v seconds\n", usedTime.Seconds())
}

func createAsset(name string, parentID *string) string {
	payload := map[string]any{
		"name":     name,
		"category": "device",
	}
	if parentID != nil {
		payload["parent_id"] = *parentID
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost,
		fmt.Sprintf("http://%s/assets", httpHostPort), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", tenantID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal("create asset failed:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("create asset failed with status %v", resp.StatusCode)
	}

	var created struct {
		ID string `json:"ID"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		log.Fatal("decode create response failed:", err)
	}
	return created.ID
}

func postState(assetID string) {
	payload := map[string]any{
		"values": map[string]any{
			"temperature": 15.0 + rnd.Float64()*30.0,
			"humidity":    rnd.Float64() * 100.0,
		},
		"device_id": "bench-device",
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost,
		fmt.Sprintf("http://%s/assets/%s/state", httpHostPort, assetID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", tenantID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal("post state failed:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("post state failed with status %v", resp.StatusCode)
	}
}

func getTree(rootID string) {
	req, _ := http.NewRequest(http.MethodGet,
		fmt.Sprintf("http://%s/assets/%s/tree", httpHostPort, rootID), nil)
	req.Header.Set("X-Tenant-ID", tenantID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal("get tree failed:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("get tree failed with status %v", resp.StatusCode)
	}
}
