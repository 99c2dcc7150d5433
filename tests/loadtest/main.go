package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

const (
	baseURL      = "http://127.0.0.1:8080"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numArticles  = 300
	numSources   = 8
)

var categories = []string{"technology", "ai", "startups", "crypto", "programming", "cybersecurity", "gadgets"}

var httpClient = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== TechPulse Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Articles: %d | Sources: %d\n\n", numArticles, numSources)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Every state mutation rewrites the snapshot, so this phase measures
	// store lock contention plus the fsync cost.
	fmt.Println("\n--- Phase 1: State writes (history, bookmarks, preferences) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.60:
			return doRecordRead(rng)
		case r < 0.85:
			return doAddBookmark(rng)
		case r < 0.95:
			return doRemoveBookmark(rng)
		default:
			return doUpdatePreferences(rng)
		}
	})

	fmt.Println("\n--- Phase 2: Mixed load (30% writes, 70% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.20:
			return doRecordRead(rng)
		case r < 0.30:
			return doAddBookmark(rng)
		case r < 0.50:
			return doCheckBookmark(rng)
		case r < 0.70:
			return doGetState()
		case r < 0.90:
			return doGetFeed(rng)
		default:
			return doGetSources()
		}
	})

	// Feed pages come from the result cache after the first miss per
	// category, so this phase shows the cached read path.
	fmt.Println("\n--- Phase 3: Feed reads ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.8 {
			return doGetFeed(rng)
		}
		return doGetSources()
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Inc()
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-24s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 90))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-24s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 90))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func articleURL(n int) string {
	return fmt.Sprintf("https://loadtest.example.com/articles/%d", n)
}

func randomArticle(rng *rand.Rand) map[string]interface{} {
	n := rng.Intn(numArticles) + 1
	return map[string]interface{}{
		"id":        fmt.Sprintf("loadtest-%d", n),
		"title":     fmt.Sprintf("Load test story %d", n),
		"url":       articleURL(n),
		"source":    map[string]string{"name": fmt.Sprintf("Source %d", rng.Intn(numSources)+1)},
		"apiSource": "LoadTest",
	}
}

func doRequest(name, method, target string, body interface{}, want int) result {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, baseURL+target, reader)
	if err != nil {
		return result{name, 0, 0, true}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{name, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{name, resp.StatusCode, lat, resp.StatusCode != want}
}

func doRecordRead(rng *rand.Rand) result {
	return doRequest("POST /history", http.MethodPost, "/history", randomArticle(rng), http.StatusCreated)
}

func doAddBookmark(rng *rand.Rand) result {
	return doRequest("POST /bookmarks", http.MethodPost, "/bookmarks", randomArticle(rng), http.StatusCreated)
}

func doRemoveBookmark(rng *rand.Rand) result {
	target := "/bookmarks?url=" + url.QueryEscape(articleURL(rng.Intn(numArticles)+1))
	return doRequest("DELETE /bookmarks", http.MethodDelete, target, nil, http.StatusOK)
}

func doCheckBookmark(rng *rand.Rand) result {
	target := "/bookmarks/check?url=" + url.QueryEscape(articleURL(rng.Intn(numArticles)+1))
	return doRequest("GET /bookmarks/check", http.MethodGet, target, nil, http.StatusOK)
}

func doUpdatePreferences(rng *rand.Rand) result {
	body := map[string]interface{}{"readingSpeed": 150 + rng.Intn(200)}
	return doRequest("POST /preferences", http.MethodPost, "/preferences", body, http.StatusOK)
}

func doGetState() result {
	return doRequest("GET /state", http.MethodGet, "/state", nil, http.StatusOK)
}

func doGetFeed(rng *rand.Rand) result {
	target := fmt.Sprintf("/feed?category=%s&page=%d", categories[rng.Intn(len(categories))], rng.Intn(2)+1)
	return doRequest("GET /feed", http.MethodGet, target, nil, http.StatusOK)
}

func doGetSources() result {
	return doRequest("GET /sources", http.MethodGet, "/sources", nil, http.StatusOK)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
