package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18080"
	numWorkers   = 50
	testDuration = 10 * time.Second
)

var outcomes = []string{"dismissed", "dismissed", "dismissed", "dismissed", "accepted"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
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
	fmt.Println("=== dbpd Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n\n", numWorkers, testDuration)

	// Wait for server
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

	// Phase 1: Hammer the activity endpoint
	fmt.Println("\n--- Phase 1: Activity seeding (POST /tick) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doTick(rng)
	})

	// Phase 2: Mixed load
	fmt.Println("\n--- Phase 2: Mixed load (50% tick, 40% reads, 10% evaluate) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.50:
			return doTick(rng)
		case r < 0.70:
			return doGetStatus()
		case r < 0.80:
			return doHealth()
		case r < 0.90:
			return doPromptPoll(rng)
		default:
			return doEvaluate()
		}
	})

	// Phase 3: Read-heavy load
	fmt.Println("\n--- Phase 3: Read-heavy load (10% tick, 85% reads, 5% evaluate) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doTick(rng)
		case r < 0.55:
			return doGetStatus()
		case r < 0.75:
			return doPromptPoll(rng)
		case r < 0.95:
			return doHealth()
		default:
			return doEvaluate()
		}
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
					totalOps.Add(1)
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

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doTick(rng *rand.Rand) result {
	var data []byte
	if rng.Float64() < 0.3 {
		at := time.Now().Add(-time.Duration(rng.Intn(7*24)) * time.Hour)
		data, _ = json.Marshal(map[string]string{"at": at.Format(time.RFC3339)})
	}

	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/tick", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /tick", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /tick", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doEvaluate() result {
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/evaluate", "application/json", nil)
	lat := time.Since(start)
	if err != nil {
		return result{"POST /evaluate", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	// 409 means another worker holds the cycle, which is expected here
	ok := resp.StatusCode == 202 || resp.StatusCode == 409
	return result{"POST /evaluate", resp.StatusCode, lat, !ok}
}

// doPromptPoll polls for a pending prompt and, when one is waiting,
// resolves it so evaluation cycles keep flowing during the test.
func doPromptPoll(rng *rand.Rand) result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/prompt")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /prompt", 0, lat, true}
	}
	if resp.StatusCode != 200 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return result{"GET /prompt", resp.StatusCode, lat, resp.StatusCode != 204}
	}

	var pending struct {
		ID string `json:"id"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&pending)
	resp.Body.Close()
	if decodeErr != nil || pending.ID == "" {
		return result{"GET /prompt", resp.StatusCode, lat, true}
	}

	body, _ := json.Marshal(map[string]string{
		"id":      pending.ID,
		"outcome": outcomes[rng.Intn(len(outcomes))],
	})
	start = time.Now()
	resp, err = httpClient.Post(baseURL+"/prompt/outcome", "application/json", bytes.NewReader(body))
	lat = time.Since(start)
	if err != nil {
		return result{"POST /prompt/outcome", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	// 404/409 mean another worker resolved the same prompt first
	ok := resp.StatusCode == 204 || resp.StatusCode == 404 || resp.StatusCode == 409
	return result{"POST /prompt/outcome", resp.StatusCode, lat, !ok}
}

func doGetStatus() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/status")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /status", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /status", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doHealth() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/health")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /health", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /health", resp.StatusCode, lat, resp.StatusCode != 200}
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
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
