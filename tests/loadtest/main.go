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
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numUsers     = 200
)

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
	fmt.Println("=== MindBloom Core Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Users: %d\n\n", numWorkers, testDuration, numUsers)

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

	// Phase 1: Seed tracking data with POST requests
	fmt.Println("\n--- Phase 1: Seeding tracking data (POST mood/stress/sleep) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		switch rng.Intn(3) {
		case 0:
			return doPostMood(rng)
		case 1:
			return doPostStress(rng)
		default:
			return doPostSleep(rng)
		}
	})

	// Phase 2: Mixed read/write load
	fmt.Println("\n--- Phase 2: Mixed load (50% POST, 50% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.20:
			return doPostMood(rng)
		case r < 0.35:
			return doPostStress(rng)
		case r < 0.50:
			return doPostSleep(rng)
		case r < 0.75:
			return doGetProgress(rng)
		case r < 0.90:
			return doGetCoping(rng)
		default:
			return doGetNotifications(rng)
		}
	})

	// Phase 3: Read-heavy load, exercises the report cache
	fmt.Println("\n--- Phase 3: Read-heavy load (10% POST, 90% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doPostMood(rng)
		case r < 0.60:
			return doGetProgress(rng)
		case r < 0.85:
			return doGetCoping(rng)
		default:
			return doGetNotifications(rng)
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

func userID(rng *rand.Rand) string {
	return fmt.Sprintf("user_%d", rng.Intn(numUsers)+1)
}

func postJSON(endpoint string, body map[string]interface{}) result {
	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+endpoint, "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST " + endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST " + endpoint, resp.StatusCode, lat, resp.StatusCode != 201}
}

func doPostMood(rng *rand.Rand) result {
	return postJSON("/mood", map[string]interface{}{
		"user_id": userID(rng),
		"rating":  rng.Intn(5) + 1,
	})
}

func doPostStress(rng *rand.Rand) result {
	return postJSON("/stress", map[string]interface{}{
		"user_id": userID(rng),
		"subscales": map[string]int{
			"workload":          rng.Intn(6),
			"sleep_quality":     rng.Intn(6),
			"anxiety":           rng.Intn(6),
			"mood":              rng.Intn(6),
			"physical_symptoms": rng.Intn(6),
			"concentration":     rng.Intn(6),
			"social_connection": rng.Intn(6),
		},
	})
}

func doPostSleep(rng *rand.Rand) result {
	start := time.Now().Add(-time.Duration(rng.Intn(12)+20) * time.Hour)
	end := start.Add(time.Duration(rng.Intn(5)+5) * time.Hour)
	return postJSON("/sleep", map[string]interface{}{
		"user_id":     userID(rng),
		"quality":     rng.Intn(5) + 1,
		"sleep_start": start.Format(time.RFC3339),
		"sleep_end":   end.Format(time.RFC3339),
	})
}

func doGet(endpoint, url string) result {
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET " + endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET " + endpoint, resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetProgress(rng *rand.Rand) result {
	return doGet("/progress", fmt.Sprintf("%s/progress?u=%s", baseURL, userID(rng)))
}

func doGetCoping(rng *rand.Rand) result {
	return doGet("/coping", fmt.Sprintf("%s/coping?u=%s", baseURL, userID(rng)))
}

func doGetNotifications(rng *rand.Rand) result {
	return doGet("/notifications", fmt.Sprintf("%s/notifications?u=%s", baseURL, userID(rng)))
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
