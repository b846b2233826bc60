package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/infrastructure/adapter/api/dto"
)

// StepResult is the outcome of one HTTP call
type StepResult struct {
	Step         string
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// SessionResult is the outcome of one provider/requester session
type SessionResult struct {
	Scenario  string
	Steps     []StepResult
	Conserved bool
	Err       error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalSessions      int
	SuccessfulSessions int
	FailedSessions     int
	ConservationErrors int
	TotalTime          time.Duration
	StepTimes          map[string][]time.Duration
	ErrorCounts        map[string]int
	ScenarioStats      map[string]int
	Lock               sync.Mutex
}

// SessionScenario picks the request size and how the session ends
type SessionScenario struct {
	Name string
	MB   int64
	// UsedPercent is the share of MB reported at completion; negative means the provider ignores
	UsedPercent int64
}

// client wraps the API with a bearer token
type client struct {
	http    *http.Client
	baseURL string
	token   string
}

func main() {
	// Define command line flags
	concurrency := flag.Int("c", 5, "Number of concurrent sessions")
	totalSessions := flag.Int("n", 50, "Total number of sessions to run")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 50, "Delay between sessions in milliseconds")
	flag.Parse()

	scenarios := []SessionScenario{
		{"Full Small", 100, 100},
		{"Full Large", 1000, 100},
		{"Half Used", 400, 50},
		{"Barely Used", 600, 1},
		{"Ignored", 200, -1},
	}

	fmt.Printf("Load testing %s with %d sessions, concurrency %d\n", *baseURL, *totalSessions, *concurrency)
	fmt.Printf("Session scenarios: %d\n", len(scenarios))

	stats := &TestStats{
		TotalSessions: *totalSessions,
		StepTimes:     make(map[string][]time.Duration),
		ErrorCounts:   make(map[string]int),
		ScenarioStats: make(map[string]int),
	}

	results := make(chan SessionResult, *totalSessions)
	jobs := make(chan int, *totalSessions)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL, *delayMs, scenarios, jobs, results)
		}()
	}

	go func() {
		for i := 0; i < *totalSessions; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			stats.record(result)
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	ticker := time.NewTicker(time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulSessions + stats.FailedSessions
			if completed > 0 {
				fmt.Printf("Progress: %d/%d sessions completed (%.1f%%)\n",
					completed, stats.TotalSessions, float64(completed)/float64(stats.TotalSessions)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	wg.Wait()
	close(results)
	<-collected
	ticker.Stop()

	stats.TotalTime = time.Since(startTime)
	printResults(stats)
}

func (s *TestStats) record(result SessionResult) {
	s.Lock.Lock()
	defer s.Lock.Unlock()

	s.ScenarioStats[result.Scenario]++
	for _, step := range result.Steps {
		s.StepTimes[step.Step] = append(s.StepTimes[step.Step], step.ResponseTime)
	}
	if result.Err != nil {
		s.FailedSessions++
		s.ErrorCounts[result.Err.Error()]++
		return
	}
	s.SuccessfulSessions++
	if !result.Conserved {
		s.ConservationErrors++
	}
}

func worker(baseURL string, delayMs int, scenarios []SessionScenario, jobs <-chan int, results chan<- SessionResult) {
	httpClient := &http.Client{Timeout: 10 * time.Second}

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}
		scenario := scenarios[rand.Intn(len(scenarios))]
		results <- runSession(httpClient, baseURL, scenario)
	}
}

// runSession registers a fresh pair, runs one request through its lifecycle
// and checks that the pair's coins were conserved
func runSession(httpClient *http.Client, baseURL string, scenario SessionScenario) SessionResult {
	result := SessionResult{Scenario: scenario.Name}
	step := func(name string, c *client, method, path string, body, out any) error {
		r := c.do(name, method, path, body, out)
		result.Steps = append(result.Steps, r)
		return r.Error
	}

	provider := &client{http: httpClient, baseURL: baseURL}
	requester := &client{http: httpClient, baseURL: baseURL}
	suffix := uuid.NewString()[:8]

	var providerAuth, requesterAuth dto.AuthResponse
	if result.Err = step("register", provider, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Email: "provider-" + suffix + "@load.test", Password: "load-test-password", Name: "Provider " + suffix, Role: "provider",
	}, &providerAuth); result.Err != nil {
		return result
	}
	provider.token = providerAuth.Token

	if result.Err = step("register", requester, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Email: "requester-" + suffix + "@load.test", Password: "load-test-password", Name: "Requester " + suffix, Role: "requester",
	}, &requesterAuth); result.Err != nil {
		return result
	}
	requester.token = requesterAuth.Token
	startTotal := providerAuth.User.Coins + requesterAuth.User.Coins

	available := true
	if result.Err = step("availability", provider, http.MethodPut, "/api/v1/me/availability",
		dto.AvailabilityRequest{Available: &available}, nil); result.Err != nil {
		return result
	}

	var created dto.RequestResponse
	if result.Err = step("create", requester, http.MethodPost, "/api/v1/requests", dto.CreateRequestRequest{
		ProviderID:   providerAuth.User.ID,
		MB:           scenario.MB,
		CoinsOffered: entity.CoinsForMB(scenario.MB),
		ClientRef:    suffix,
	}, &created); result.Err != nil {
		return result
	}

	if scenario.UsedPercent < 0 {
		if result.Err = step("ignore", provider, http.MethodPost, "/api/v1/requests/"+created.ID+"/ignore", nil, nil); result.Err != nil {
			return result
		}
	} else {
		if result.Err = step("accept", provider, http.MethodPost, "/api/v1/requests/"+created.ID+"/accept", nil, nil); result.Err != nil {
			return result
		}
		used := scenario.MB * scenario.UsedPercent / 100
		if result.Err = step("complete", requester, http.MethodPost, "/api/v1/requests/"+created.ID+"/complete",
			dto.CompleteRequestRequest{MBUsed: &used}, nil); result.Err != nil {
			return result
		}
	}

	var providerWallet, requesterWallet dto.WalletResponse
	if result.Err = step("wallet", provider, http.MethodGet, "/api/v1/wallet", nil, &providerWallet); result.Err != nil {
		return result
	}
	if result.Err = step("wallet", requester, http.MethodGet, "/api/v1/wallet", nil, &requesterWallet); result.Err != nil {
		return result
	}
	result.Conserved = providerWallet.Coins+requesterWallet.Coins == startTotal
	return result
}

func (c *client) do(name, method, path string, body, out any) StepResult {
	var payload *bytes.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return StepResult{Step: name, Error: err}
		}
		payload = bytes.NewReader(jsonData)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, payload)
	if err != nil {
		return StepResult{Step: name, Error: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	startTime := time.Now()
	resp, err := c.http.Do(req)
	result := StepResult{Step: name, ResponseTime: time.Since(startTime)}
	if err != nil {
		result.Error = err
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
	if !result.Success {
		var apiErr dto.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Message != "" {
			result.Error = fmt.Errorf("%s: HTTP %d: %s", name, resp.StatusCode, apiErr.Message)
		} else {
			result.Error = fmt.Errorf("%s: HTTP %d", name, resp.StatusCode)
		}
		return result
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			result.Success = false
			result.Error = fmt.Errorf("%s: decode response: %w", name, err)
		}
	}
	return result
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func printResults(stats *TestStats) {
	sessionsPerSecond := float64(stats.SuccessfulSessions) / stats.TotalTime.Seconds()

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Sessions:      %d\n", stats.TotalSessions)
	fmt.Printf("Successful Sessions: %d (%.1f%%)\n", stats.SuccessfulSessions,
		float64(stats.SuccessfulSessions)/float64(stats.TotalSessions)*100)
	fmt.Printf("Failed Sessions:     %d (%.1f%%)\n", stats.FailedSessions,
		float64(stats.FailedSessions)/float64(stats.TotalSessions)*100)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Sessions/second:     %.2f\n", sessionsPerSecond)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	steps := make([]string, 0, len(stats.StepTimes))
	for step := range stats.StepTimes {
		steps = append(steps, step)
	}
	sort.Strings(steps)
	for _, step := range steps {
		times := stats.StepTimes[step]
		sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

		var total time.Duration
		for _, d := range times {
			total += d
		}
		fmt.Printf("%-13s n=%-5d avg=%-12v p50=%-12v p95=%-12v p99=%v\n", step, len(times),
			total/time.Duration(len(times)), percentile(times, 50), percentile(times, 95), percentile(times, 99))
	}

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	for scenario, count := range stats.ScenarioStats {
		fmt.Printf("%-15s: %d sessions (%.1f%%)\n", scenario, count,
			float64(count)/float64(stats.TotalSessions)*100)
	}

	if stats.FailedSessions > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-60s: %d\n", errMsg, count)
		}
	}

	fmt.Println("\n================= CONCLUSION =================")
	if stats.ConservationErrors == 0 {
		fmt.Println("✅ Coins were conserved in every completed session")
	} else {
		fmt.Printf("❌ %d sessions ended with a different coin total than they started with\n", stats.ConservationErrors)
	}
	fmt.Println("================================================")
}
