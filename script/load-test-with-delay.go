package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CreateRequest is the POST /transactions payload
type CreateRequest struct {
	Amount    json.Number `json:"amount"`
	Currency  string      `json:"currency"`
	Reference string      `json:"reference"`
}

// TransactionView is the subset of the transaction payload the test reads
type TransactionView struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	FailureReason string `json:"failureReason,omitempty"`
}

// ErrorView is the subset of the error payload the test reads
type ErrorView struct {
	Error                 string `json:"error"`
	ExistingTransactionID string `json:"existingTransactionId,omitempty"`
}

// TestResult contains metrics for a single create request
type TestResult struct {
	ResponseTime time.Duration
	StatusCode   int
	Created      string // transaction ID on 201
	Duplicate    bool   // 409 DuplicateReference naming the existing transaction
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests     int
	Created           int
	Duplicates        int
	Unexpected        int
	TotalTime         time.Duration
	ResponseTimes     []time.Duration
	TotalResponseTime time.Duration
	ErrorCounts       map[string]int
	CreatedIDs        []string
	FinalStatuses     map[string]int
	SettleTime        time.Duration
	Lock              sync.Mutex
}

// Scenario is one amount/currency combination
type Scenario struct {
	Amount   string
	Currency string
}

// references hands out fresh references and replays earlier ones on demand
type references struct {
	mu   sync.Mutex
	used []string
}

func (r *references) next(duplicate bool) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if duplicate && len(r.used) > 0 {
		return r.used[rand.IntN(len(r.used))], true
	}
	ref := "LT-" + uuid.NewString()
	r.used = append(r.used, ref)
	return ref, false
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of create requests to make")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	dupRate := flag.Float64("dup", 0.1, "Fraction of requests that reuse an earlier reference")
	waitFor := flag.Duration("wait", 2*time.Minute, "How long to poll for created transactions to settle")
	flag.Parse()

	scenarios := []Scenario{
		{"10.00", "USD"},
		{"250.75", "USD"},
		{"99.99", "EUR"},
		{"1200", "GBP"},
		{"0.01", "JPY"},
	}

	fmt.Printf("Load testing %s\n", *baseURL)
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d (%.0f%% duplicates)\n", *totalRequests, *dupRate*100)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	stats := &TestStats{
		TotalRequests: *totalRequests,
		ErrorCounts:   make(map[string]int),
		ResponseTimes: make([]time.Duration, 0, *totalRequests),
		FinalStatuses: make(map[string]int),
	}

	client := &http.Client{Timeout: 10 * time.Second}
	refs := &references{}
	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(client, *baseURL, *delayMs, *dupRate, scenarios, refs, jobs, results)
		}()
	}

	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

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
			completed := len(stats.ResponseTimes)
			stats.Lock.Unlock()
			fmt.Printf("Progress: %d/%d requests completed\n", completed, stats.TotalRequests)
		}
	}()

	wg.Wait()
	close(results)
	<-collected
	ticker.Stop()
	stats.TotalTime = time.Since(startTime)

	fmt.Printf("Polling %d transactions until they settle...\n", len(stats.CreatedIDs))
	settleStart := time.Now()
	pollStatuses(client, *baseURL, stats, *waitFor)
	stats.SettleTime = time.Since(settleStart)

	printResults(stats)
}

func (s *TestStats) record(result TestResult) {
	s.Lock.Lock()
	defer s.Lock.Unlock()

	s.ResponseTimes = append(s.ResponseTimes, result.ResponseTime)
	s.TotalResponseTime += result.ResponseTime

	switch {
	case result.Created != "":
		s.Created++
		s.CreatedIDs = append(s.CreatedIDs, result.Created)
	case result.Duplicate:
		s.Duplicates++
	default:
		s.Unexpected++
		msg := "unknown"
		if result.Error != nil {
			msg = result.Error.Error()
		}
		s.ErrorCounts[msg]++
	}
}

func worker(client *http.Client, baseURL string, delayMs int, dupRate float64,
	scenarios []Scenario, refs *references, jobs <-chan int, results chan<- TestResult) {

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		scenario := scenarios[rand.IntN(len(scenarios))]
		reference, duplicate := refs.next(rand.Float64() < dupRate)

		body, err := json.Marshal(CreateRequest{
			Amount:    json.Number(scenario.Amount),
			Currency:  scenario.Currency,
			Reference: reference,
		})
		if err != nil {
			results <- TestResult{Error: err}
			continue
		}

		start := time.Now()
		resp, err := client.Post(baseURL+"/transactions", "application/json", bytes.NewReader(body))
		result := TestResult{ResponseTime: time.Since(start)}
		if err != nil {
			result.Error = err
			results <- result
			continue
		}

		result.StatusCode = resp.StatusCode
		switch {
		// A replayed reference can overtake its original, so either one may win
		case resp.StatusCode == http.StatusCreated:
			var txn TransactionView
			if err := json.NewDecoder(resp.Body).Decode(&txn); err != nil {
				result.Error = fmt.Errorf("decode created transaction: %w", err)
			} else {
				result.Created = txn.ID
			}
		case resp.StatusCode == http.StatusConflict:
			var e ErrorView
			if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.ExistingTransactionID != "" {
				result.Duplicate = true
			} else {
				result.Error = fmt.Errorf("409 without existingTransactionId")
			}
		default:
			result.Error = fmt.Errorf("HTTP status code %d (duplicate=%t)", resp.StatusCode, duplicate)
		}
		resp.Body.Close()

		results <- result
	}
}

// pollStatuses reads every created transaction until all are terminal or waitFor elapses
func pollStatuses(client *http.Client, baseURL string, stats *TestStats, waitFor time.Duration) {
	pending := slices.Clone(stats.CreatedIDs)
	deadline := time.Now().Add(waitFor)

	for len(pending) > 0 && time.Now().Before(deadline) {
		var still []string
		for _, id := range pending {
			status, err := fetchStatus(client, baseURL, id)
			if err != nil {
				stats.FinalStatuses["poll error"]++
				continue
			}
			if status == "COMPLETED" || status == "FAILED" {
				stats.FinalStatuses[status]++
				continue
			}
			still = append(still, id)
		}
		pending = still
		if len(pending) > 0 {
			time.Sleep(time.Second)
		}
	}

	for _, id := range pending {
		status, err := fetchStatus(client, baseURL, id)
		if err != nil {
			status = "poll error"
		}
		stats.FinalStatuses[status]++
	}
}

func fetchStatus(client *http.Client, baseURL, id string) (string, error) {
	resp, err := client.Get(baseURL + "/transactions/" + id)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}
	var txn TransactionView
	if err := json.NewDecoder(resp.Body).Decode(&txn); err != nil {
		return "", err
	}
	return txn.Status, nil
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func printResults(stats *TestStats) {
	tps := float64(len(stats.ResponseTimes)) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	sorted := slices.Clone(stats.ResponseTimes)
	slices.Sort(sorted)

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Created (201):       %d\n", stats.Created)
	fmt.Printf("Duplicates (409):    %d\n", stats.Duplicates)
	fmt.Printf("Unexpected:          %d\n", stats.Unexpected)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Intake TPS:          %.2f\n", tps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	if len(sorted) > 0 {
		fmt.Printf("Minimum Response:    %v\n", sorted[0])
		fmt.Printf("Maximum Response:    %v\n", sorted[len(sorted)-1])
	}
	fmt.Printf("P50 Response:        %v\n", percentile(sorted, 50))
	fmt.Printf("P90 Response:        %v\n", percentile(sorted, 90))
	fmt.Printf("P95 Response:        %v\n", percentile(sorted, 95))
	fmt.Printf("P99 Response:        %v\n", percentile(sorted, 99))

	fmt.Println("\n----------------- LIFECYCLE -----------------")
	fmt.Printf("Settle Time:         %.2f seconds\n", stats.SettleTime.Seconds())
	for status, count := range stats.FinalStatuses {
		fmt.Printf("%-20s %d (%.1f%%)\n", status+":", count, float64(count)/float64(max(stats.Created, 1))*100)
	}

	if stats.Unexpected > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-50s: %d\n", errMsg, count)
		}
	}

	fmt.Println("\n================= CONCLUSION =================")
	settled := stats.FinalStatuses["COMPLETED"] + stats.FinalStatuses["FAILED"]
	if stats.Unexpected == 0 && settled == stats.Created {
		fmt.Println("✅ Every request was answered as expected and every transaction settled")
	} else {
		fmt.Printf("❌ %d unexpected responses, %d of %d transactions settled\n", stats.Unexpected, settled, stats.Created)
	}
	fmt.Println("================================================")
}
