package main

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"sync/atomic"
	"time"
)

// fakeUpstreams simulates the order, customer and catalog collaborators so
// the remote variant can be exercised without the real services. Latency and
// failure injection mimic degraded collaborators.
type fakeUpstreams struct {
	latency  time.Duration
	failRate float64

	totalCalls int64
}

type orderRecord struct {
	ID         int64 `json:"id"`
	CustomerID int64 `json:"customer_id"`
	ProductID  int64 `json:"product_id"`
	Quantity   int64 `json:"quantity"`
}

type customerRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type productRecord struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

var orders = []orderRecord{
	{ID: 1, CustomerID: 1, ProductID: 1, Quantity: 2},
	{ID: 2, CustomerID: 2, ProductID: 3, Quantity: 1},
	{ID: 3, CustomerID: 1, ProductID: 2, Quantity: 4},
	{ID: 4, CustomerID: 3, ProductID: 1, Quantity: 1},
	{ID: 5, CustomerID: 2, ProductID: 99, Quantity: 7},
}

var customers = []customerRecord{
	{ID: 1, Name: "Maria Anders"},
	{ID: 2, Name: "Thomas Hardy"},
	{ID: 3, Name: "Hanna Moos"},
}

var products = []productRecord{
	{ID: 1, Name: "Notebook", Price: 899.90},
	{ID: 2, Name: "Monitor", Price: 249.00},
	{ID: 3, Name: "Dockingstation", Price: 119.50},
}

func main() {
	addr := getenvDefault("FAKE_UPSTREAMS_ADDR", ":8081")
	latencyMs := getenvIntDefault("FAKE_UPSTREAMS_LATENCY_MS", 0)
	failRate := getenvFloatDefault("FAKE_UPSTREAMS_FAIL_RATE", 0)

	srv := &fakeUpstreams{
		latency:  time.Duration(latencyMs) * time.Millisecond,
		failRate: failRate,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.HandleFunc("/order/api", srv.serveRecords(orders))
	mux.HandleFunc("/customer/api", srv.serveRecords(customers))
	mux.HandleFunc("/catalog/api", srv.serveRecords(products))

	log.Printf("fake upstreams listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

func (s *fakeUpstreams) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *fakeUpstreams) serveRecords(records any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt64(&s.totalCalls, 1)
		if s.latency > 0 {
			time.Sleep(s.latency)
		}
		if s.failRate > 0 && rand.Float64() < s.failRate {
			http.Error(w, "injected failure", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(records)
	}
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvFloatDefault(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
