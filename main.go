package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"commerce-views/internal/aggregation/application"
	aggregation "commerce-views/internal/aggregation/domain"
	"commerce-views/internal/aggregation/infrastructure/memory"
	"commerce-views/internal/aggregation/infrastructure/remote"
	viewshttp "commerce-views/internal/aggregation/interfaces/http"
	"commerce-views/internal/observability/metrics"
)

func main() {
	cfg, err := application.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := log.New(os.Stdout, "", log.LstdFlags)
	metrics.Init()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	var (
		invoicingSource application.RecordSource
		shipmentSource  application.RecordSource
		invoicingStore  *memory.OrderStore
		shipmentStore   *memory.OrderStore
	)
	switch cfg.Source {
	case application.SourceFixture:
		invoicingSeed := memory.DefaultInvoicingSeed()
		shipmentSeed := memory.DefaultShipmentSeed()
		if cfg.SeedFile != "" {
			invoicingSeed, shipmentSeed, err = memory.LoadSeedFile(cfg.SeedFile)
			if err != nil {
				logger.Fatalf("seed file error: %v", err)
			}
		}
		invoicingStore = memory.NewOrderStore(invoicingSeed)
		shipmentStore = memory.NewOrderStore(shipmentSeed)
		invoicingSource, err = memory.NewFixtureSource(invoicingStore)
		if err != nil {
			logger.Fatalf("fixture source error: %v", err)
		}
		shipmentSource, err = memory.NewFixtureSource(shipmentStore)
		if err != nil {
			logger.Fatalf("fixture source error: %v", err)
		}
	default:
		source, err := remote.NewSource(cfg.Upstreams.Order, cfg.Upstreams.Customer, cfg.Upstreams.Catalog, cfg.Timeout())
		if err != nil {
			logger.Fatalf("remote source error: %v", err)
		}
		invoicingSource = source
		shipmentSource = source
	}

	invoicingService, err := application.NewViewService(invoicingSource, aggregation.ModeMonetary, logger)
	if err != nil {
		logger.Fatalf("invoicing service error: %v", err)
	}
	shipmentService, err := application.NewViewService(shipmentSource, aggregation.ModeQuantity, logger)
	if err != nil {
		logger.Fatalf("shipment service error: %v", err)
	}

	invoicingHandler, err := viewshttp.NewResourceHandler("invoicing", invoicingService, invoicingStore, hostname, logger)
	if err != nil {
		logger.Fatalf("invoicing handler error: %v", err)
	}
	shipmentHandler, err := viewshttp.NewResourceHandler("shipment", shipmentService, shipmentStore, hostname, logger)
	if err != nil {
		logger.Fatalf("shipment handler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/invoicing", invoicingHandler)
	mux.Handle("/invoicing/", invoicingHandler)
	mux.Handle("/shipment", shipmentHandler)
	mux.Handle("/shipment/", shipmentHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: observeMiddleware(mux, logger)}
	logger.Printf("http listening on %s (source=%s)", cfg.HTTPAddr, cfg.Source)
	logger.Fatal(server.ListenAndServe())
}

func observeMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		elapsed := time.Since(start)
		metrics.ObserveRequest(r.Method, r.URL.Path, resp.status, elapsed)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, elapsed)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
