package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"commerce-views/internal/aggregation/application"
	aggregation "commerce-views/internal/aggregation/domain"
	"commerce-views/internal/aggregation/infrastructure/memory"
)

// ResourceHandler serves one resource group (invoicing or shipment): the
// JSON aggregation, the HTML table, the exports and, when backed by a
// fixture store, the mutation and by-id routes.
type ResourceHandler struct {
	resource string
	display  string
	service  *application.ViewService
	store    *memory.OrderStore
	lookup   bool
	hostname string
	logger   *log.Logger
}

// NewResourceHandler constructs a handler. A nil store disables the write
// path and the by-id lookup (live variant); the by-id lookup is additionally
// limited to the quantity resource, matching the demo services.
func NewResourceHandler(resource string, service *application.ViewService, store *memory.OrderStore, hostname string, logger *log.Logger) (*ResourceHandler, error) {
	if resource == "" {
		return nil, errors.New("resource handler: empty resource")
	}
	if service == nil {
		return nil, errors.New("resource handler: nil service")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ResourceHandler{
		resource: resource,
		display:  strings.ToUpper(resource[:1]) + resource[1:],
		service:  service,
		store:    store,
		lookup:   store != nil && service.Mode() == aggregation.ModeQuantity,
		hostname: hostname,
		logger:   logger,
	}, nil
}

// ServeHTTP dispatches routes under /<resource>.
func (h *ResourceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/"+h.resource)
	switch {
	case rest == "" || rest == "/":
		h.requireGet(w, r, h.handleHTML)
	case rest == "/api":
		h.requireGet(w, r, h.handleAPI)
	case rest == "/api/new":
		if h.store == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleCreate(w, r)
	case strings.HasPrefix(rest, "/api/"):
		if !h.lookup {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.requireGet(w, r, func(w http.ResponseWriter, r *http.Request) {
			h.handleByID(w, strings.TrimPrefix(rest, "/api/"))
		})
	case rest == "/export.xlsx":
		h.requireGet(w, r, h.handleExportXLSX)
	case rest == "/export.pdf":
		h.requireGet(w, r, h.handleExportPDF)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ResourceHandler) requireGet(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	next(w, r)
}

type apiEnvelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type invoiceEntry struct {
	OrderID      int64       `json:"order_id"`
	ProductName  string      `json:"product_name"`
	Quantity     int64       `json:"quantity"`
	ProductPrice json.Number `json:"product_price"`
	Total        json.Number `json:"total"`
}

type invoiceRow struct {
	CustomerID   int64          `json:"customer_id"`
	CustomerName string         `json:"customer_name"`
	TotalAmount  json.Number    `json:"total_amount"`
	Entries      []invoiceEntry `json:"entries"`
}

type shipmentEntry struct {
	OrderID     int64  `json:"order_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

type shipmentRow struct {
	CustomerID    int64           `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	TotalQuantity int64           `json:"total_quantity"`
	Entries       []shipmentEntry `json:"entries"`
}

func (h *ResourceHandler) handleAPI(w http.ResponseWriter, r *http.Request) {
	result := h.service.Build(r.Context())
	h.respondJSON(w, http.StatusOK, apiEnvelope{Status: "success", Data: h.rows(result)})
}

// rows converts summaries into the transport rows of the resource's mode,
// preserving first-seen-customer order.
func (h *ResourceHandler) rows(result *aggregation.Result) any {
	summaries := result.Summaries()
	if h.service.Mode() == aggregation.ModeQuantity {
		rows := make([]shipmentRow, 0, len(summaries))
		for _, s := range summaries {
			entries := make([]shipmentEntry, 0, len(s.Entries))
			for _, e := range s.Entries {
				entries = append(entries, shipmentEntry{OrderID: e.OrderID, ProductName: e.ProductName, Quantity: e.Quantity})
			}
			rows = append(rows, shipmentRow{
				CustomerID:    s.CustomerID,
				CustomerName:  s.CustomerName,
				TotalQuantity: s.Total.IntPart(),
				Entries:       entries,
			})
		}
		return rows
	}

	rows := make([]invoiceRow, 0, len(summaries))
	for _, s := range summaries {
		entries := make([]invoiceEntry, 0, len(s.Entries))
		for _, e := range s.Entries {
			entries = append(entries, invoiceEntry{
				OrderID:      e.OrderID,
				ProductName:  e.ProductName,
				Quantity:     e.Quantity,
				ProductPrice: moneyNumber(e.UnitPrice),
				Total:        moneyNumber(e.LineTotal),
			})
		}
		rows = append(rows, invoiceRow{
			CustomerID:   s.CustomerID,
			CustomerName: s.CustomerName,
			TotalAmount:  moneyNumber(s.Total),
			Entries:      entries,
		})
	}
	return rows
}

type createRequest struct {
	CustomerID   *int64           `json:"customer_id"`
	CustomerName *string          `json:"customer_name"`
	ProductName  string           `json:"product_name"`
	Amount       *decimal.Decimal `json:"amount"`
	Quantity     *int64           `json:"quantity"`
}

func (h *ResourceHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondBadRequest(w)
		return
	}
	if req.CustomerID == nil || req.CustomerName == nil {
		h.respondBadRequest(w)
		return
	}

	rec := aggregation.FixtureOrder{
		CustomerID:   *req.CustomerID,
		CustomerName: *req.CustomerName,
		ProductName:  req.ProductName,
	}
	if h.service.Mode() == aggregation.ModeQuantity {
		if req.Quantity == nil {
			h.respondBadRequest(w)
			return
		}
		rec.Quantity = *req.Quantity
	} else {
		if req.Amount == nil {
			h.respondBadRequest(w)
			return
		}
		rec.Quantity = 1
		rec.UnitPrice = *req.Amount
	}

	created, err := h.store.Append(rec)
	if err != nil {
		h.respondBadRequest(w)
		return
	}
	h.respondJSON(w, http.StatusCreated, h.record(created))
}

func (h *ResourceHandler) handleByID(w http.ResponseWriter, raw string) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.respondJSON(w, http.StatusNotFound, map[string]string{"error": h.display + " not found"})
		return
	}
	rec, ok := h.store.Get(id)
	if !ok {
		h.respondJSON(w, http.StatusNotFound, map[string]string{"error": h.display + " not found"})
		return
	}
	h.respondJSON(w, http.StatusOK, h.record(rec))
}

type monetaryRecord struct {
	ID           int64       `json:"id"`
	CustomerID   int64       `json:"customer_id"`
	CustomerName string      `json:"customer_name"`
	ProductName  string      `json:"product_name,omitempty"`
	Amount       json.Number `json:"amount"`
}

type quantityRecord struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	ProductName  string `json:"product_name,omitempty"`
	Quantity     int64  `json:"quantity"`
}

func (h *ResourceHandler) record(rec aggregation.FixtureOrder) any {
	if h.service.Mode() == aggregation.ModeQuantity {
		return quantityRecord{
			ID:           rec.ID,
			CustomerID:   rec.CustomerID,
			CustomerName: rec.CustomerName,
			ProductName:  rec.ProductName,
			Quantity:     rec.Quantity,
		}
	}
	return monetaryRecord{
		ID:           rec.ID,
		CustomerID:   rec.CustomerID,
		CustomerName: rec.CustomerName,
		ProductName:  rec.ProductName,
		Amount:       moneyNumber(rec.Amount()),
	}
}

func (h *ResourceHandler) respondJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.respondFault(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (h *ResourceHandler) respondBadRequest(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte(`{"error":"Bad Request"}`))
}

// respondFault is the catch-all boundary for unexpected faults; data-shape
// problems never reach it.
func (h *ResourceHandler) respondFault(w http.ResponseWriter, err error) {
	h.logger.Printf("%s request fault: %v", h.resource, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintf(w, `{"status":"error","message":%q}`, err.Error())
}

// moneyNumber renders a monetary value at the documented two decimal places.
func moneyNumber(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
