package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"backend/internal/domain"
	"backend/internal/export"
	"backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *Handler) ListGoods(w http.ResponseWriter, r *http.Request) {
	goods, err := h.svc.ListGoods(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": goods, "count": len(goods)})
}

type createGoodsRequest struct {
	Name string `json:"name"`
}

func (h *Handler) CreateGoods(w http.ResponseWriter, r *http.Request) {
	var req createGoodsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	goods, err := h.svc.EnsureGoods(r.Context(), req.Name)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goods)
}

type supplyItemRequest struct {
	GoodsName string  `json:"goodsName"`
	Quantity  float64 `json:"quantity"`
}

type createSupplyInvoiceRequest struct {
	Date          string              `json:"date"`
	InvoiceNumber string              `json:"invoiceNumber"`
	JobWorker     *string             `json:"jobWorker"`
	Narration     string              `json:"narration"`
	Items         []supplyItemRequest `json:"items"`
}

func (h *Handler) ListSupplyInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.ListSupplyInvoices(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": invoices, "count": len(invoices)})
}

func (h *Handler) GetSupplyInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	invoice, err := h.svc.GetSupplyInvoice(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *Handler) CreateSupplyInvoice(w http.ResponseWriter, r *http.Request) {
	var req createSupplyInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date: "+req.Date)
		return
	}

	in := domain.SupplyInvoiceInput{
		Date:          date,
		InvoiceNumber: req.InvoiceNumber,
		JobWorker:     req.JobWorker,
		Narration:     req.Narration,
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, domain.SupplyItemInput{
			GoodsName: item.GoodsName,
			Quantity:  item.Quantity,
		})
	}

	invoice, err := h.svc.CreateSupplyInvoice(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, invoice)
}

type patchSupplyInvoiceRequest struct {
	Reason        string              `json:"reason"`
	Date          *string             `json:"date"`
	InvoiceNumber *string             `json:"invoiceNumber"`
	JobWorker     *string             `json:"jobWorker"`
	Narration     *string             `json:"narration"`
	Items         []supplyItemRequest `json:"items"`
}

func (h *Handler) PatchSupplyInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req patchSupplyInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	up := domain.SupplyInvoiceUpdate{
		InvoiceNumber: req.InvoiceNumber,
		JobWorker:     req.JobWorker,
		Narration:     req.Narration,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date: "+*req.Date)
			return
		}
		up.Date = &date
	}
	if req.Items != nil {
		up.Items = []domain.SupplyItemInput{}
		for _, item := range req.Items {
			up.Items = append(up.Items, domain.SupplyItemInput{
				GoodsName: item.GoodsName,
				Quantity:  item.Quantity,
			})
		}
	}

	invoice, err := h.svc.UpdateSupplyInvoice(r.Context(), id, up, req.Reason)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *Handler) DeleteSupplyInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteSupplyInvoice(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

type receiptItemRequest struct {
	GoodsName        string   `json:"goodsName"`
	FinishedQuantity float64  `json:"finishedQuantity"`
	DamagedQuantity  float64  `json:"damagedQuantity"`
	Attributes       []string `json:"attributes"`
}

type createReceiptInvoiceRequest struct {
	Date                 string               `json:"date"`
	ReceiptInvoiceNumber string               `json:"receiptInvoiceNumber"`
	SupplyInvoiceID      *uuid.UUID           `json:"supplyInvoiceId"`
	SupplyInvoiceNumber  string               `json:"supplyInvoiceNumber"`
	JobWorker            *string              `json:"jobWorker"`
	Narration            string               `json:"narration"`
	Items                []receiptItemRequest `json:"items"`
}

func (h *Handler) ListReceiptInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.ListReceiptInvoices(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": invoices, "count": len(invoices)})
}

func (h *Handler) GetReceiptInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	invoice, err := h.svc.GetReceiptInvoice(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *Handler) CreateReceiptInvoice(w http.ResponseWriter, r *http.Request) {
	var req createReceiptInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date: "+req.Date)
		return
	}

	in := domain.ReceiptInvoiceInput{
		Date:                 date,
		ReceiptInvoiceNumber: req.ReceiptInvoiceNumber,
		SupplyInvoiceNumber:  req.SupplyInvoiceNumber,
		JobWorker:            req.JobWorker,
		Narration:            req.Narration,
	}
	if req.SupplyInvoiceID != nil {
		in.SupplyInvoiceID = *req.SupplyInvoiceID
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, domain.ReceiptItemInput{
			GoodsName:        item.GoodsName,
			FinishedQuantity: item.FinishedQuantity,
			DamagedQuantity:  item.DamagedQuantity,
			Attributes:       item.Attributes,
		})
	}

	invoice, err := h.svc.CreateReceiptInvoice(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, invoice)
}

type patchReceiptInvoiceRequest struct {
	Reason               string               `json:"reason"`
	Date                 *string              `json:"date"`
	ReceiptInvoiceNumber *string              `json:"receiptInvoiceNumber"`
	SupplyInvoiceID      *uuid.UUID           `json:"supplyInvoiceId"`
	SupplyInvoiceNumber  *string              `json:"supplyInvoiceNumber"`
	JobWorker            *string              `json:"jobWorker"`
	Narration            *string              `json:"narration"`
	Items                []receiptItemRequest `json:"items"`
}

func (h *Handler) PatchReceiptInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req patchReceiptInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	up := domain.ReceiptInvoiceUpdate{
		ReceiptInvoiceNumber: req.ReceiptInvoiceNumber,
		SupplyInvoiceID:      req.SupplyInvoiceID,
		SupplyInvoiceNumber:  req.SupplyInvoiceNumber,
		JobWorker:            req.JobWorker,
		Narration:            req.Narration,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date: "+*req.Date)
			return
		}
		up.Date = &date
	}
	if req.Items != nil {
		up.Items = []domain.ReceiptItemInput{}
		for _, item := range req.Items {
			up.Items = append(up.Items, domain.ReceiptItemInput{
				GoodsName:        item.GoodsName,
				FinishedQuantity: item.FinishedQuantity,
				DamagedQuantity:  item.DamagedQuantity,
				Attributes:       item.Attributes,
			})
		}
	}

	invoice, err := h.svc.UpdateReceiptInvoice(r.Context(), id, up, req.Reason)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *Handler) DeleteReceiptInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteReceiptInvoice(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *Handler) ListInvoiceChanges(w http.ResponseWriter, r *http.Request) {
	changes, err := h.svc.ListInvoiceChanges(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": changes, "count": len(changes)})
}

func (h *Handler) DynamicSupplyReport(w http.ResponseWriter, r *http.Request) {
	filter, err := parseReportFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	records, err := h.svc.DynamicSupplyReport(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": records, "count": len(records)})
}

func (h *Handler) AttributeReport(w http.ResponseWriter, r *http.Request) {
	filter, err := parseReportFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.AttributeReport(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": rows, "count": len(rows)})
}

func (h *Handler) GoodsReport(w http.ResponseWriter, r *http.Request) {
	filter, err := parseReportFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.GoodsReport(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": rows, "count": len(rows)})
}

// ExportReport renders one of the three reports as a PDF or XLSX download.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	filter, err := parseReportFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := chi.URLParam(r, "name")
	var table export.Table
	switch name {
	case "dynamic-supply":
		records, err := h.svc.DynamicSupplyReport(r.Context(), filter)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		table = export.DynamicSupplyTable(records)
	case "attributes":
		rows, err := h.svc.AttributeReport(r.Context(), filter)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		table = export.AttributeTable(rows)
	case "goods":
		rows, err := h.svc.GoodsReport(r.Context(), filter)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		table = export.GoodsTable(rows)
	default:
		writeError(w, http.StatusNotFound, "unknown report: "+name)
		return
	}

	now := time.Now()
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	switch format {
	case "", "pdf":
		data, err := export.TablePDF(table, now)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeAttachment(w, data, "application/pdf", name+".pdf")
	case "xlsx":
		data, err := export.TableXLSX(table, now)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeAttachment(w, data,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", name+".xlsx")
	default:
		writeError(w, http.StatusBadRequest, "format must be pdf or xlsx")
	}
}

func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	payload, err := h.svc.ExportAllData(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	replace := false
	if raw := strings.TrimSpace(r.URL.Query().Get("replace")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "replace must be true or false")
			return
		}
		replace = parsed
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body")
		return
	}
	summary, err := h.svc.ImportAllData(r.Context(), body, replace)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) ClearAllData(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearAllData(r.Context()); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
}

func (h *Handler) BackupHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListBackupHistory(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": entries, "count": len(entries)})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func parseReportFilter(r *http.Request) (service.ReportFilter, error) {
	query := r.URL.Query()
	start, err := parseOptionalTime(query.Get("startDate"))
	if err != nil {
		return service.ReportFilter{}, fmt.Errorf("invalid startDate")
	}
	end, err := parseOptionalTime(query.Get("endDate"))
	if err != nil {
		return service.ReportFilter{}, fmt.Errorf("invalid endDate")
	}
	return service.ReportFilter{
		Range:       strings.TrimSpace(query.Get("range")),
		CustomStart: start,
		CustomEnd:   end,
		Search:      query.Get("search"),
	}, nil
}

func parseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id")
	}
	return id, nil
}

func parseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date")
}

func parseOptionalTime(raw string) (*time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	parsed, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeAttachment(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
