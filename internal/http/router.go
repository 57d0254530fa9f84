package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func NewRouter(handler *Handler, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(Timeout)
	r.Use(CORS)

	r.Get("/healthz", handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/goods", handler.ListGoods)
		r.Post("/goods", handler.CreateGoods)

		r.Get("/supply-invoices", handler.ListSupplyInvoices)
		r.Post("/supply-invoices", handler.CreateSupplyInvoice)
		r.Get("/supply-invoices/{id}", handler.GetSupplyInvoice)
		r.Patch("/supply-invoices/{id}", handler.PatchSupplyInvoice)
		r.Delete("/supply-invoices/{id}", handler.DeleteSupplyInvoice)

		r.Get("/receipt-invoices", handler.ListReceiptInvoices)
		r.Post("/receipt-invoices", handler.CreateReceiptInvoice)
		r.Get("/receipt-invoices/{id}", handler.GetReceiptInvoice)
		r.Patch("/receipt-invoices/{id}", handler.PatchReceiptInvoice)
		r.Delete("/receipt-invoices/{id}", handler.DeleteReceiptInvoice)

		r.Get("/invoice-changes", handler.ListInvoiceChanges)

		r.Get("/reports/dynamic-supply", handler.DynamicSupplyReport)
		r.Get("/reports/attributes", handler.AttributeReport)
		r.Get("/reports/goods", handler.GoodsReport)
		r.Get("/reports/{name}/export", handler.ExportReport)

		r.Get("/backup/export", handler.ExportBackup)
		r.Post("/backup/import", handler.ImportBackup)
		r.Post("/backup/clear", handler.ClearAllData)
		r.Get("/backup/history", handler.BackupHistory)
	})

	return r
}
