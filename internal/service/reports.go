package service

import (
	"context"
	"fmt"
	"time"

	"backend/internal/domain"
	"backend/internal/report"
)

// ReportFilter carries the common report controls: a named date range
// (with optional custom bounds) and a free-text search post-filter.
type ReportFilter struct {
	Range       string
	CustomStart *time.Time
	CustomEnd   *time.Time
	Search      string
}

func (f ReportFilter) window(now time.Time) (report.Window, error) {
	name := f.Range
	if name == "" {
		name = report.RangeToday
	}
	win, err := report.ResolveWindow(name, f.CustomStart, f.CustomEnd, now)
	if err != nil {
		return report.Window{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return win, nil
}

func (s *Service) DynamicSupplyReport(ctx context.Context, f ReportFilter) ([]domain.DynamicSupplyRecord, error) {
	win, err := f.window(s.now())
	if err != nil {
		return nil, err
	}
	supplies, err := s.store.ListSupplyInvoices(ctx)
	if err != nil {
		return nil, err
	}
	receipts, err := s.store.ListReceiptInvoices(ctx)
	if err != nil {
		return nil, err
	}
	records := report.Reconcile(supplies, receipts, win)
	return report.SearchDynamicRecords(records, f.Search), nil
}

func (s *Service) AttributeReport(ctx context.Context, f ReportFilter) ([]domain.AttributeRow, error) {
	win, err := f.window(s.now())
	if err != nil {
		return nil, err
	}
	receipts, err := s.store.ListReceiptInvoices(ctx)
	if err != nil {
		return nil, err
	}
	rows := report.AggregateAttributes(receipts, win)
	return report.SearchAttributeRows(rows, f.Search), nil
}

func (s *Service) GoodsReport(ctx context.Context, f ReportFilter) ([]domain.GoodsRow, error) {
	win, err := f.window(s.now())
	if err != nil {
		return nil, err
	}
	goods, err := s.store.ListGoods(ctx)
	if err != nil {
		return nil, err
	}
	supplies, err := s.store.ListSupplyInvoices(ctx)
	if err != nil {
		return nil, err
	}
	receipts, err := s.store.ListReceiptInvoices(ctx)
	if err != nil {
		return nil, err
	}
	rows := report.AggregateGoods(goods, supplies, receipts, win)
	return report.SearchGoodsRows(rows, f.Search), nil
}
