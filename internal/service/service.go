// Package service holds the business rules: input validation, goods
// catalogue upkeep, and the change-audit flow around invoice updates.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"backend/internal/diff"
	"backend/internal/domain"
)

// ErrInvalid marks a rejected input. Handlers map it to a 400.
var ErrInvalid = errors.New("invalid input")

type Service struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

func New(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

func (s *Service) ListGoods(ctx context.Context) ([]domain.Goods, error) {
	return s.store.ListGoods(ctx)
}

// EnsureGoods returns the catalogue entry for name, creating it on first
// sight. Matching is exact and case sensitive.
func (s *Service) EnsureGoods(ctx context.Context, name string) (domain.Goods, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Goods{}, fmt.Errorf("%w: goods name is required", ErrInvalid)
	}
	goods, err := s.store.FindGoodsByName(ctx, name)
	if err == nil {
		return goods, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Goods{}, err
	}
	return s.store.InsertGoods(ctx, name)
}

func (s *Service) ListSupplyInvoices(ctx context.Context) ([]domain.SupplyInvoice, error) {
	return s.store.ListSupplyInvoices(ctx)
}

func (s *Service) GetSupplyInvoice(ctx context.Context, id uuid.UUID) (domain.SupplyInvoice, error) {
	rec, err := s.store.GetSupplyInvoiceRecord(ctx, id)
	if err != nil {
		return domain.SupplyInvoice{}, err
	}
	return domain.SupplyInvoiceFromRecord(rec), nil
}

func (s *Service) CreateSupplyInvoice(ctx context.Context, in domain.SupplyInvoiceInput) (domain.SupplyInvoice, error) {
	if strings.TrimSpace(in.InvoiceNumber) == "" {
		return domain.SupplyInvoice{}, fmt.Errorf("%w: invoice number is required", ErrInvalid)
	}
	items := validSupplyItems(in.Items)
	if len(items) == 0 {
		return domain.SupplyInvoice{}, fmt.Errorf("%w: at least one item with a positive quantity is required", ErrInvalid)
	}
	in.Items = items

	if err := s.ensureItemGoods(ctx, supplyGoodsNames(items)); err != nil {
		return domain.SupplyInvoice{}, err
	}
	return s.store.CreateSupplyInvoice(ctx, in)
}

// UpdateSupplyInvoice applies a partial update and records the field-level
// differences as an audit entry. Provided fields face the same validations
// as create. The audit insert is best effort: a failure there is logged and
// the updated invoice is still returned.
func (s *Service) UpdateSupplyInvoice(ctx context.Context, id uuid.UUID, up domain.SupplyInvoiceUpdate, reason string) (domain.SupplyInvoice, error) {
	if strings.TrimSpace(reason) == "" {
		return domain.SupplyInvoice{}, fmt.Errorf("%w: a change reason is required", ErrInvalid)
	}
	if up.InvoiceNumber != nil && strings.TrimSpace(*up.InvoiceNumber) == "" {
		return domain.SupplyInvoice{}, fmt.Errorf("%w: invoice number is required", ErrInvalid)
	}
	if up.Items != nil {
		items := validSupplyItems(up.Items)
		if len(items) == 0 {
			return domain.SupplyInvoice{}, fmt.Errorf("%w: at least one item with a positive quantity is required", ErrInvalid)
		}
		up.Items = items
	}

	rec, err := s.store.GetSupplyInvoiceRecord(ctx, id)
	if err != nil {
		return domain.SupplyInvoice{}, err
	}
	changes := diff.SupplyChanges(rec, up)

	if up.Items != nil {
		if err := s.ensureItemGoods(ctx, supplyGoodsNames(up.Items)); err != nil {
			return domain.SupplyInvoice{}, err
		}
	}

	updated, err := s.store.UpdateSupplyInvoice(ctx, id, up)
	if err != nil {
		return domain.SupplyInvoice{}, err
	}

	s.recordChanges(ctx, id, updated.InvoiceNumber, reason, changes)
	return updated, nil
}

func (s *Service) DeleteSupplyInvoice(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteSupplyInvoice(ctx, id)
}

func (s *Service) ListReceiptInvoices(ctx context.Context) ([]domain.ReceiptInvoice, error) {
	return s.store.ListReceiptInvoices(ctx)
}

func (s *Service) GetReceiptInvoice(ctx context.Context, id uuid.UUID) (domain.ReceiptInvoice, error) {
	rec, err := s.store.GetReceiptInvoiceRecord(ctx, id)
	if err != nil {
		return domain.ReceiptInvoice{}, err
	}
	return domain.ReceiptInvoiceFromRecord(rec), nil
}

func (s *Service) CreateReceiptInvoice(ctx context.Context, in domain.ReceiptInvoiceInput) (domain.ReceiptInvoice, error) {
	if strings.TrimSpace(in.ReceiptInvoiceNumber) == "" {
		return domain.ReceiptInvoice{}, fmt.Errorf("%w: receipt invoice number is required", ErrInvalid)
	}
	items := validReceiptItems(in.Items)
	if len(items) == 0 {
		return domain.ReceiptInvoice{}, fmt.Errorf("%w: at least one item with a finished or damaged quantity is required", ErrInvalid)
	}
	in.Items = items

	if err := s.resolveSupplyRef(ctx, &in); err != nil {
		return domain.ReceiptInvoice{}, err
	}
	if err := s.ensureItemGoods(ctx, receiptGoodsNames(items)); err != nil {
		return domain.ReceiptInvoice{}, err
	}
	return s.store.CreateReceiptInvoice(ctx, in)
}

func (s *Service) UpdateReceiptInvoice(ctx context.Context, id uuid.UUID, up domain.ReceiptInvoiceUpdate, reason string) (domain.ReceiptInvoice, error) {
	if strings.TrimSpace(reason) == "" {
		return domain.ReceiptInvoice{}, fmt.Errorf("%w: a change reason is required", ErrInvalid)
	}
	if up.ReceiptInvoiceNumber != nil && strings.TrimSpace(*up.ReceiptInvoiceNumber) == "" {
		return domain.ReceiptInvoice{}, fmt.Errorf("%w: receipt invoice number is required", ErrInvalid)
	}
	if up.Items != nil {
		items := validReceiptItems(up.Items)
		if len(items) == 0 {
			return domain.ReceiptInvoice{}, fmt.Errorf("%w: at least one item with a finished or damaged quantity is required", ErrInvalid)
		}
		up.Items = items
	}
	if err := s.resolveSupplyRefUpdate(ctx, &up); err != nil {
		return domain.ReceiptInvoice{}, err
	}

	rec, err := s.store.GetReceiptInvoiceRecord(ctx, id)
	if err != nil {
		return domain.ReceiptInvoice{}, err
	}
	changes := diff.ReceiptChanges(rec, up)

	if up.Items != nil {
		if err := s.ensureItemGoods(ctx, receiptGoodsNames(up.Items)); err != nil {
			return domain.ReceiptInvoice{}, err
		}
	}

	updated, err := s.store.UpdateReceiptInvoice(ctx, id, up)
	if err != nil {
		return domain.ReceiptInvoice{}, err
	}

	s.recordChanges(ctx, id, updated.ReceiptInvoiceNumber, reason, changes)
	return updated, nil
}

func (s *Service) DeleteReceiptInvoice(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteReceiptInvoice(ctx, id)
}

func (s *Service) ListInvoiceChanges(ctx context.Context) ([]domain.InvoiceChange, error) {
	return s.store.ListInvoiceChanges(ctx)
}

// recordChanges writes the audit entry for an already committed update.
// Exactly one entry per edit operation, even when the diff came out empty:
// the reason is part of the trail either way.
func (s *Service) recordChanges(ctx context.Context, invoiceID uuid.UUID, invoiceNumber, reason string, changes []domain.ChangeEntry) {
	details, err := json.Marshal(changes)
	if err != nil {
		s.log.Error().Err(err).Str("invoice_id", invoiceID.String()).Msg("encode change details")
		return
	}
	_, err = s.store.InsertInvoiceChange(ctx, domain.InvoiceChange{
		InvoiceID:     invoiceID,
		InvoiceNumber: invoiceNumber,
		ChangeDate:    s.now(),
		Reason:        reason,
		ChangeDetails: string(details),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("invoice_id", invoiceID.String()).Msg("record invoice change")
	}
}

// resolveSupplyRef fills in whichever half of the supply reference the
// caller omitted, and verifies the referenced supply invoice exists.
func (s *Service) resolveSupplyRef(ctx context.Context, in *domain.ReceiptInvoiceInput) error {
	if in.SupplyInvoiceID != uuid.Nil {
		rec, err := s.store.GetSupplyInvoiceRecord(ctx, in.SupplyInvoiceID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: supply invoice %s does not exist", ErrInvalid, in.SupplyInvoiceID)
			}
			return err
		}
		if in.SupplyInvoiceNumber == "" {
			in.SupplyInvoiceNumber = rec.InvoiceNumber
		}
		return nil
	}

	if strings.TrimSpace(in.SupplyInvoiceNumber) == "" {
		return fmt.Errorf("%w: a supply invoice reference is required", ErrInvalid)
	}
	supplies, err := s.store.ListSupplyInvoices(ctx)
	if err != nil {
		return err
	}
	for _, supply := range supplies {
		if supply.InvoiceNumber == in.SupplyInvoiceNumber {
			in.SupplyInvoiceID = supply.ID
			return nil
		}
	}
	return fmt.Errorf("%w: supply invoice %q does not exist", ErrInvalid, in.SupplyInvoiceNumber)
}

// resolveSupplyRefUpdate verifies a changed supply reference against the
// store before the write, mirroring the create path. Supplying an id fills
// in the denormalized number when the caller left it out.
func (s *Service) resolveSupplyRefUpdate(ctx context.Context, up *domain.ReceiptInvoiceUpdate) error {
	if up.SupplyInvoiceID != nil {
		rec, err := s.store.GetSupplyInvoiceRecord(ctx, *up.SupplyInvoiceID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: supply invoice %s does not exist", ErrInvalid, *up.SupplyInvoiceID)
			}
			return err
		}
		if up.SupplyInvoiceNumber == nil {
			up.SupplyInvoiceNumber = &rec.InvoiceNumber
		}
		return nil
	}

	if up.SupplyInvoiceNumber == nil {
		return nil
	}
	if strings.TrimSpace(*up.SupplyInvoiceNumber) == "" {
		return fmt.Errorf("%w: a supply invoice reference is required", ErrInvalid)
	}
	supplies, err := s.store.ListSupplyInvoices(ctx)
	if err != nil {
		return err
	}
	for _, supply := range supplies {
		if supply.InvoiceNumber == *up.SupplyInvoiceNumber {
			id := supply.ID
			up.SupplyInvoiceID = &id
			return nil
		}
	}
	return fmt.Errorf("%w: supply invoice %q does not exist", ErrInvalid, *up.SupplyInvoiceNumber)
}

func (s *Service) ensureItemGoods(ctx context.Context, names []string) error {
	for _, name := range names {
		if _, err := s.EnsureGoods(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func validSupplyItems(items []domain.SupplyItemInput) []domain.SupplyItemInput {
	valid := []domain.SupplyItemInput{}
	for _, item := range items {
		if strings.TrimSpace(item.GoodsName) == "" || item.Quantity <= 0 {
			continue
		}
		valid = append(valid, item)
	}
	return valid
}

func validReceiptItems(items []domain.ReceiptItemInput) []domain.ReceiptItemInput {
	valid := []domain.ReceiptItemInput{}
	for _, item := range items {
		if strings.TrimSpace(item.GoodsName) == "" {
			continue
		}
		if item.FinishedQuantity <= 0 && item.DamagedQuantity <= 0 {
			continue
		}
		valid = append(valid, item)
	}
	return valid
}

func supplyGoodsNames(items []domain.SupplyItemInput) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.GoodsName)
	}
	return names
}

func receiptGoodsNames(items []domain.ReceiptItemInput) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.GoodsName)
	}
	return names
}
