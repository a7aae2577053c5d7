package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"medstore/m/domain"
	"medstore/m/internal/store"
)

var (
	ErrNotFound   = errors.New("medicine not found")
	ErrValidation = errors.New("invalid medicine")
)

// expiryLayout is the DD/MM/YYYY form expiry dates are stored in.
const expiryLayout = "02/01/2006"

// Service implements the admin catalog operations. Every operation reloads
// the catalog from the store first; nothing is cached across calls.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Add validates the new record, assigns it the next free ID and persists the
// grown catalog. Negative price or quantity and blank names are rejected.
func (s *Service) Add(name, category string, price float64, quantity int64, expiry string) (domain.Medicine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Medicine{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if price < 0 {
		return domain.Medicine{}, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if quantity < 0 {
		return domain.Medicine{}, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}

	records, err := s.store.Load()
	if err != nil {
		return domain.Medicine{}, err
	}

	med := domain.Medicine{
		ID:       s.store.NextID(records),
		Name:     name,
		Category: strings.TrimSpace(category),
		Price:    price,
		Quantity: quantity,
		Expiry:   strings.TrimSpace(expiry),
	}
	if err := s.store.SaveAll(append(records, med)); err != nil {
		return domain.Medicine{}, err
	}
	return med, nil
}

// List returns the full catalog in storage order.
func (s *Service) List() ([]domain.Medicine, error) {
	return s.store.Load()
}

// FindByID returns the record with the given ID, or ErrNotFound.
func (s *Service) FindByID(id int64) (domain.Medicine, error) {
	records, err := s.store.Load()
	if err != nil {
		return domain.Medicine{}, err
	}
	for _, m := range records {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Medicine{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// SearchByName returns records whose name contains the query, ignoring case,
// in storage order. No matches is an empty result, not an error.
func (s *Service) SearchByName(query string) ([]domain.Medicine, error) {
	records, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	var matches []domain.Medicine
	for _, m := range records {
		if strings.Contains(strings.ToLower(m.Name), needle) {
			matches = append(matches, m)
		}
	}
	return matches, nil
}

// Patch carries the fields of an update. A nil field keeps the current
// value; a set field replaces it, so zero is a legitimate new value.
type Patch struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int64
	Expiry   *string
}

// Update applies the patch to the record with the given ID, keeping its
// position, and persists the catalog.
func (s *Service) Update(id int64, patch Patch) (domain.Medicine, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.Medicine{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if patch.Price != nil && *patch.Price < 0 {
		return domain.Medicine{}, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return domain.Medicine{}, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}

	records, err := s.store.Load()
	if err != nil {
		return domain.Medicine{}, err
	}
	for i := range records {
		if records[i].ID != id {
			continue
		}
		if patch.Name != nil {
			records[i].Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Category != nil {
			records[i].Category = strings.TrimSpace(*patch.Category)
		}
		if patch.Price != nil {
			records[i].Price = *patch.Price
		}
		if patch.Quantity != nil {
			records[i].Quantity = *patch.Quantity
		}
		if patch.Expiry != nil {
			records[i].Expiry = strings.TrimSpace(*patch.Expiry)
		}
		if err := s.store.SaveAll(records); err != nil {
			return domain.Medicine{}, err
		}
		return records[i], nil
	}
	return domain.Medicine{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Delete removes the record with the given ID, compacting the catalog while
// preserving the relative order of the remaining records.
func (s *Service) Delete(id int64) error {
	records, err := s.store.Load()
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID != id {
			continue
		}
		return s.store.SaveAll(append(records[:i], records[i+1:]...))
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// LowStock returns records whose stock is at or below the threshold.
func (s *Service) LowStock(threshold int64) ([]domain.Medicine, error) {
	records, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	var low []domain.Medicine
	for _, m := range records {
		if m.Quantity <= threshold {
			low = append(low, m)
		}
	}
	return low, nil
}

// ExpiringSoon returns records whose expiry date falls within the window
// from now, already-expired records included. Records with a blank or
// unparseable expiry are skipped.
func (s *Service) ExpiringSoon(within time.Duration) ([]domain.Medicine, error) {
	records, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().Add(within)
	var expiring []domain.Medicine
	for _, m := range records {
		exp, err := time.Parse(expiryLayout, m.Expiry)
		if err != nil {
			continue
		}
		if !exp.After(cutoff) {
			expiring = append(expiring, m)
		}
	}
	return expiring, nil
}

// TotalStockValue is the sum of price times quantity over the catalog.
func (s *Service) TotalStockValue() (float64, error) {
	records, err := s.store.Load()
	if err != nil {
		return 0, err
	}
	var total float64
	for _, m := range records {
		total += m.Price * float64(m.Quantity)
	}
	return total, nil
}
