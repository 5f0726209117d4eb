// Package catalog owns the product working set and the filtered views built on it.
package catalog

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"stockdesk/database"
	"stockdesk/model"
)

// Source supplies the full product list, normally the inventory backend.
type Source interface {
	Products(ctx context.Context) ([]model.Product, error)
}

// Store holds the last successfully fetched working set. When db is non-nil
// every successful refresh is also written as a snapshot so the working set
// survives restarts.
type Store struct {
	src Source
	db  *sqlx.DB

	mu          sync.RWMutex
	products    []model.Product
	refreshedAt time.Time
	// persisted is true while the snapshot table matches products.
	persisted bool
}

func NewStore(src Source, db *sqlx.DB) *Store {
	return &Store{src: src, db: db}
}

// Refresh replaces the working set with a fresh fetch. On failure the
// current working set is left untouched.
func (s *Store) Refresh(ctx context.Context) error {
	products, err := s.src.Products(ctx)
	if err != nil {
		log.Printf("WARN: product refresh failed, keeping %d cached products: %v", s.Len(), err)
		return fmt.Errorf("refresh products: %w", err)
	}

	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.refreshedAt = now
	s.persisted = false

	if s.db != nil {
		if err := database.SaveSnapshot(s.db, products, now); err != nil {
			log.Printf("WARN: failed to persist product snapshot: %v", err)
		} else {
			s.persisted = true
		}
	}
	log.Printf("Product working set refreshed: %d products.", len(products))
	return nil
}

// Load restores the last persisted snapshot, if any.
func (s *Store) Load() error {
	if s.db == nil {
		return nil
	}
	products, takenAt, err := database.LoadSnapshot(s.db)
	if err != nil {
		return fmt.Errorf("load product snapshot: %w", err)
	}
	if products == nil {
		return nil
	}
	s.mu.Lock()
	s.products = products
	s.refreshedAt = takenAt
	s.persisted = true
	s.mu.Unlock()
	log.Printf("Restored %d products from snapshot taken %s.", len(products), takenAt.Format(time.RFC3339))
	return nil
}

// All returns a copy of the working set.
func (s *Store) All() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// RefreshedAt reports when the working set was last replaced.
func (s *Store) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

// Find looks a product up by id.
func (s *Store) Find(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID.String() == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// Categories lists the distinct categories of the working set in first-seen order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, p := range s.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// CategoryCounts returns how many products each category holds. The
// persisted snapshot answers when it is current; otherwise the working set
// is counted directly.
func (s *Store) CategoryCounts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db != nil && s.persisted {
		counts, err := database.CountSnapshotByCategory(s.db)
		if err == nil {
			return counts
		}
		log.Printf("WARN: counting snapshot categories: %v", err)
	}
	counts := make(map[string]int)
	for _, p := range s.products {
		counts[p.Category]++
	}
	return counts
}
