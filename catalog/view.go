package catalog

import (
	"context"

	"stockdesk/model"
)

// View is the filtered, sorted projection of a Store used by one consumer.
// It is not safe for concurrent use; each request builds its own.
type View struct {
	store    *Store
	filter   Filter
	sort     Sort
	filtered []model.Product
}

func NewView(store *Store) *View {
	v := &View{store: store, sort: DefaultSort}
	v.rebuild()
	return v
}

// Refresh reloads the store and reapplies the current filter and sort.
// On failure the view keeps its previous contents.
func (v *View) Refresh(ctx context.Context) error {
	if err := v.store.Refresh(ctx); err != nil {
		return err
	}
	v.rebuild()
	return nil
}

// Filter replaces the filter and re-sorts with the current sort.
func (v *View) Filter(f Filter) *View {
	v.filter = f
	v.rebuild()
	return v
}

// Sort re-sorts the current selection.
func (v *View) Sort(s Sort) *View {
	v.sort = s
	v.sort.Apply(v.filtered)
	return v
}

// Products returns the current selection.
func (v *View) Products() []model.Product {
	return v.filtered
}

// All returns the whole working set behind the view, sorted the same way.
func (v *View) All() []model.Product {
	all := v.store.All()
	v.sort.Apply(all)
	return all
}

func (v *View) Len() int {
	return len(v.filtered)
}

func (v *View) rebuild() {
	v.filtered = Select(v.store.All(), v.filter, v.sort)
}
