package service

import (
	"context"
	"fmt"
	"iter"

	"github.com/shopinger/shopinger/internal/domain"
)

// LineStore is the persistence strategy behind a durable Builder. A customer
// cart writes through to the mart table; a teller ticket uses no store at all.
// Implementations receive the absolute quantity, not a delta.
type LineStore interface {
	UpsertLine(ctx context.Context, item domain.LineItem) error
	DeleteLine(ctx context.Context, productID string) error
}

// builderLine pairs a line item with the advisory stock ceiling captured from
// the snapshot in effect when the line was last touched. The ceiling can be
// stale; commit-time validation is the authority.
type builderLine struct {
	item   domain.LineItem
	maxQty int32
}

// Builder accumulates candidate purchase lines before commitment. It holds at
// most one line per product and keeps lines in insertion order. All stock
// checks here are optimistic, user-facing guards; they are re-run against the
// live ledger at commit time.
//
// With a nil store the Builder is a pure in-memory sale ticket. With a store,
// every mutation writes through first and leaves the in-memory state
// untouched if the write fails, so memory never runs ahead of storage.
type Builder struct {
	order []string
	lines map[string]*builderLine
	store LineStore
}

// NewBuilder creates an ephemeral builder (teller sale ticket).
func NewBuilder() *Builder {
	return &Builder{lines: make(map[string]*builderLine)}
}

// NewDurableBuilder creates a builder that writes through to store.
func NewDurableBuilder(store LineStore) *Builder {
	return &Builder{lines: make(map[string]*builderLine), store: store}
}

// Load seeds the builder with previously persisted lines, preserving their
// order and snapshotted prices. Ceilings are unknown until a fresh snapshot
// is seen, which is fine: loaded carts are mutated via Add/SetQuantity with
// a snapshot in hand.
func (b *Builder) Load(lines []domain.LineItem) {
	for _, item := range lines {
		if _, ok := b.lines[item.ProductID]; ok {
			continue
		}
		b.order = append(b.order, item.ProductID)
		b.lines[item.ProductID] = &builderLine{item: item, maxQty: -1}
	}
}

// Add merges qty of the product into the builder. For an existing line the
// quantities sum; for a new line the unit price is snapshotted from the
// product. Rejections (out of stock, would exceed the advisory ceiling) leave
// the builder unchanged.
func (b *Builder) Add(ctx context.Context, product domain.InventorySnapshot, qty int32) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}

	if line, ok := b.lines[product.ProductID]; ok {
		line.maxQty = product.QuantityOnHand
		return b.setQuantity(ctx, line, line.item.RequestedQty+qty)
	}

	if product.QuantityOnHand <= 0 {
		return domain.ErrOutOfStock
	}
	if qty > product.QuantityOnHand {
		return domain.ErrMaxQuantityReached
	}

	item := domain.LineItem{
		ProductID:      product.ProductID,
		ProductName:    product.Name,
		UnitPriceCents: product.UnitPriceCents,
		RequestedQty:   qty,
	}
	if b.store != nil {
		if err := b.store.UpsertLine(ctx, item); err != nil {
			return fmt.Errorf("persist cart line: %w", err)
		}
	}
	b.order = append(b.order, product.ProductID)
	b.lines[product.ProductID] = &builderLine{item: item, maxQty: product.QuantityOnHand}
	return nil
}

// SetQuantity sets the absolute quantity for the product, refreshing the
// advisory ceiling from the snapshot. Zero or less removes the line.
func (b *Builder) SetQuantity(ctx context.Context, product domain.InventorySnapshot, qty int32) error {
	line, ok := b.lines[product.ProductID]
	if !ok {
		if qty <= 0 {
			return nil
		}
		return b.Add(ctx, product, qty)
	}
	line.maxQty = product.QuantityOnHand
	if qty <= 0 {
		return b.Remove(ctx, product.ProductID)
	}
	return b.setQuantity(ctx, line, qty)
}

// Increment raises the line's quantity by one, bounded by the advisory
// ceiling. Absent products are a no-op.
func (b *Builder) Increment(ctx context.Context, productID string) error {
	line, ok := b.lines[productID]
	if !ok {
		return nil
	}
	return b.setQuantity(ctx, line, line.item.RequestedQty+1)
}

// Decrement lowers the line's quantity by one. A line at quantity one is
// removed entirely; a quantity of zero is never observable. Absent products
// are a no-op.
func (b *Builder) Decrement(ctx context.Context, productID string) error {
	line, ok := b.lines[productID]
	if !ok {
		return nil
	}
	if line.item.RequestedQty <= 1 {
		return b.Remove(ctx, productID)
	}
	return b.setQuantity(ctx, line, line.item.RequestedQty-1)
}

// Remove deletes the line regardless of quantity. Absent products are a no-op.
func (b *Builder) Remove(ctx context.Context, productID string) error {
	if _, ok := b.lines[productID]; !ok {
		return nil
	}
	if b.store != nil {
		if err := b.store.DeleteLine(ctx, productID); err != nil {
			return fmt.Errorf("delete cart line: %w", err)
		}
	}
	delete(b.lines, productID)
	for i, id := range b.order {
		if id == productID {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return nil
}

// setQuantity applies the ceiling check and writes through before mutating.
func (b *Builder) setQuantity(ctx context.Context, line *builderLine, qty int32) error {
	if line.maxQty >= 0 && qty > line.maxQty {
		if line.maxQty == 0 {
			return domain.ErrOutOfStock
		}
		return domain.ErrMaxQuantityReached
	}
	if b.store != nil {
		item := line.item
		item.RequestedQty = qty
		if err := b.store.UpsertLine(ctx, item); err != nil {
			return fmt.Errorf("persist cart line: %w", err)
		}
	}
	line.item.RequestedQty = qty
	return nil
}

// Total recomputes the ticket total from current lines. Empty builders
// total zero.
func (b *Builder) Total() int64 {
	var total int64
	for _, id := range b.order {
		total += b.lines[id].item.SubtotalCents()
	}
	return total
}

// Lines yields the line items in insertion order. The sequence is restartable
// and reflects the builder state at iteration time.
func (b *Builder) Lines() iter.Seq[domain.LineItem] {
	return func(yield func(domain.LineItem) bool) {
		for _, id := range b.order {
			if !yield(b.lines[id].item) {
				return
			}
		}
	}
}

// Items returns the line items in insertion order as a slice.
func (b *Builder) Items() []domain.LineItem {
	items := make([]domain.LineItem, 0, len(b.order))
	for item := range b.Lines() {
		items = append(items, item)
	}
	return items
}

// Len returns the number of distinct lines.
func (b *Builder) Len() int {
	return len(b.order)
}

// ItemCount returns the total requested quantity across all lines.
func (b *Builder) ItemCount() int32 {
	var n int32
	for _, id := range b.order {
		n += b.lines[id].item.RequestedQty
	}
	return n
}
