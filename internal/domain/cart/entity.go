// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/google/uuid"
)

// DefaultStockLimit caps line quantity when the catalog does not report stock.
const DefaultStockLimit = 99

// Line represents one product selected for purchase. The price is snapshotted
// at add time (in cents, already discount-adjusted) and is never re-fetched.
type Line struct {
	LineID     string    `json:"line_id"`
	ProductID  string    `json:"product_id"`
	UnitPrice  int64     `json:"unit_price"` // Price in cents at time of adding
	Quantity   int       `json:"quantity"`
	StockLimit int       `json:"stock_limit"`
	AddedAt    time.Time `json:"added_at"`
}

// Subtotal returns UnitPrice * Quantity in cents.
func (ln Line) Subtotal() int64 {
	return ln.UnitPrice * int64(ln.Quantity)
}

// Ledger holds the set of lines selected for purchase during one browsing
// session. Every mutation keeps 1 <= Quantity <= StockLimit on each line.
type Ledger struct {
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AddRequest carries the catalog snapshot for a line being added.
type AddRequest struct {
	ProductID  string
	UnitPrice  int64
	Quantity   int
	StockLimit int
}

// Add appends a new line for the requested product. It returns false without
// touching the ledger when a line for the same product already exists, so the
// caller can branch on "already in cart" vs "added". The requested quantity is
// clamped into [1, StockLimit].
func (l *Ledger) Add(req AddRequest) (Line, bool) {
	for _, existing := range l.Lines {
		if existing.ProductID == req.ProductID {
			return Line{}, false
		}
	}

	limit := req.StockLimit
	if limit < 1 {
		limit = DefaultStockLimit
	}

	line := Line{
		LineID:     uuid.New().String(),
		ProductID:  req.ProductID,
		UnitPrice:  req.UnitPrice,
		Quantity:   clampQuantity(req.Quantity, limit),
		StockLimit: limit,
		AddedAt:    time.Now().UTC(),
	}

	l.Lines = append(l.Lines, line)
	l.UpdatedAt = time.Now().UTC()
	return line, true
}

// AdjustQuantity applies a signed delta to a line's quantity, clamped into
// [1, StockLimit]. A delta that would drop the quantity below 1 leaves it at 1;
// removal is always explicit. Unknown line ids are a no-op.
func (l *Ledger) AdjustQuantity(lineID string, delta int) {
	for i := range l.Lines {
		if l.Lines[i].LineID == lineID {
			l.Lines[i].Quantity = clampQuantity(l.Lines[i].Quantity+delta, l.Lines[i].StockLimit)
			l.UpdatedAt = time.Now().UTC()
			return
		}
	}
}

// Remove deletes the line with the given id, if present.
func (l *Ledger) Remove(lineID string) {
	for i := range l.Lines {
		if l.Lines[i].LineID == lineID {
			l.Lines = append(l.Lines[:i], l.Lines[i+1:]...)
			l.UpdatedAt = time.Now().UTC()
			return
		}
	}
}

// Clear removes all lines.
func (l *Ledger) Clear() {
	l.Lines = nil
	l.UpdatedAt = time.Now().UTC()
}

// Total returns the ledger total in cents. Accumulation stays in integer
// cents; rounding to a display currency happens only at presentation.
func (l *Ledger) Total() int64 {
	var total int64
	for _, ln := range l.Lines {
		total += ln.Subtotal()
	}
	return total
}

// IsEmpty reports whether the ledger has no lines.
func (l *Ledger) IsEmpty() bool {
	return len(l.Lines) == 0
}

// Items returns a copy of the lines so callers cannot mutate ledger state.
func (l *Ledger) Items() []Line {
	items := make([]Line, len(l.Lines))
	copy(items, l.Lines)
	return items
}

func clampQuantity(qty, limit int) int {
	if qty < 1 {
		return 1
	}
	if qty > limit {
		return limit
	}
	return qty
}
