package models

import "time"

// Cart holds the lines a browser used to keep in localStorage["cart"],
// keyed by the anonymous session id (or the user id once known).
type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	OwnerID   string     `gorm:"uniqueIndex" json:"owner_id"` // Enforces ONE cart per session/user
	Items     []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartLine is one product entry in a cart. ProductID is unique within a
// cart; adds for an existing id merge into the line instead.
type CartLine struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CartID    uint      `gorm:"index" json:"-"`
	ProductID string    `gorm:"index" json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// MergeLine folds line into lines: same ProductID adds quantities, a new id
// appends. The returned slice never contains duplicate ids.
func MergeLine(lines []CartLine, line CartLine) []CartLine {
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines[i].Quantity += line.Quantity
			lines[i].AddedAt = line.AddedAt
			return lines
		}
	}
	return append(lines, line)
}

// RemoveLine filters out the line with the given product id.
func RemoveLine(lines []CartLine, productID string) []CartLine {
	out := make([]CartLine, 0, len(lines))
	for _, l := range lines {
		if l.ProductID != productID {
			out = append(out, l)
		}
	}
	return out
}

// CartTotal sums price*quantity over all lines.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// CartCount sums quantities over all lines.
func CartCount(lines []CartLine) int {
	var n int
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
