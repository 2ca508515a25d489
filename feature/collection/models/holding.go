package models

import "time"

// Holding is the number of owned copies of one printing.
type Holding struct {
	PrintingID string    `gorm:"column:printing_id;primaryKey;size:64" json:"printingId"`
	Qty        int       `gorm:"column:qty;not null;default:0" json:"qty"`
	FoilQty    int       `gorm:"column:foil_qty;not null;default:0" json:"foilQty"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName overrides the table name used by Holding.
func (Holding) TableName() string {
	return "collection_cards"
}

// Empty reports whether no copies are held.
func (h Holding) Empty() bool {
	return h.Qty == 0 && h.FoilQty == 0
}

// Totals is the sum of holdings over every printing of a canonical card.
type Totals struct {
	Qty     int `json:"qty" yaml:"qty"`
	FoilQty int `json:"foilQty" yaml:"foilQty"`
}

// Add accumulates h into t.
func (t *Totals) Add(h Holding) {
	t.Qty += h.Qty
	t.FoilQty += h.FoilQty
}

// OwnedCard is the ownership summary of one canonical card.
type OwnedCard struct {
	CanonicalKey string `json:"canonicalKey" yaml:"canonical_key"`
	Totals       `yaml:",inline"`
	Printings    []Holding `json:"printings" yaml:"printings"`
}
