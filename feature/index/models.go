package index

// Card is one row of card_search: the display fields of a canonical card copied
// from its representative printing.
type Card struct {
	ID                       int64    `gorm:"column:id;primaryKey" json:"-"`
	CanonicalKey             string   `gorm:"column:canonical_key" json:"canonicalKey"`
	RepresentativePrintingID string   `gorm:"column:representative_printing_id" json:"representativePrintingId"`
	Name                     string   `gorm:"column:name" json:"name"`
	ASCIIName                *string  `gorm:"column:ascii_name" json:"asciiName,omitempty"`
	ManaCost                 *string  `gorm:"column:mana_cost" json:"manaCost,omitempty"`
	ManaValue                *float64 `gorm:"column:mana_value" json:"manaValue,omitempty"`
	TypeLine                 *string  `gorm:"column:type_line" json:"typeLine,omitempty"`
	OracleText               *string  `gorm:"column:oracle_text" json:"oracleText,omitempty"`
	Colors                   string   `gorm:"column:colors" json:"-"`
	ColorCount               int      `gorm:"column:color_count" json:"-"`
	ColorIdentity            string   `gorm:"column:color_identity" json:"-"`
	ColorIdentityCount       int      `gorm:"column:color_identity_count" json:"-"`
	Rarity                   *string  `gorm:"column:rarity" json:"rarity,omitempty"`
	RarityRank               *int     `gorm:"column:rarity_rank" json:"-"`
	Keywords                 *string  `gorm:"column:keywords" json:"-"`
	Types                    *string  `gorm:"column:types" json:"-"`
	Power                    *string  `gorm:"column:power" json:"power,omitempty"`
	PowerValue               *float64 `gorm:"column:power_value" json:"-"`
	Toughness                *string  `gorm:"column:toughness" json:"toughness,omitempty"`
	ToughnessValue           *float64 `gorm:"column:toughness_value" json:"-"`
	Loyalty                  *string  `gorm:"column:loyalty" json:"loyalty,omitempty"`
	Artist                   *string  `gorm:"column:artist" json:"artist,omitempty"`
	FlavorText               *string  `gorm:"column:flavor_text" json:"flavorText,omitempty"`
	LatestSetCode            *string  `gorm:"column:latest_set_code" json:"latestSetCode,omitempty"`
	LatestReleaseDate        *string  `gorm:"column:latest_release_date" json:"latestReleaseDate,omitempty"`
	LatestNumber             *string  `gorm:"column:latest_number" json:"latestNumber,omitempty"`
	NumberValue              *int     `gorm:"column:number_value" json:"-"`
	NumberSuffix             *string  `gorm:"column:number_suffix" json:"-"`
}

// TableName overrides the table name used by Card.
func (Card) TableName() string {
	return TableCards
}

// PrintingRef is one row of card_search_printings.
type PrintingRef struct {
	PrintingID   string  `gorm:"column:printing_id;primaryKey" json:"printingId"`
	CanonicalKey string  `gorm:"column:canonical_key" json:"canonicalKey"`
	SetCode      *string `gorm:"column:set_code" json:"setCode,omitempty"`
	ReleaseDate  *string `gorm:"column:release_date" json:"releaseDate,omitempty"`
	Number       *string `gorm:"column:number" json:"number,omitempty"`
	NumberValue  *int    `gorm:"column:number_value" json:"-"`
	NumberSuffix *string `gorm:"column:number_suffix" json:"-"`
}

// TableName overrides the table name used by PrintingRef.
func (PrintingRef) TableName() string {
	return TablePrintings
}

// RarityRank orders rarities for sorting. Unknown rarities have no rank.
var RarityRank = map[string]int{
	"common":   1,
	"uncommon": 2,
	"rare":     3,
	"mythic":   4,
}
