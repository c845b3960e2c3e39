package models

// SortKey selects the ordering of the card view
type SortKey string

const (
	SortNone      SortKey = ""
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortLevelAsc  SortKey = "level-asc"
	SortLevelDesc SortKey = "level-desc"
)

// ParseSortKey maps user input to a SortKey. Unknown values keep input order.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortNameAsc, SortNameDesc, SortLevelAsc, SortLevelDesc:
		return k
	default:
		return SortNone
	}
}

// ViewState is the current value of the three input controls
type ViewState struct {
	Search   string  `json:"search"`
	Category string  `json:"category"` // Empty = all categories
	Sort     SortKey `json:"sort"`
}
