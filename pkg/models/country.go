package models

// Country is reference data loaded once by cmd/seed and never mutated after.
type Country struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"not null" json:"name"`
	TopLevelDomain string `json:"top_level_domain"`
	Alpha2Code     string `gorm:"uniqueIndex;not null" json:"alpha2_code"`
	Alpha3Code     string `gorm:"uniqueIndex;not null" json:"alpha3_code"`
	CallingCode    string `json:"calling_code"`
	Capital        string `json:"capital"`
	AltSpellings   string `json:"alt_spellings"`
	Region         string `json:"region"`
}
