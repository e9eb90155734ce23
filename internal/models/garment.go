package models

import "strings"

// ItemType classifies an invoice line.
type ItemType string

const (
	// ItemTypeCustom is a factory-made garment; only these lines become order items.
	ItemTypeCustom      ItemType = "CUSTOM"
	ItemTypeLocalCustom ItemType = "LOCAL_CUSTOM"
	ItemTypeReady       ItemType = "READY"
)

// Category is the garment family of an item.
type Category string

const (
	CategorySheila Category = "SHEILA"
	CategoryAbaya  Category = "ABAYA"
)

// NormalizeItemType returns the canonical item type; unknown values become READY.
func NormalizeItemType(s string) ItemType {
	switch t := ItemType(strings.ToUpper(strings.TrimSpace(s))); t {
	case ItemTypeCustom, ItemTypeLocalCustom, ItemTypeReady:
		return t
	}
	return ItemTypeReady
}

// NormalizeCategory returns the canonical category; unknown values become ABAYA.
func NormalizeCategory(s string) Category {
	switch c := Category(strings.ToUpper(strings.TrimSpace(s))); c {
	case CategorySheila, CategoryAbaya:
		return c
	}
	return CategoryAbaya
}

// GarmentSpec holds the descriptive attributes shared by order and invoice items.
// Sheila and abaya attributes are disjoint; see ForCategory.
type GarmentSpec struct {
	ModelNumber string `gorm:"size:100;index" json:"model_number,omitempty"`
	Color       string `gorm:"size:100" json:"color,omitempty"`
	ExtraNote   string `gorm:"size:500" json:"extra_note,omitempty"`

	// SHEILA
	SheilaFabric string `gorm:"size:100" json:"sheila_fabric,omitempty"`
	HeightCM     string `gorm:"column:height_cm;size:32" json:"height_cm,omitempty"`
	WidthCM      string `gorm:"column:width_cm;size:32" json:"width_cm,omitempty"`
	LogoColor    string `gorm:"size:100" json:"logo_color,omitempty"`

	// ABAYA
	AbayaFabric    string `gorm:"size:100" json:"abaya_fabric,omitempty"`
	Size           string `gorm:"size:32" json:"size,omitempty"`
	UpperWidthCM   string `gorm:"column:upper_width_cm;size:32" json:"upper_width_cm,omitempty"`
	LowerWidthCM   string `gorm:"column:lower_width_cm;size:32" json:"lower_width_cm,omitempty"`
	SleeveWidthCM  string `gorm:"column:sleeve_width_cm;size:32" json:"sleeve_width_cm,omitempty"`
	SleeveHeightCM string `gorm:"column:sleeve_height_cm;size:32" json:"sleeve_height_cm,omitempty"`
	Logo           string `gorm:"size:100" json:"logo,omitempty"`
}

// ForCategory returns a trimmed copy of g with the other category's attributes cleared.
func (g GarmentSpec) ForCategory(c Category) GarmentSpec {
	out := GarmentSpec{
		ModelNumber: strings.TrimSpace(g.ModelNumber),
		Color:       strings.TrimSpace(g.Color),
		ExtraNote:   strings.TrimSpace(g.ExtraNote),
	}
	switch c {
	case CategorySheila:
		out.SheilaFabric = strings.TrimSpace(g.SheilaFabric)
		out.HeightCM = strings.TrimSpace(g.HeightCM)
		out.WidthCM = strings.TrimSpace(g.WidthCM)
		out.LogoColor = strings.TrimSpace(g.LogoColor)
	default:
		out.AbayaFabric = strings.TrimSpace(g.AbayaFabric)
		out.Size = strings.TrimSpace(g.Size)
		out.UpperWidthCM = strings.TrimSpace(g.UpperWidthCM)
		out.LowerWidthCM = strings.TrimSpace(g.LowerWidthCM)
		out.SleeveWidthCM = strings.TrimSpace(g.SleeveWidthCM)
		out.SleeveHeightCM = strings.TrimSpace(g.SleeveHeightCM)
		out.Logo = strings.TrimSpace(g.Logo)
	}
	return out
}
