package model

import "time"

type Apartment struct {
	DongCode  int64   `json:"dong_code"`
	Address2  string  `json:"Address2"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	ComplexNo int64   `json:"complexNo"`
}

type ApartmentCluster struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Count     int64   `json:"count"`
}

type PriceHistory struct {
	Seq               int64     `json:"SEQ"`
	Date              time.Time `json:"Date"`
	ComplexNo         int64     `json:"complexNo"`
	Name              string    `json:"Name"`
	Area              int64     `json:"Area"`
	Price             float64   `json:"Price"`
	DealPriceMin      int64     `json:"dealPriceMin"`
	DealPriceMax      int64     `json:"dealPriceMax"`
	LeasePriceMin     int64     `json:"leasePriceMin"`
	LeasePriceMax     int64     `json:"leasePriceMax"`
	LeasePriceRate    float64   `json:"leasePriceRate"`
	LeasePriceRateMin int64     `json:"leasePriceRateMin"`
	LeasePriceRateMax int64     `json:"leasePriceRateMax"`
}

// BoundingBox is a lat/lng window. Zero values are never used directly; the
// service fills in defaults before querying.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// ClusterQuery filters the grid clustering. A nil Area means every area.
type ClusterQuery struct {
	Box  BoundingBox
	Area *int64
}

// ApartmentQuery lists apartments. A nil Box means no spatial filter.
type ApartmentQuery struct {
	Box   *BoundingBox
	Limit int
}
