package service

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/aptmap/backend/internal/db"
	"github.com/aptmap/backend/internal/model"
)

const (
	DefaultApartmentLimit = 1000
	MaxApartmentLimit     = 1000
	priceHistoryLimit     = 100
)

var worldBox = model.BoundingBox{MinLat: -90, MaxLat: 90, MinLng: -180, MaxLng: 180}

type ApartmentService struct {
	store db.ApartmentStore
}

func NewApartmentService(store db.ApartmentStore) *ApartmentService {
	return &ApartmentService{store: store}
}

func (s *ApartmentService) ListApartments(ctx context.Context, q model.ApartmentQuery) ([]model.Apartment, error) {
	out, err := s.store.ListApartments(ctx, q)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Apartment{}
	}
	return out, nil
}

func (s *ApartmentService) ClusterApartments(ctx context.Context, q model.ClusterQuery) ([]model.ApartmentCluster, error) {
	out, err := s.store.ClusterApartments(ctx, q)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.ApartmentCluster{}
	}
	return out, nil
}

// PriceHistory returns last year's rows keyed by complex number, each list
// in date order.
func (s *ApartmentService) PriceHistory(ctx context.Context) (map[int64][]model.PriceHistory, error) {
	rows, err := s.store.PriceHistory(ctx, priceHistoryLimit)
	if err != nil {
		return nil, err
	}
	grouped := make(map[int64][]model.PriceHistory)
	for _, row := range rows {
		grouped[row.ComplexNo] = append(grouped[row.ComplexNo], row)
	}
	return grouped, nil
}

// ParseApartmentQuery builds a listing query from raw query parameters. The
// bounding box applies only when all four edges are given.
func ParseApartmentQuery(minLat, maxLat, minLng, maxLng, limit string) (model.ApartmentQuery, error) {
	q := model.ApartmentQuery{Limit: DefaultApartmentLimit}

	if strings.TrimSpace(limit) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(limit))
		if err != nil || n <= 0 {
			return q, ErrInvalidInput
		}
		q.Limit = min(n, MaxApartmentLimit)
	}

	edges := []string{minLat, maxLat, minLng, maxLng}
	for _, e := range edges {
		if strings.TrimSpace(e) == "" {
			return q, nil
		}
	}

	vals := make([]float64, len(edges))
	for i, e := range edges {
		v, err := strconv.ParseFloat(strings.TrimSpace(e), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return q, ErrInvalidInput
		}
		vals[i] = v
	}
	q.Box = &model.BoundingBox{MinLat: vals[0], MaxLat: vals[1], MinLng: vals[2], MaxLng: vals[3]}
	return q, nil
}

// ParseClusterQuery never fails: unparsable edges fall back to the whole
// world. An empty area or "all" disables the area filter; any other
// unparsable area filters on 0.
func ParseClusterQuery(minLat, maxLat, minLng, maxLng, area string) model.ClusterQuery {
	q := model.ClusterQuery{Box: model.BoundingBox{
		MinLat: floatOr(minLat, worldBox.MinLat),
		MaxLat: floatOr(maxLat, worldBox.MaxLat),
		MinLng: floatOr(minLng, worldBox.MinLng),
		MaxLng: floatOr(maxLng, worldBox.MaxLng),
	}}

	area = strings.TrimSpace(area)
	if area == "" || strings.EqualFold(area, "all") {
		return q
	}
	n, err := strconv.ParseInt(area, 10, 64)
	if err != nil {
		n = 0
	}
	q.Area = &n
	return q
}

func floatOr(raw string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
