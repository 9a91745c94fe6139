package service

import (
	"context"
	"testing"
	"time"

	"github.com/aptmap/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApartmentStore struct {
	lastList    model.ApartmentQuery
	lastCluster model.ClusterQuery
	lastLimit   int
	history     []model.PriceHistory
}

func (f *fakeApartmentStore) ListApartments(ctx context.Context, q model.ApartmentQuery) ([]model.Apartment, error) {
	f.lastList = q
	return nil, nil
}

func (f *fakeApartmentStore) ClusterApartments(ctx context.Context, q model.ClusterQuery) ([]model.ApartmentCluster, error) {
	f.lastCluster = q
	return []model.ApartmentCluster{{Latitude: 37.5, Longitude: 127, Count: 3}}, nil
}

func (f *fakeApartmentStore) PriceHistory(ctx context.Context, limit int) ([]model.PriceHistory, error) {
	f.lastLimit = limit
	return f.history, nil
}

func TestParseApartmentQuery(t *testing.T) {
	q, err := ParseApartmentQuery("", "", "", "", "")
	require.NoError(t, err)
	assert.Nil(t, q.Box)
	assert.Equal(t, 1000, q.Limit)

	q, err = ParseApartmentQuery("37.4", "37.6", "126.9", "127.1", "50")
	require.NoError(t, err)
	require.NotNil(t, q.Box)
	assert.Equal(t, model.BoundingBox{MinLat: 37.4, MaxLat: 37.6, MinLng: 126.9, MaxLng: 127.1}, *q.Box)
	assert.Equal(t, 50, q.Limit)

	q, err = ParseApartmentQuery("37.4", "37.6", "", "127.1", "5000")
	require.NoError(t, err)
	assert.Nil(t, q.Box, "partial box is ignored")
	assert.Equal(t, 1000, q.Limit, "limit is clamped")

	for _, bad := range [][5]string{
		{"", "", "", "", "abc"},
		{"", "", "", "", "0"},
		{"north", "37.6", "126.9", "127.1", ""},
		{"37.4", "Infinity", "126.9", "127.1", ""},
	} {
		_, err := ParseApartmentQuery(bad[0], bad[1], bad[2], bad[3], bad[4])
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestParseClusterQuery(t *testing.T) {
	q := ParseClusterQuery("", "", "", "", "")
	assert.Equal(t, worldBox, q.Box)
	assert.Nil(t, q.Area)

	q = ParseClusterQuery("37.4", "Infinity", "x", "127.1", "all")
	assert.Equal(t, model.BoundingBox{MinLat: 37.4, MaxLat: 90, MinLng: -180, MaxLng: 127.1}, q.Box)
	assert.Nil(t, q.Area)

	q = ParseClusterQuery("", "", "", "", "84")
	require.NotNil(t, q.Area)
	assert.Equal(t, int64(84), *q.Area)

	q = ParseClusterQuery("", "", "", "", "big")
	require.NotNil(t, q.Area)
	assert.Equal(t, int64(0), *q.Area)
}

func TestApartmentService(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeApartmentStore{history: []model.PriceHistory{
		{Seq: 1, ComplexNo: 10, Date: day},
		{Seq: 2, ComplexNo: 10, Date: day.AddDate(0, 1, 0)},
		{Seq: 3, ComplexNo: 20, Date: day},
	}}
	svc := NewApartmentService(store)

	list, err := svc.ListApartments(context.Background(), model.ApartmentQuery{Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	clusters, err := svc.ClusterApartments(context.Background(), ParseClusterQuery("", "", "", "", ""))
	require.NoError(t, err)
	assert.Len(t, clusters, 1)

	grouped, err := svc.PriceHistory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, store.lastLimit)
	require.Len(t, grouped, 2)
	assert.Equal(t, []int64{1, 2}, []int64{grouped[10][0].Seq, grouped[10][1].Seq})
	assert.Len(t, grouped[20], 1)
}
