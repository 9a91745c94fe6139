package db

import (
	"context"
	"strconv"

	"github.com/aptmap/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

// 클러스터 격자는 바운딩 박스를 10x10으로 나눕니다.
const clusterGridSize = 10

func (db *Postgres) ListApartments(ctx context.Context, q model.ApartmentQuery) ([]model.Apartment, error) {
	query := `
		SELECT dong_code, address2, name, latitude, longitude, complex_no
		FROM real_apartment_info
	`
	args := []any{}
	if q.Box != nil {
		query += ` WHERE latitude BETWEEN $1 AND $2 AND longitude BETWEEN $3 AND $4`
		args = append(args, q.Box.MinLat, q.Box.MaxLat, q.Box.MinLng, q.Box.MaxLng)
	}
	args = append(args, q.Limit)
	query += ` ORDER BY complex_no LIMIT $` + strconv.Itoa(len(args))

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Apartment, error) {
		var a model.Apartment
		var lat, lng *float64
		if err := row.Scan(&a.DongCode, &a.Address2, &a.Name, &lat, &lng, &a.ComplexNo); err != nil {
			return a, err
		}
		if lat != nil {
			a.Latitude = *lat
		}
		if lng != nil {
			a.Longitude = *lng
		}
		return a, nil
	})
}

// ClusterApartments buckets apartments inside the box into a fixed grid and
// returns the centroid and size of every non-empty bucket.
func (db *Postgres) ClusterApartments(ctx context.Context, q model.ClusterQuery) ([]model.ApartmentCluster, error) {
	query, args := clusterSQL(q)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ApartmentCluster, error) {
		var c model.ApartmentCluster
		err := row.Scan(&c.Latitude, &c.Longitude, &c.Count)
		return c, err
	})
}

// PriceHistory returns up to limit rows from the last year, ordered by
// complex and date.
func (db *Postgres) PriceHistory(ctx context.Context, limit int) ([]model.PriceHistory, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT seq, date, complex_no, name, area, price,
			deal_price_min, deal_price_max,
			lease_price_min, lease_price_max,
			lease_price_rate, lease_price_rate_min, lease_price_rate_max
		FROM real_price_hist
		WHERE date >= CURRENT_DATE - INTERVAL '1 year'
		ORDER BY complex_no, date
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PriceHistory, error) {
		var p model.PriceHistory
		err := row.Scan(
			&p.Seq, &p.Date, &p.ComplexNo, &p.Name, &p.Area, &p.Price,
			&p.DealPriceMin, &p.DealPriceMax,
			&p.LeasePriceMin, &p.LeasePriceMax,
			&p.LeasePriceRate, &p.LeasePriceRateMin, &p.LeasePriceRateMax,
		)
		return p, err
	})
}

// clusterSQL drops buckets whose grid cell is NULL, which happens when the box
// has zero width or height.
func clusterSQL(q model.ClusterQuery) (string, []any) {
	query := `
		SELECT AVG(latitude), AVG(longitude), COUNT(*)
		FROM (
			SELECT latitude, longitude,
				FLOOR((latitude - $1) / NULLIF($2 - $1, 0) * $5) AS lat_grid,
				FLOOR((longitude - $3) / NULLIF($4 - $3, 0) * $5) AS lng_grid
			FROM real_apartment_info
			WHERE latitude BETWEEN $1 AND $2
			  AND longitude BETWEEN $3 AND $4
	`
	args := []any{q.Box.MinLat, q.Box.MaxLat, q.Box.MinLng, q.Box.MaxLng, float64(clusterGridSize)}
	if q.Area != nil {
		args = append(args, *q.Area)
		query += `	  AND area = $6
	`
	}
	query += `) AS cells
		WHERE lat_grid IS NOT NULL AND lng_grid IS NOT NULL
		GROUP BY lat_grid, lng_grid
		ORDER BY COUNT(*) DESC
	`
	return query, args
}
