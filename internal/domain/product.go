package domain

import "time"

// Product is a catalog entry written by the ingestion service.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Stock       int
	Photo       []byte
	CreatedAt   time.Time
}
