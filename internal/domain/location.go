package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MainWarehouseKey is the serialized form of the main warehouse reference.
const MainWarehouseKey = "main_warehouse"

// LocationRef identifies a stock location: either the single main warehouse
// or a branch by numeric id.
type LocationRef struct {
	Warehouse bool
	BranchID  int64
}

// MainWarehouse returns the reference to the singleton main warehouse.
func MainWarehouse() LocationRef {
	return LocationRef{Warehouse: true}
}

// Branch returns a reference to the branch with the given id.
func Branch(id int64) LocationRef {
	return LocationRef{BranchID: id}
}

// Key serializes the reference to its stable string form, the same form the
// transaction payload stores and the HTTP boundary accepts.
func (r LocationRef) Key() string {
	if r.Warehouse {
		return MainWarehouseKey
	}
	return fmt.Sprintf("branch:%d", r.BranchID)
}

func (r LocationRef) String() string {
	return r.Key()
}

// ParseLocationRef parses the string form produced by Key. The bare numeric
// form ("3") is accepted as a branch id for compatibility with older clients.
func ParseLocationRef(s string) (LocationRef, error) {
	s = strings.TrimSpace(s)
	if s == MainWarehouseKey {
		return MainWarehouse(), nil
	}
	numeric := strings.TrimPrefix(s, "branch:")
	id, err := strconv.ParseInt(numeric, 10, 64)
	if err != nil || id <= 0 {
		return LocationRef{}, fmt.Errorf("invalid location reference %q", s)
	}
	return Branch(id), nil
}

// BranchStock is one branch row of the inventory snapshot.
type BranchStock struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
}

// WarehouseStock is the main warehouse part of the inventory snapshot.
type WarehouseStock struct {
	Quantity int `json:"quantity"`
	Price    int `json:"price"`
}

// InventorySnapshot is the read-boundary view over every location.
type InventorySnapshot struct {
	Branches      []BranchStock  `json:"branches"`
	MainWarehouse WarehouseStock `json:"main_warehouse"`
}
