package store

import (
	"errors"
	"fmt"

	"legal_crm_go/models"

	"gorm.io/gorm"
)

// Fetch resolves a logical key into data: an inbound-mapped Record for
// single-item keys, a []Record for collections. Storage errors propagate
// unchanged; there is no retry and no partial recovery.
func Fetch(gdb *gorm.DB, rawKey string) (any, error) {
	key, err := ParseKey(rawKey)
	if err != nil {
		return nil, err
	}
	meta := resources[key.Resource]

	if key.ID != 0 || meta.singleton {
		return fetchOne(gdb, key, meta)
	}
	return fetchCollection(gdb, key, meta)
}

// fetchOne issues an equality lookup on the identifier. A missing row is a
// not-found error naming the unresolved key, never a nil or empty record.
func fetchOne(gdb *gorm.DB, key *Key, meta resourceMeta) (Record, error) {
	id := key.ID
	if meta.singleton {
		id = models.FirmProfileID
	}

	row := Record{}
	err := gdb.Table(meta.table).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key.Canonical())
	}
	if err != nil {
		return nil, err
	}

	stripHidden(meta, row)
	return MapInbound(key.Resource, row), nil
}

// fetchCollection starts from all rows of the resource, then applies the
// declared default ordering and at most one declared parameter filter.
func fetchCollection(gdb *gorm.DB, key *Key, meta resourceMeta) ([]Record, error) {
	q := gdb.Table(meta.table)

	for _, f := range meta.filters {
		if v := key.Params.Get(f.param); v != "" {
			// Filters are mutually exclusive; declaration order is
			// precedence order.
			q = q.Where(f.column+" = ?", v)
			break
		}
	}

	if meta.orderBy != "" {
		q = q.Order(meta.orderBy)
	}

	rows := []Record{}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		stripHidden(meta, row)
	}
	return MapInboundList(key.Resource, rows), nil
}

func stripHidden(meta resourceMeta, row Record) {
	for _, col := range meta.hidden {
		delete(row, col)
	}
}
