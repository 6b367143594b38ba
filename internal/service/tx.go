package service

import "gorm.io/gorm"

// runTx wraps fn in a database transaction. A nil db runs fn directly with a
// nil tx, which lets unit tests exercise service flows against stub
// repositories without a database.
func runTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.Transaction(fn)
}
