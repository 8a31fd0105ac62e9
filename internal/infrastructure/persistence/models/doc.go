// Package models contains the GORM persistence models that map to database
// tables. They are kept separate from the domain aggregates so the domain
// layer stays free of ORM tags; each model carries FromDomain/ToDomain
// converters used by the repositories.
//
// - base.go: shared model fields (id, timestamps)
// - sales.go: sales and sale line items
// - receivable.go: receivables and their payments
// - accounting.go: append-only ledger movements
package models
