// Package models defines the core domain models for the expense tracker.
//
// # Models
//
//   - User: a registered account, unique by username and by email
//   - Expense: a financial record owned by exactly one User
//
// # Design Principles
//
// 1. **Opaque identifiers**: IDs are assigned by the store and carried as the
//    ID string type. Only the storage adapter knows their format.
// 2. **Owner is a reference**: Expense.OwnerID holds the owning user's ID, never
//    a pointer to the User.
// 3. **No output concerns**: these types carry no serialization tags. Anything
//    leaving the process is built field by field in pkg/api.
package models

// ID is a store-assigned durable identifier for a User or an Expense.
// Its string form is opaque outside the storage adapter.
type ID string

// String returns the external form of the identifier.
func (id ID) String() string {
	return string(id)
}
