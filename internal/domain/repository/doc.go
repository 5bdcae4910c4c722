// Package repository defines the domain repository interfaces.
//
// These interfaces are business contracts, independent of the backing
// store (MongoDB, in-memory, etc.). Concrete implementations live in
// internal/store/.
//
// Conventions:
//   - Context is always the first parameter
//   - IDs cross this boundary as strings; the store adapters own all
//     native-key coercion
//   - Domain errors are in errors.go
package repository
