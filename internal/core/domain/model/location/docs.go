// Package location holds the storage slot entity behind the location ledger.
package location
