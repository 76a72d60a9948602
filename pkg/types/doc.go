// Package types defines the Store interface, the entity and patch types, the
// closed enumerations, and the standard errors of the recipe costing system.
//
// Money and quantities are shopspring decimals throughout; derived cost
// fields are decimal.NullDecimal so that "not yet costed" is distinct from
// zero.
package types
