// Package utils provides common utility functions for the mana-vault application.
// It includes the loose type conversions needed to read rows of an upstream snapshot
// whose column types are not known ahead of time, and small parsers for card values
// (list columns, power/toughness, collector numbers).
package utils
