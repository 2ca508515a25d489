// Package models defines the persisted collection records.
package models
