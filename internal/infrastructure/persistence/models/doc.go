// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - base.go: BaseModel shared by every table
// - haulage.go: trucks, farms, factories, contractors, supply records and settlements
// - cashflow.go: cash receipts and cash disbursements
package models
