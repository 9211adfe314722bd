package entity

type Location struct {
	BaseSimple
	City string `db:"city"` // lowercased and trimmed before insert, unique
}
