// Package model holds the GORM persistence models. They never leave the infra layer.
package model

// All lists every model managed by AutoMigrate, parents first.
func All() []any {
	return []any{
		&UserModel{},
		&TaskModel{},
	}
}
