package models

// All returns every persistence model, in dependency order. Tests use it
// with AutoMigrate; production schemas come from the SQL migrations.
func All() []any {
	return []any{
		&UserModel{},
		&ProfileModel{},
		&CategoryModel{},
		&SubcategoryModel{},
		&ProductModel{},
	}
}
