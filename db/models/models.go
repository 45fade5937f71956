package models

var registeredModels []any

func registerModel(model any) {
	registeredModels = append(registeredModels, model)
}

// GetModels returns every model registered for auto-migration.
func GetModels() []any {
	return registeredModels
}
