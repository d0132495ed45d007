package config

const (
	// Configuration file paths
	ConfigPathCatalog = "configs/catalog.json"
)
