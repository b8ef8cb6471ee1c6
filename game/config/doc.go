// Package config provides city configuration management for Delivery Dash.
//
// The config package handles:
//   - Loading city scenarios from JSON files
//   - JSON Schema validation before unmarshaling, then semantic validation
//   - Default scenario selection and caching
//   - Scenario discovery and listing
//
// Configuration Format:
//
// City scenarios are stored as JSON files in the configs directory. Each
// scenario defines:
//   - Pickup (warehouse) and delivery zones with world positions and radii
//   - The delivery-type catalog (reward, time limit, reputation stake)
//   - The vehicle catalog, ordered by strictly increasing cost
//   - Starting money, reputation, and vehicle
//   - Message templates for notifications
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	city, err := manager.LoadConfig("downtown")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	cities, err := manager.ListConfigs()
package config
