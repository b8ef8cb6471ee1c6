// Command validate provides a small CLI that validates city configuration
// JSON files in the ../configs directory. It checks:
//   - JSON structure against the city schema
//   - Catalog consistency (delivery types, vehicles, starting vehicle)
//   - Zone requirements (at least one pickup and one delivery zone)
//   - Destination coverage: every destination resolves to a delivery zone
//   - Feasibility: every delivery type's time limit allows the slowest
//     vehicle to reach the farthest destination from the nearest warehouse
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deliverydash/deliverydash/game/config"
	"github.com/deliverydash/deliverydash/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateFile loads one city file through the config manager (schema plus
// semantic checks) and layers the feasibility analysis on top.
func validateFile(manager *config.Manager, filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	configID := strings.TrimSuffix(filepath.Base(filePath), ".json")
	cityConfig, err := manager.LoadConfig(configID)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	feasibility := validateFeasibility(cityConfig)
	if !feasibility.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, feasibility.Errors...)

	if result.Valid {
		pickups := engine.CountZones(cityConfig, engine.ZonePickup)
		deliveries := engine.CountZones(cityConfig, engine.ZoneDelivery)
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", cityConfig.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Zones: %d pickup, %d delivery", pickups, deliveries))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Delivery types: %d", len(cityConfig.DeliveryTypes)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Vehicles: %d (starting: %s)", len(cityConfig.Vehicles), cityConfig.StartingVehicle))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Starting money: $%d", cityConfig.StartingMoney))
	}

	return result
}

// validateFeasibility checks that every delivery type can be completed with
// the slowest vehicle: worst-case route is player to farthest warehouse,
// then warehouse to farthest destination. The distance-per-second unit
// matches the renderer's, where a speed-1 vehicle covers 60 units a second.
func validateFeasibility(cityConfig *engine.CityConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	var pickups, deliveries []engine.Zone
	for _, zone := range cityConfig.Zones {
		switch zone.Kind {
		case engine.ZonePickup:
			pickups = append(pickups, zone)
		case engine.ZoneDelivery:
			deliveries = append(deliveries, zone)
		}
	}

	if len(pickups) == 0 || len(deliveries) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate feasibility: missing pickup or delivery zones")
		return result
	}

	slowest := 0.0
	for _, tier := range cityConfig.Vehicles {
		if slowest == 0 || tier.Speed < slowest {
			slowest = tier.Speed
		}
	}
	if slowest <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "All vehicles have zero speed")
		return result
	}

	// Worst-case route length across any warehouse/destination pairing.
	worst := 0.0
	for _, pickup := range pickups {
		for _, delivery := range deliveries {
			if d := pickup.Position.DistanceTo(delivery.Position); d > worst {
				worst = d
			}
		}
	}

	const unitsPerSecond = 60.0
	worstSeconds := worst / (slowest * unitsPerSecond)

	for name, deliveryType := range cityConfig.DeliveryTypes {
		if float64(deliveryType.TimeLimit) < worstSeconds {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf(
				"Delivery type %q is infeasible: time limit %ds < worst-case route %.0fs at slowest speed",
				name, deliveryType.TimeLimit, worstSeconds))
		}
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"✓ Feasibility: worst-case route %.0f units (%.0fs at slowest speed)", worst, worstSeconds))
	}

	return result
}

// main scans the config directory for *.json files and validates each one,
// printing a concise report and exiting non-zero if any are invalid.
func main() {
	configDir := flag.String("config-dir", "../configs", "Directory containing city configuration files")
	flag.Parse()

	manager, err := config.NewManager(*configDir)
	if err != nil {
		fmt.Printf("Error opening config directory: %v\n", err)
		os.Exit(1)
	}

	files, err := filepath.Glob(filepath.Join(*configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateFile(manager, file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
