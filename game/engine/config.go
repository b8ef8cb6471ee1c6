package engine

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultCityConfig returns the built-in downtown scenario. It mirrors the
// values the game shipped with: four delivery archetypes, four vehicle tiers,
// and four pickup/delivery zone pairs.
func DefaultCityConfig() *CityConfig {
	return &CityConfig{
		Name:               "Downtown",
		Description:        "The default city map with four warehouse districts",
		StartingMoney:      1000,
		StartingReputation: 50,
		StartingVehicle:    "bike",
		DeliveryTypes: map[string]DeliveryType{
			"standard": {Reward: 25, TimeLimit: 300, Reputation: 1},
			"urgent":   {Reward: 50, TimeLimit: 180, Reputation: 2},
			"fragile":  {Reward: 75, TimeLimit: 240, Reputation: 3},
			"heavy":    {Reward: 100, TimeLimit: 360, Reputation: 2},
		},
		Vehicles: map[string]VehicleTier{
			"bike":    {Speed: 1, Capacity: 1, Cost: 0},
			"scooter": {Speed: 1.2, Capacity: 2, Cost: 500},
			"van":     {Speed: 1.5, Capacity: 5, Cost: 2000},
			"truck":   {Speed: 1.8, Capacity: 10, Cost: 5000},
		},
		Zones: []Zone{
			{ID: "wh-nw", Kind: ZonePickup, Name: "Northwest Warehouse", Position: Position{X: 75, Y: 200}},
			{ID: "wh-ne", Kind: ZonePickup, Name: "Northeast Warehouse", Position: Position{X: 725, Y: 200}},
			{ID: "wh-sw", Kind: ZonePickup, Name: "Southwest Warehouse", Position: Position{X: 75, Y: 400}},
			{ID: "wh-se", Kind: ZonePickup, Name: "Southeast Warehouse", Position: Position{X: 725, Y: 400}},
			{ID: "dz-office", Kind: ZoneDelivery, Name: "Downtown Office", Position: Position{X: 400, Y: 100}},
			{ID: "dz-mall", Kind: ZoneDelivery, Name: "City Mall", Position: Position{X: 400, Y: 500}},
			{ID: "dz-industrial", Kind: ZoneDelivery, Name: "Industrial Park", Position: Position{X: 150, Y: 300}},
			{ID: "dz-residential", Kind: ZoneDelivery, Name: "Residential Area", Position: Position{X: 650, Y: 300}},
		},
		PickupRadius:      DefaultZoneRange,
		AutoFailOnTimeout: false,
		Messages: Messages{
			Welcome:          "Welcome to Delivery Dash!",
			NewOrder:         "New %s delivery to %s!",
			OrderInProgress:  "Delivery already in progress",
			DeliveryComplete: "Delivery completed! +$%d",
			DeliveryFailed:   "Delivery failed! Reputation decreased.",
			NoActiveOrder:    "No active delivery",
			LevelUp:          "Level up! You are now level %d!",
			VehicleUpgraded:  "Upgraded to %s!",
			NoUpgrade:        "No affordable upgrades available.",
			StaffHired:       "Staff member hired! Reputation increased.",
			NotEnoughMoney:   "Not enough money to hire staff.",
			PackagePickedUp:  "Package picked up! Deliver it to a drop zone.",
			AlreadyCarrying:  "You are already carrying a package.",
			NothingToDeliver: "You have nothing to deliver.",
		},
	}
}

// ApplyDefaults fills the optional knobs a city file may omit: pickup
// radius, starting vehicle, and message templates. Catalogs and zones are
// never defaulted; a scenario must declare its own.
func (c *CityConfig) ApplyDefaults() {
	base := DefaultCityConfig()
	if c.PickupRadius == 0 {
		c.PickupRadius = base.PickupRadius
	}
	if c.StartingVehicle == "" {
		c.StartingVehicle = base.StartingVehicle
	}
	if c.StartingReputation == 0 {
		c.StartingReputation = base.StartingReputation
	}

	m, dm := &c.Messages, base.Messages
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&m.Welcome, dm.Welcome)
	fill(&m.NewOrder, dm.NewOrder)
	fill(&m.OrderInProgress, dm.OrderInProgress)
	fill(&m.DeliveryComplete, dm.DeliveryComplete)
	fill(&m.DeliveryFailed, dm.DeliveryFailed)
	fill(&m.NoActiveOrder, dm.NoActiveOrder)
	fill(&m.LevelUp, dm.LevelUp)
	fill(&m.VehicleUpgraded, dm.VehicleUpgraded)
	fill(&m.NoUpgrade, dm.NoUpgrade)
	fill(&m.StaffHired, dm.StaffHired)
	fill(&m.NotEnoughMoney, dm.NotEnoughMoney)
	fill(&m.PackagePickedUp, dm.PackagePickedUp)
	fill(&m.AlreadyCarrying, dm.AlreadyCarrying)
	fill(&m.NothingToDeliver, dm.NothingToDeliver)
}

// ValidateCityConfig validates a city configuration for correctness and playability
func ValidateCityConfig(config *CityConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}
	if config.StartingMoney < 0 {
		return fmt.Errorf("config validation: starting_money must be >= 0, got %d", config.StartingMoney)
	}
	if config.StartingReputation < 0 {
		return fmt.Errorf("config validation: starting_reputation must be >= 0, got %v", config.StartingReputation)
	}

	if len(config.DeliveryTypes) == 0 {
		return fmt.Errorf("config validation: at least one delivery type is required")
	}
	for name, dt := range config.DeliveryTypes {
		if dt.Reward <= 0 {
			return fmt.Errorf("config validation: delivery type %q reward must be positive, got %d", name, dt.Reward)
		}
		if dt.TimeLimit < MinTimeLimit {
			return fmt.Errorf("config validation: delivery type %q time_limit must be >= %d, got %d", name, MinTimeLimit, dt.TimeLimit)
		}
		if dt.Reputation < 0 {
			return fmt.Errorf("config validation: delivery type %q reputation must be >= 0, got %v", name, dt.Reputation)
		}
	}

	if len(config.Vehicles) == 0 {
		return fmt.Errorf("config validation: at least one vehicle tier is required")
	}
	if _, ok := config.Vehicles[config.StartingVehicle]; !ok {
		return fmt.Errorf("config validation: starting_vehicle %q is not in the vehicle catalog", config.StartingVehicle)
	}
	// Strictly increasing costs define upgrade order; duplicates make the
	// scan ambiguous.
	costs := make(map[int]string, len(config.Vehicles))
	for name, tier := range config.Vehicles {
		if tier.Cost < 0 {
			return fmt.Errorf("config validation: vehicle %q cost must be >= 0, got %d", name, tier.Cost)
		}
		if tier.Capacity <= 0 {
			return fmt.Errorf("config validation: vehicle %q capacity must be positive, got %d", name, tier.Capacity)
		}
		if other, dup := costs[tier.Cost]; dup {
			return fmt.Errorf("config validation: vehicles %q and %q share cost %d", other, name, tier.Cost)
		}
		costs[tier.Cost] = name
	}

	if config.PickupRadius < MinPickupRadius || config.PickupRadius > MaxPickupRadius {
		return fmt.Errorf("config validation: pickup_radius must be between %v and %v, got %v",
			MinPickupRadius, MaxPickupRadius, config.PickupRadius)
	}

	pickups, deliveries := 0, 0
	seenZoneIDs := make(map[string]bool, len(config.Zones))
	for i, zone := range config.Zones {
		if zone.ID == "" {
			return fmt.Errorf("config validation: zone %d has no id", i)
		}
		if seenZoneIDs[zone.ID] {
			return fmt.Errorf("config validation: duplicate zone id %q", zone.ID)
		}
		seenZoneIDs[zone.ID] = true
		if zone.Radius < 0 {
			return fmt.Errorf("config validation: zone %q radius must be >= 0, got %v", zone.ID, zone.Radius)
		}
		switch zone.Kind {
		case ZonePickup:
			pickups++
		case ZoneDelivery:
			deliveries++
			if zone.Name == "" {
				return fmt.Errorf("config validation: delivery zone %q needs a destination name", zone.ID)
			}
		default:
			return fmt.Errorf("config validation: zone %q has unknown kind %q", zone.ID, zone.Kind)
		}
	}
	if pickups == 0 {
		return fmt.Errorf("config validation: at least one pickup zone is required")
	}
	if deliveries == 0 {
		return fmt.Errorf("config validation: at least one delivery zone is required")
	}

	// Validate message format strings
	if config.Messages.NewOrder != "" && strings.Count(config.Messages.NewOrder, "%s") != 2 {
		return fmt.Errorf("config validation: messages.new_order must contain two %%s verbs")
	}
	if config.Messages.DeliveryComplete != "" && !strings.Contains(config.Messages.DeliveryComplete, "%d") {
		return fmt.Errorf("config validation: messages.delivery_complete must contain %%d for the reward")
	}
	if config.Messages.LevelUp != "" && !strings.Contains(config.Messages.LevelUp, "%d") {
		return fmt.Errorf("config validation: messages.level_up must contain %%d for the level")
	}
	if config.Messages.VehicleUpgraded != "" && !strings.Contains(config.Messages.VehicleUpgraded, "%s") {
		return fmt.Errorf("config validation: messages.vehicle_upgraded must contain %%s for the tier name")
	}

	return nil
}

// DestinationNames returns the configured destination set, defaulting to the
// names of the delivery zones when the config does not list one explicitly.
func (c *CityConfig) DestinationNames() []string {
	if len(c.Destinations) > 0 {
		return c.Destinations
	}
	var names []string
	for _, zone := range c.Zones {
		if zone.Kind == ZoneDelivery {
			names = append(names, zone.Name)
		}
	}
	return names
}

// DeliveryTypeNames returns the delivery type keys in stable sorted order so
// random selection is reproducible under a seeded source.
func (c *CityConfig) DeliveryTypeNames() []string {
	names := make([]string, 0, len(c.DeliveryTypes))
	for name := range c.DeliveryTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VehicleOrder returns the vehicle tier keys sorted by ascending cost.
func (c *CityConfig) VehicleOrder() []string {
	names := make([]string, 0, len(c.Vehicles))
	for name := range c.Vehicles {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return c.Vehicles[names[i]].Cost < c.Vehicles[names[j]].Cost
	})
	return names
}

// ZoneByID looks up a zone by its identifier.
func (c *CityConfig) ZoneByID(id string) (Zone, bool) {
	for _, zone := range c.Zones {
		if zone.ID == id {
			return zone, true
		}
	}
	return Zone{}, false
}

// ZoneRadius returns the effective trigger radius for a zone.
func (c *CityConfig) ZoneRadius(zone Zone) float64 {
	if zone.Radius > 0 {
		return zone.Radius
	}
	if c.PickupRadius > 0 {
		return c.PickupRadius
	}
	return DefaultZoneRange
}
