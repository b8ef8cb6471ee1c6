package engine

import "testing"

// upgradeTestConfig trims the catalog to the canonical three-tier example.
func upgradeTestConfig() *CityConfig {
	config := DefaultCityConfig()
	config.Vehicles = map[string]VehicleTier{
		"bike":    {Speed: 1, Capacity: 1, Cost: 0},
		"scooter": {Speed: 1.2, Capacity: 2, Cost: 500},
		"van":     {Speed: 1.5, Capacity: 5, Cost: 2000},
	}
	return config
}

func TestUpgradeVehicle(t *testing.T) {
	eng, err := NewEngineWithSeed(upgradeTestConfig(), 1)
	if err != nil {
		t.Fatal(err)
	}
	eng.GetState().Money = 600

	tier, ok := eng.UpgradeVehicle()
	if !ok {
		t.Fatal("Expected an affordable upgrade")
	}
	if tier != "scooter" {
		t.Errorf("Expected scooter, got %q", tier)
	}
	if eng.GetState().Vehicle != "scooter" {
		t.Errorf("Expected vehicle scooter, got %q", eng.GetState().Vehicle)
	}
	if eng.GetState().Money != 100 {
		t.Errorf("Expected money 100 after debit, got %d", eng.GetState().Money)
	}

	// Second call: van costs 2000, only 100 left. Normal no-op outcome.
	if _, ok := eng.UpgradeVehicle(); ok {
		t.Error("Expected no affordable upgrade")
	}
	if eng.GetState().Money != 100 {
		t.Errorf("Expected money unchanged at 100, got %d", eng.GetState().Money)
	}
	if eng.GetState().Vehicle != "scooter" {
		t.Error("Expected vehicle unchanged")
	}
}

func TestUpgradeVehicle_SkipsToAffordable(t *testing.T) {
	eng, err := NewEngineWithSeed(upgradeTestConfig(), 1)
	if err != nil {
		t.Fatal(err)
	}
	// Rich enough for the van but the scooter comes first in ascending
	// cost order.
	eng.GetState().Money = 5000

	tier, _ := eng.UpgradeVehicle()
	if tier != "scooter" {
		t.Errorf("Expected the cheapest upgrade first, got %q", tier)
	}
}

func TestUpgradeVehicle_TopTier(t *testing.T) {
	eng, err := NewEngineWithSeed(upgradeTestConfig(), 1)
	if err != nil {
		t.Fatal(err)
	}
	eng.GetState().Vehicle = "van"
	eng.GetState().Money = 1000000

	if _, ok := eng.UpgradeVehicle(); ok {
		t.Error("Expected no upgrade beyond the top tier")
	}
}

func TestHireStaff(t *testing.T) {
	eng := newTestEngine(t)

	// cost = 200 + level*50 = 250 at level 1
	if eng.StaffCost() != 250 {
		t.Errorf("Expected staff cost 250 at level 1, got %d", eng.StaffCost())
	}

	eng.GetState().Money = 300
	repBefore := eng.GetState().Reputation

	if !eng.HireStaff() {
		t.Fatal("Expected hire to succeed")
	}
	if eng.GetState().Money != 50 {
		t.Errorf("Expected money 50 after hire, got %d", eng.GetState().Money)
	}
	if eng.GetState().Reputation != repBefore+2 {
		t.Errorf("Expected reputation +2, got delta %v", eng.GetState().Reputation-repBefore)
	}
}

func TestHireStaff_InsufficientFunds(t *testing.T) {
	eng := newTestEngine(t)

	eng.GetState().Money = 100
	repBefore := eng.GetState().Reputation

	if eng.HireStaff() {
		t.Fatal("Expected hire to fail")
	}
	if eng.GetState().Money != 100 {
		t.Error("Expected money unchanged")
	}
	if eng.GetState().Reputation != repBefore {
		t.Error("Expected reputation unchanged")
	}
}

func TestHireStaff_CostScalesWithLevel(t *testing.T) {
	eng := newTestEngine(t)

	eng.GetState().Level = 5
	if eng.StaffCost() != 450 {
		t.Errorf("Expected staff cost 450 at level 5, got %d", eng.StaffCost())
	}
}
