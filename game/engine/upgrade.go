package engine

import "fmt"

// UpgradeVehicle scans the vehicle catalog in ascending-cost order for the
// first tier that is both an upgrade over the current one and affordable.
// Returns the tier name and true on success. Finding no affordable upgrade
// is a normal outcome, not an error: the player is notified and false is
// returned with the state unchanged.
func (e *GameEngine) UpgradeVehicle() (string, bool) {
	current := e.config.Vehicles[e.state.Vehicle]

	for _, name := range e.config.VehicleOrder() {
		tier := e.config.Vehicles[name]
		if tier.Cost <= current.Cost {
			continue
		}
		if e.state.Money < tier.Cost {
			continue
		}

		e.state.Money -= tier.Cost
		e.state.Vehicle = name

		e.emit(SeveritySuccess, fmt.Sprintf(e.config.Messages.VehicleUpgraded, name))
		return name, true
	}

	e.emit(SeverityInfo, e.config.Messages.NoUpgrade)
	return "", false
}

// StaffCost returns the current price of hiring a staff member, which scales
// with the player's level.
func (e *GameEngine) StaffCost() int {
	return e.tuning.StaffBaseCost + e.state.Level*e.tuning.StaffCostPerLevel
}

// HireStaff debits the level-scaled hire cost and credits reputation.
// Returns false with the state unchanged when funds are insufficient.
func (e *GameEngine) HireStaff() bool {
	cost := e.StaffCost()
	if e.state.Money < cost {
		e.emit(SeverityError, e.config.Messages.NotEnoughMoney)
		return false
	}

	e.state.Money -= cost
	e.state.Reputation += e.tuning.StaffReputationGain

	e.emit(SeveritySuccess, e.config.Messages.StaffHired)
	return true
}
