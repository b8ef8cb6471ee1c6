// Command simulate runs a headless auto-player against a city configuration
// and prints how the economy progresses. It is the balancing tool for city
// authors: run a few hundred orders on a fixed seed and compare money, level
// and vehicle progression between revisions of a config file.
//
// The balance subcommand prints static per-type economics without running a
// simulation.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/deliverydash/deliverydash/game/config"
	"github.com/deliverydash/deliverydash/game/engine"
)

// unitsPerSecond is the renderer's distance unit: a speed-1 vehicle covers
// 60 world units a second.
const unitsPerSecond = 60.0

// SimulationSummary aggregates one simulated play-through.
type SimulationSummary struct {
	ConfigName     string
	OrdersRun      int
	Completed      int
	Failed         int
	FinalMoney     int
	FinalLevel     int
	FinalRep       float64
	FinalVehicle   string
	TotalTimeBonus int
	AvgCompletion  float64
	Upgrades       []string
}

func main() {
	cmd := &cli.Command{
		Name:  "simulate",
		Usage: "Headless auto-player and balance analyzer for city configurations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Value: "configs",
				Usage: "Directory containing city configuration files",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Simulate an auto-player completing orders",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "downtown",
						Usage: "City configuration ID",
					},
					&cli.IntFlag{
						Name:  "orders",
						Value: 50,
						Usage: "Number of orders to run",
					},
					&cli.IntFlag{
						Name:  "seed",
						Value: 1,
						Usage: "RNG seed for reproducible runs",
					},
					&cli.StringFlag{
						Name:  "tuning",
						Value: "tuning.yaml",
						Usage: "YAML file overriding economy tuning (missing file keeps defaults)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					manager, err := config.NewManager(cmd.String("config-dir"))
					if err != nil {
						return err
					}
					cityConfig, err := manager.LoadConfig(cmd.String("config"))
					if err != nil {
						return err
					}
					tuning, err := engine.LoadTuning(cmd.String("tuning"))
					if err != nil {
						return err
					}

					summary, err := runSimulation(cityConfig, tuning, int(cmd.Int("orders")), int64(cmd.Int("seed")))
					if err != nil {
						return err
					}
					printSummary(summary)
					return nil
				},
			},
			{
				Name:  "balance",
				Usage: "Print static per-type economics for a city",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "downtown",
						Usage: "City configuration ID",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					manager, err := config.NewManager(cmd.String("config-dir"))
					if err != nil {
						return err
					}
					cityConfig, err := manager.LoadConfig(cmd.String("config"))
					if err != nil {
						return err
					}
					printBalance(cityConfig)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// runSimulation plays orders back to back on a virtual clock. The auto-player
// always drives straight lines: current position to the nearest warehouse,
// then warehouse to the destination zone, at the current vehicle's speed.
func runSimulation(cityConfig *engine.CityConfig, tuning engine.Tuning, orders int, seed int64) (*SimulationSummary, error) {
	eng, err := engine.NewEngineWithSeed(cityConfig, seed)
	if err != nil {
		return nil, err
	}
	if err := eng.SetTuning(tuning); err != nil {
		return nil, err
	}

	// Virtual clock so completion times come from simulated travel, not
	// wall time.
	base := time.Now()
	elapsed := 0.0
	eng.SetClock(func() time.Time {
		return base.Add(time.Duration(elapsed * float64(time.Second)))
	})

	summary := &SimulationSummary{
		ConfigName: cityConfig.Name,
		OrdersRun:  orders,
	}

	totalCompletion := 0.0

	for i := 0; i < orders; i++ {
		if !eng.StartRun() {
			continue
		}

		state := eng.GetState()
		order := state.CurrentOrder
		if order == nil {
			continue
		}

		speed := cityConfig.Vehicles[state.Vehicle].Speed
		if speed <= 0 {
			speed = 1
		}

		// Drive to the nearest warehouse and pick up.
		pickup, dist, ok := engine.NearestZone(cityConfig, state.PlayerPos, engine.ZonePickup)
		if !ok {
			return nil, fmt.Errorf("no pickup zones in %s", cityConfig.Name)
		}
		elapsed += dist / (speed * unitsPerSecond)
		eng.PlayerMoved(pickup.Position)
		if !eng.TryPickup() {
			summary.Failed++
			eng.FailOrder("pickup unreachable")
			continue
		}

		// Drive to the destination zone and deliver.
		target, ok := destinationZone(cityConfig, order.Destination)
		if !ok {
			// Destination without a matching zone; deliver at the
			// nearest delivery zone instead.
			target, _, ok = engine.NearestZone(cityConfig, pickup.Position, engine.ZoneDelivery)
			if !ok {
				return nil, fmt.Errorf("no delivery zones in %s", cityConfig.Name)
			}
		}
		elapsed += pickup.Position.DistanceTo(target.Position) / (speed * unitsPerSecond)
		eng.PlayerMoved(target.Position)

		completed := eng.TryDeliver()
		if completed == nil {
			summary.Failed++
			eng.FailOrder("delivery rejected")
			continue
		}

		summary.Completed++
		summary.TotalTimeBonus += completed.TimeBonus
		totalCompletion += completed.CompletionTime

		// Reinvest whenever possible.
		if tier, upgraded := eng.UpgradeVehicle(); upgraded {
			summary.Upgrades = append(summary.Upgrades, fmt.Sprintf("order %d: %s", i+1, tier))
		}
	}

	final := eng.GetState()
	summary.FinalMoney = final.Money
	summary.FinalLevel = final.Level
	summary.FinalRep = final.Reputation
	summary.FinalVehicle = final.Vehicle
	if summary.Completed > 0 {
		summary.AvgCompletion = totalCompletion / float64(summary.Completed)
	}

	return summary, nil
}

// destinationZone resolves an order destination to its delivery zone.
func destinationZone(cityConfig *engine.CityConfig, destination string) (engine.Zone, bool) {
	for _, zone := range cityConfig.Zones {
		if zone.Kind == engine.ZoneDelivery && zone.Name == destination {
			return zone, true
		}
	}
	return engine.Zone{}, false
}

func printSummary(s *SimulationSummary) {
	fmt.Printf("=== %s: %d orders ===\n", s.ConfigName, s.OrdersRun)
	fmt.Printf("Completed: %d  Failed: %d\n", s.Completed, s.Failed)
	fmt.Printf("Final money: $%d\n", s.FinalMoney)
	fmt.Printf("Final level: %d (reputation %.0f)\n", s.FinalLevel, s.FinalRep)
	fmt.Printf("Final vehicle: %s\n", s.FinalVehicle)
	fmt.Printf("Avg completion: %.1fs  Total time bonus: %d\n", s.AvgCompletion, s.TotalTimeBonus)
	for _, upgrade := range s.Upgrades {
		fmt.Printf("Upgrade at %s\n", upgrade)
	}
}

// printBalance prints static economics: reward per second, reputation per
// type, and the cumulative earnings needed per vehicle tier.
func printBalance(cityConfig *engine.CityConfig) {
	fmt.Printf("=== %s ===\n", cityConfig.Name)

	typeNames := make([]string, 0, len(cityConfig.DeliveryTypes))
	for name := range cityConfig.DeliveryTypes {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	fmt.Println("\nDelivery types:")
	for _, name := range typeNames {
		dt := cityConfig.DeliveryTypes[name]
		perSecond := float64(dt.Reward) / float64(dt.TimeLimit)
		fmt.Printf("  %-10s $%-4d %4ds  %.3f $/s  +%.0f rep\n",
			name, dt.Reward, dt.TimeLimit, perSecond, dt.Reputation)
	}

	vehicleNames := cityConfig.VehicleOrder()
	fmt.Println("\nVehicle ladder:")
	for _, name := range vehicleNames {
		tier := cityConfig.Vehicles[name]
		fmt.Printf("  %-10s $%-5d speed %.1f capacity %d\n",
			name, tier.Cost, tier.Speed, tier.Capacity)
	}

	pickups := engine.CountZones(cityConfig, engine.ZonePickup)
	deliveries := engine.CountZones(cityConfig, engine.ZoneDelivery)
	fmt.Printf("\nZones: %d pickup, %d delivery\n", pickups, deliveries)
}
