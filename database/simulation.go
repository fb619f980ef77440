package database

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Dragomitch/HDVParserDofus2Python-sub002/metrics"
	"github.com/Dragomitch/HDVParserDofus2Python-sub002/models"
	"gorm.io/gorm"
)

// SimulationConfig holds market simulation parameters
type SimulationConfig struct {
	StartDate          time.Time
	EndDate            time.Time
	DB                 *gorm.DB
	ObservationsPerDay int     // average observations per item and lot size
	Volatility         float64 // bound on daily price drift, 0.08 = +-8%
	Seed               int64   // rng seed, 0 picks a time-based one
}

// MarketSimulation generates a plausible price history for the catalog:
// per item and lot size a bounded random walk, continued from the latest
// recorded price when one exists.
type MarketSimulation struct {
	config     SimulationConfig
	items      []models.Item
	rng        *rand.Rand
	lastPrices map[uint]map[int]int64
	inserted   int
}

// NewMarketSimulation creates a simulation over the existing catalog
func NewMarketSimulation(config SimulationConfig) (*MarketSimulation, error) {
	if config.ObservationsPerDay <= 0 {
		config.ObservationsPerDay = 2
	}
	if config.Volatility <= 0 {
		config.Volatility = 0.08
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sim := &MarketSimulation{
		config:     config,
		rng:        rand.New(rand.NewSource(seed)),
		lastPrices: make(map[uint]map[int]int64),
	}

	if err := sim.loadExistingData(); err != nil {
		return nil, fmt.Errorf("failed to load existing data: %w", err)
	}
	return sim, nil
}

// loadExistingData loads the catalog and the latest recorded prices
func (s *MarketSimulation) loadExistingData() error {
	if err := s.config.DB.Find(&s.items).Error; err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}

	var rows []models.PriceEntry
	err := s.config.DB.
		Select("item_id", "quantity", "price").
		Order("entry_id asc").
		Find(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to load price entries: %w", err)
	}
	for _, e := range rows {
		if s.lastPrices[e.ItemID] == nil {
			s.lastPrices[e.ItemID] = make(map[int]int64)
		}
		s.lastPrices[e.ItemID][e.Quantity] = e.Price
	}

	slog.Info("simulation loaded", "items", len(s.items), "known_prices", len(rows))
	return nil
}

// Run walks the calendar day by day and writes the generated entries
func (s *MarketSimulation) Run() error {
	if len(s.items) == 0 {
		return fmt.Errorf("no items in database, seed first")
	}

	for day := s.config.StartDate; !day.After(s.config.EndDate); day = day.AddDate(0, 0, 1) {
		if err := s.simulateDay(day); err != nil {
			return fmt.Errorf("failed to simulate %s: %w", day.Format("2006-01-02"), err)
		}
	}

	slog.Info("simulation finished",
		"from", s.config.StartDate.Format("2006-01-02"),
		"to", s.config.EndDate.Format("2006-01-02"),
		"entries", s.inserted)
	return nil
}

// simulateDay generates and stores one day of market observations
func (s *MarketSimulation) simulateDay(day time.Time) error {
	var entries []models.PriceEntry

	for _, item := range s.items {
		for _, lot := range []int{models.LotSingle, models.LotTen, models.LotHundred} {
			// 0..2*avg observations, so some days stay quiet
			n := s.rng.Intn(s.config.ObservationsPerDay*2 + 1)
			for i := 0; i < n; i++ {
				at := s.randomMoment(day)
				entries = append(entries, models.PriceEntry{
					ItemID:     item.ItemID,
					Price:      s.nextPrice(item, lot),
					Quantity:   lot,
					ObservedAt: &at,
					CreatedAt:  at,
				})
			}
		}
	}

	if len(entries) == 0 {
		return nil
	}

	return s.config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entries).Error; err != nil {
			return err
		}
		s.inserted += len(entries)
		metrics.PriceEntriesInserted.Add(float64(len(entries)))
		return nil
	})
}

// nextPrice advances the random walk for one item and lot size
func (s *MarketSimulation) nextPrice(item models.Item, lot int) int64 {
	last, ok := s.lastPrices[item.ItemID][lot]
	if !ok {
		unit, found := seedUnitPrices[item.GameID]
		if !found {
			unit = 100
		}
		last = unit * int64(lot)
	}

	drift := 1 + (s.rng.Float64()*2-1)*s.config.Volatility
	next := int64(float64(last) * drift)
	if next < 1 {
		next = 1
	}

	if s.lastPrices[item.ItemID] == nil {
		s.lastPrices[item.ItemID] = make(map[int]int64)
	}
	s.lastPrices[item.ItemID][lot] = next
	return next
}

// randomMoment spreads observations across auction-house peak hours
func (s *MarketSimulation) randomMoment(day time.Time) time.Time {
	hour := 10 + s.rng.Intn(13)
	minute := s.rng.Intn(60)
	second := s.rng.Intn(60)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, day.Location())
}

// RunSimulation generates history between two dates with default settings
func RunSimulation(db *gorm.DB, startDate, endDate time.Time) error {
	sim, err := NewMarketSimulation(SimulationConfig{
		DB:        db,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return err
	}
	return sim.Run()
}
