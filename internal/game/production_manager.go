package game

import (
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/events"
	"github.com/rs/zerolog"
)

// ProductionManager applies army growth at the end of each turn.
type ProductionManager struct {
	eventBus *events.EventBus
	gameID   string
	logger   zerolog.Logger
}

// NewProductionManager creates a new production manager
func NewProductionManager(eventBus *events.EventBus, gameID string, logger zerolog.Logger) *ProductionManager {
	return &ProductionManager{
		eventBus: eventBus,
		gameID:   gameID,
		logger:   logger.With().Str("component", "ProductionManager").Logger(),
	}
}

// ProductionTotals counts the armies added or removed in one growth step.
type ProductionTotals struct {
	Generals int
	Cities   int
	Land     int
	Swamps   int
}

func (t ProductionTotals) any() bool {
	return t.Generals > 0 || t.Cities > 0 || t.Land > 0 || t.Swamps > 0
}

// ProcessTurnProduction grows armies for the turn that just started. turn is
// the already incremented turn number.
func (pm *ProductionManager) ProcessTurnProduction(m *Match, turn int) ProductionTotals {
	var totals ProductionTotals
	b := m.Board
	r := m.ruleset

	if turn%r.RecruitRate == 0 {
		for _, g := range m.Generals {
			if g == DeadGeneral {
				continue
			}
			b.IncrementArmy(g)
			totals.Generals++
		}
		for _, c := range m.Cities {
			if b.OwnerAt(c).IsPlayer() || (m.CityRegen && b.ArmyAt(c) < r.MinCityArmy) {
				b.IncrementArmy(c)
				totals.Cities++
			}
		}
		for _, s := range m.Swamps {
			if b.OwnerAt(s).IsPlayer() && b.ArmyAt(s) > 0 {
				b.DecrementArmy(s)
				totals.Swamps++
			}
		}
	}

	if turn%r.FarmRate == 0 {
		for i := 0; i < b.Size(); i++ {
			if b.OwnerAt(i).IsPlayer() {
				b.IncrementArmy(i)
				totals.Land++
			}
		}
	}

	if totals.any() {
		pm.logger.Debug().
			Int("turn", turn).
			Int("general_production", totals.Generals).
			Int("city_production", totals.Cities).
			Int("land_production", totals.Land).
			Int("swamp_loss", totals.Swamps).
			Msg("Turn production complete")
		pm.publishProductionEvent(totals, turn)
	}
	return totals
}

func (pm *ProductionManager) publishProductionEvent(t ProductionTotals, turn int) {
	if pm.eventBus == nil {
		return
	}
	pm.eventBus.Publish(events.NewProductionAppliedEvent(pm.gameID, t.Generals, t.Cities, t.Land, t.Swamps, turn))
}
