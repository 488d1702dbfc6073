package resources

import (
	"github.com/sirupsen/logrus"

	"stationbuilder/pkg/logger"
)

// Producer is anything that generates and consumes resources each second, such as a room.
type Producer interface {
	Rates() (generation, consumption Amounts)
}

// Tick applies dt seconds of generation then consumption for every producer. It returns the
// resources that ran dry during this tick.
func Tick(l *Ledger, producers []Producer, dt float64) []Resource {
	var depleted []Resource
	seen := make(map[Resource]bool)
	for _, p := range producers {
		gen, cons := p.Rates()
		for _, r := range All() {
			if v, ok := gen[r]; ok {
				l.Add(r, v*dt)
			}
		}
		for _, r := range All() {
			v, ok := cons[r]
			if !ok {
				continue
			}
			if !l.Consume(r, v*dt) && !seen[r] {
				seen[r] = true
				depleted = append(depleted, r)
			}
		}
	}
	return depleted
}

// Level is a coarse band of a resource percentage.
type Level int

// Level constants, from healthy to empty
const (
	LevelNormal Level = iota
	LevelLow
	LevelWarning
	LevelCritical
	LevelDepleted
)

// String returns the string representation of a level
func (lv Level) String() string {
	switch lv {
	case LevelNormal:
		return "normal"
	case LevelLow:
		return "low"
	case LevelWarning:
		return "warning"
	case LevelCritical:
		return "critical"
	case LevelDepleted:
		return "depleted"
	default:
		return "unknown"
	}
}

// Threshold percentages. A resource at or below a value is in that band.
const (
	LowPercent      = 50.0
	WarningPercent  = 25.0
	CriticalPercent = 10.0
)

// LevelFor classifies a percentage
func LevelFor(percent float64) Level {
	switch {
	case percent <= 0:
		return LevelDepleted
	case percent <= CriticalPercent:
		return LevelCritical
	case percent <= WarningPercent:
		return LevelWarning
	case percent <= LowPercent:
		return LevelLow
	default:
		return LevelNormal
	}
}

// Alert reports that a resource moved into a different band.
type Alert struct {
	Resource Resource
	From     Level
	To       Level
	Percent  float64
}

// Restored returns true when the resource climbed back to normal
func (a Alert) Restored() bool {
	return a.To == LevelNormal && a.From != LevelNormal
}

// Monitor remembers the last band per capped resource and reports changes.
type Monitor struct {
	levels map[Resource]Level
}

// NewMonitor creates a monitor that assumes every resource starts normal
func NewMonitor() *Monitor {
	return &Monitor{levels: make(map[Resource]Level)}
}

// Check compares the ledger with the last seen bands. Uncapped resources are never reported.
func (m *Monitor) Check(l *Ledger) []Alert {
	var alerts []Alert
	for _, r := range All() {
		if l.Capacity(r) <= 0 {
			continue
		}
		pct := l.Percentage(r)
		now := LevelFor(pct)
		prev := m.levels[r]
		if now == prev {
			continue
		}
		m.levels[r] = now
		alerts = append(alerts, Alert{Resource: r, From: prev, To: now, Percent: pct})
		logger.For("resources").WithFields(logrus.Fields{
			"resource": r,
			"from":     prev.String(),
			"to":       now.String(),
			"percent":  pct,
		}).Debug("resource level changed")
	}
	return alerts
}

// Level returns the last band reported for r
func (m *Monitor) Level(r Resource) Level {
	return m.levels[r]
}
