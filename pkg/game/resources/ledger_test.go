package resources

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"stationbuilder/pkg/logger"
)

func TestDeductAndRefund(t *testing.T) {
	l := NewLedger(Amounts{Power: 150, Oxygen: 30}, nil)
	cost := Amounts{Power: 100, Oxygen: 25}

	if !l.CanAfford(cost) {
		t.Fatal("CanAfford = false, want true")
	}
	if err := l.Deduct(cost); err != nil {
		t.Fatalf("Deduct: %v", err)
	}
	if l.Get(Power) != 50 || l.Get(Oxygen) != 5 {
		t.Errorf("totals = %v, want power:50 oxygen:5", l.Totals())
	}

	l.Refund(cost)
	if l.Get(Power) != 150 || l.Get(Oxygen) != 30 {
		t.Errorf("totals after refund = %v, want power:150 oxygen:30", l.Totals())
	}
}

func TestDeductInsufficientChangesNothing(t *testing.T) {
	l := NewLedger(Amounts{Power: 10}, nil)
	err := l.Deduct(Amounts{Power: 100, Oxygen: 25})
	if !errors.Is(err, ErrInsufficient) {
		t.Fatalf("Deduct = %v, want ErrInsufficient", err)
	}
	if l.Get(Power) != 10 || l.Get(Oxygen) != 0 {
		t.Errorf("totals = %v, want unchanged", l.Totals())
	}
}

func TestRefundIgnoresCapacity(t *testing.T) {
	l := NewLedger(Amounts{Power: 100}, Amounts{Power: 100})
	if err := l.Deduct(Amounts{Power: 40}); err != nil {
		t.Fatal(err)
	}
	l.Add(Power, 30)
	l.Refund(Amounts{Power: 40})
	if got := l.Get(Power); got != 130 {
		t.Errorf("Get(Power) = %v, want 130", got)
	}
	l.Add(Power, 1)
	if got := l.Get(Power); got != 100 {
		t.Errorf("Get(Power) after Add = %v, want clamped to 100", got)
	}
}

func TestConsume(t *testing.T) {
	l := NewLedger(Amounts{Oxygen: 1}, Amounts{Oxygen: 100})
	if !l.Consume(Oxygen, 0.5) {
		t.Error("Consume(0.5) = false, want true")
	}
	if l.Consume(Oxygen, 2) {
		t.Error("Consume(2) = true, want false")
	}
	if got := l.Get(Oxygen); got != 0 {
		t.Errorf("Get(Oxygen) = %v, want 0 after failed consume", got)
	}
}

type fixedRates struct {
	gen, cons Amounts
}

func (f fixedRates) Rates() (Amounts, Amounts) {
	return f.gen, f.cons
}

func TestTickAppliesRates(t *testing.T) {
	l := NewLedger(Amounts{Power: 50, Oxygen: 50}, Amounts{Power: 100, Oxygen: 100})
	engine := fixedRates{gen: Amounts{Power: 0.5}, cons: Amounts{Oxygen: 0.2}}
	lifeSupport := fixedRates{gen: Amounts{Oxygen: 0.3}, cons: Amounts{Power: 0.1}}

	depleted := Tick(l, []Producer{engine, lifeSupport}, 10)
	if len(depleted) != 0 {
		t.Errorf("depleted = %v, want none", depleted)
	}
	if got := l.Get(Power); got != 54 {
		t.Errorf("Get(Power) = %v, want 54", got)
	}
	if got := l.Get(Oxygen); got != 51 {
		t.Errorf("Get(Oxygen) = %v, want 51", got)
	}
}

func TestTickReportsDepletion(t *testing.T) {
	l := NewLedger(Amounts{Power: 0.05}, Amounts{Power: 100})
	bridge := fixedRates{cons: Amounts{Power: 0.1}}
	depleted := Tick(l, []Producer{bridge, bridge}, 1)
	if len(depleted) != 1 || depleted[0] != Power {
		t.Errorf("depleted = %v, want [power]", depleted)
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want Level
	}{
		{100, LevelNormal},
		{50.1, LevelNormal},
		{50, LevelLow},
		{25, LevelWarning},
		{10, LevelCritical},
		{0.5, LevelCritical},
		{0, LevelDepleted},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.pct); got != tt.want {
			t.Errorf("LevelFor(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestMonitorReportsTransitionsOnce(t *testing.T) {
	l := NewLedger(Amounts{Power: 100, Oxygen: 100}, Amounts{Power: 100, Oxygen: 100})
	m := NewMonitor()
	if alerts := m.Check(l); len(alerts) != 0 {
		t.Fatalf("Check at full = %v, want none", alerts)
	}

	l.Consume(Power, 80)
	alerts := m.Check(l)
	if len(alerts) != 1 || alerts[0].To != LevelWarning || alerts[0].Resource != Power {
		t.Fatalf("Check after drain = %+v, want power warning", alerts)
	}
	if again := m.Check(l); len(again) != 0 {
		t.Errorf("second Check = %v, want none", again)
	}

	l.Add(Power, 70)
	alerts = m.Check(l)
	if len(alerts) != 1 || !alerts[0].Restored() {
		t.Errorf("Check after refill = %+v, want restored alert", alerts)
	}
}

func TestMonitorLogsAsResourcesComponent(t *testing.T) {
	logger.Discard()
	hook := logtest.NewLocal(logger.Log)
	level := logger.Log.GetLevel()
	logger.Log.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		logger.Log.SetLevel(level)
		logger.Log.ReplaceHooks(make(logrus.LevelHooks))
	})

	l := NewLedger(Amounts{Power: 20}, Amounts{Power: 100})
	if alerts := NewMonitor().Check(l); len(alerts) != 1 {
		t.Fatalf("Check at 20%% = %v, want one alert", alerts)
	}
	e := hook.LastEntry()
	if e == nil {
		t.Fatal("no log entry for a level change")
	}
	if got := e.Data["component"]; got != "resources" {
		t.Errorf("component = %v, want resources", got)
	}
	if got := e.Data["to"]; got != LevelWarning.String() {
		t.Errorf("to = %v, want %s", got, LevelWarning)
	}
}

func TestAmountsString(t *testing.T) {
	a := Amounts{Power: 100, Oxygen: 25}
	if got, want := a.String(), "oxygen:25 power:100"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
