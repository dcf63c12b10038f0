package synthetic

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"stock-snapshot/internal/application"
	"stock-snapshot/internal/domain"
)

const (
	defaultBasePrice = 100.0
	minVolume        = 20_000_000
	maxVolume        = 80_000_000
	dateLayout       = "2006-01-02"
)

// BasePrices seeds the demo quotes; unknown symbols start at 100.
var BasePrices = map[domain.Symbol]float64{
	"AAPL":  185,
	"MSFT":  420,
	"GOOGL": 175,
	"AMZN":  220,
	"TSLA":  175,
	"NVDA":  140,
}

type Clock interface {
	Now() time.Time
}

type Rand interface {
	Float64() float64
	Int63n(n int64) int64
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

type RealRand struct{ *rand.Rand }

func (r RealRand) Float64() float64     { return r.Rand.Float64() }
func (r RealRand) Int63n(n int64) int64 { return r.Rand.Int63n(n) }

// NewRealRand seeds from the current time.
func NewRealRand() RealRand {
	return RealRand{rand.New(rand.NewSource(time.Now().UnixNano()))}
}

type Generator struct {
	rand        Rand
	clock       Clock
	historyDays int
	basePrices  map[domain.Symbol]float64
}

var _ application.DemoGenerator = (*Generator)(nil)

func NewGenerator(rnd Rand, clock Clock, historyDays int) *Generator {
	if rnd == nil {
		rnd = NewRealRand()
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Generator{rand: rnd, clock: clock, historyDays: historyDays, basePrices: BasePrices}
}

func (g *Generator) Record(sym domain.Symbol) domain.StockRecord {
	q := g.Quote(sym)
	return domain.NewStockRecord(q, g.History(q.Price, g.historyDays))
}

func (g *Generator) Quote(sym domain.Symbol) domain.Quote {
	base, ok := g.basePrices[sym]
	if !ok {
		base = defaultBasePrice
	}
	price := base + g.uniform(-5, 5)
	change := g.uniform(-3, 3)
	return domain.Quote{
		Symbol:           sym,
		Price:            round2(price),
		Change:           round2(change),
		ChangePercent:    round2(change / price * 100),
		Open:             round2(price - g.uniform(0, 2)),
		High:             round2(price + g.uniform(0, 3)),
		Low:              round2(price - g.uniform(0, 3)),
		Volume:           g.volume(),
		PrevClose:        round2(price - change),
		LatestTradingDay: g.clock.Now().Format(dateLayout),
	}
}

// History is a random walk over the last days calendar days starting at 90% of price, one bar per weekday.
// Weekend dates are skipped before anything is drawn.
func (g *Generator) History(price float64, days int) []domain.HistoryPoint {
	days = max(days, 0)
	out := make([]domain.HistoryPoint, 0, days)
	now := g.clock.Now()
	p := price * 0.9
	for i := 0; i < days; i++ {
		d := now.AddDate(0, 0, -(days - i))
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		delta := g.uniform(-0.03, 0.035) * p
		p = clamp(p+delta, p*0.5, p*1.5)
		vol := g.uniform(1, 4)
		out = append(out, domain.HistoryPoint{
			Date:   d.Format(dateLayout),
			Open:   round2(p - vol),
			High:   round2(p + vol + g.uniform(0, 2)),
			Low:    round2(p - vol - g.uniform(0, 2)),
			Close:  round2(p),
			Volume: g.volume(),
		})
	}
	return out
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.rand.Float64()
}

func (g *Generator) volume() int64 {
	return minVolume + g.rand.Int63n(maxVolume-minVolume+1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
