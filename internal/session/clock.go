package session

import "time"

// Clock abstracts time for the idle monitor so tests can simulate hours of
// inactivity without sleeping.
type Clock interface {
	Now() time.Time
}

// Ticker abstracts time.Ticker for the same reason.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// TickerFactory creates tickers with the given interval.
type TickerFactory func(d time.Duration) Ticker

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) Chan() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()                  { r.t.Stop() }

func newRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}
