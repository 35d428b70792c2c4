package lines

// CellSink receives every committed cell write, in write order.
type CellSink interface {
	CellChanged(x, y, value int)
}

// CutSink is notified once per line-detection pass that removes balls.
type CutSink interface {
	LinesCut()
}

// CellSinkFunc adapts a plain function to CellSink.
type CellSinkFunc func(x, y, value int)

// CellChanged calls f(x, y, value).
func (f CellSinkFunc) CellChanged(x, y, value int) { f(x, y, value) }

// CutSinkFunc adapts a plain function to CutSink.
type CutSinkFunc func()

// LinesCut calls f().
func (f CutSinkFunc) LinesCut() { f() }

type nopSink struct{}

func (nopSink) CellChanged(int, int, int) {}
func (nopSink) LinesCut()                 {}

// Rand is the subset of *rand.Rand the engine draws from.
type Rand interface {
	Intn(n int) int
}
