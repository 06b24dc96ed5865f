package panel

// busRecorder observes every line transition of a Bus and decodes the
// protocol: DClk pulses bracketed by LE become commands, GClk rising edges
// capture the data and address line levels of each shifted column, and DClk
// pulses with LE low capture the configuration payload bits.
type busRecorder struct {
	le         bool
	dclkPulses int

	Commands  []int    // LE-framed pulse counts, in order
	GClkRises int      // total multiplex clock pulses
	Cols      [][6]bool // data line levels at each GClk rise
	Addrs     []int    // address value at each GClk rise
	CfgBits   []bool   // chain 1 red level at each LE-low DClk rise

	data [6]bool
	addr int
}

const (
	lineGClk = iota
	lineDClk
	lineLE
	lineAddr0 // addr lines occupy lineAddr0..lineAddr0+3
	lineData0 = lineAddr0 + 4
)

type recLine struct {
	r     *busRecorder
	kind  int
	level bool
}

func (l *recLine) Set(high bool) error {
	rising := high && !l.level
	l.level = high
	r := l.r
	switch {
	case l.kind == lineGClk:
		if rising {
			r.GClkRises++
			r.Cols = append(r.Cols, r.data)
			r.Addrs = append(r.Addrs, r.addr)
		}
	case l.kind == lineDClk:
		if rising {
			if r.le {
				r.dclkPulses++
			} else {
				r.CfgBits = append(r.CfgBits, r.data[0])
			}
		}
	case l.kind == lineLE:
		if high && !r.le {
			r.dclkPulses = 0
		}
		if !high && r.le {
			r.Commands = append(r.Commands, r.dclkPulses)
		}
		r.le = high
	case l.kind >= lineData0:
		r.data[l.kind-lineData0] = high
	default:
		bit := l.kind - lineAddr0
		if high {
			r.addr |= 1 << bit
		} else {
			r.addr &^= 1 << bit
		}
	}
	return nil
}

func newRecorderBus() (*Bus, *busRecorder) {
	r := &busRecorder{}
	b := &Bus{
		GClk: &recLine{r: r, kind: lineGClk},
		DClk: &recLine{r: r, kind: lineDClk},
		LE:   &recLine{r: r, kind: lineLE},
	}
	for i := range b.Addr {
		b.Addr[i] = &recLine{r: r, kind: lineAddr0 + i}
	}
	for i := range b.Data {
		b.Data[i] = &recLine{r: r, kind: lineData0 + i}
	}
	return b, r
}
