package sim

// Debouncer conditions one raw button line: a 2-stage synchronizer feeds a
// stability counter, and the stable level only changes once the synchronized
// level has disagreed with it for a full debounce window. A one-tick-deep
// history register makes the rising edge visible for exactly one tick.
//
// The zero value is a released button.
type Debouncer struct {
	sync0  bool // first synchronizer stage
	sync1  bool // second synchronizer stage
	stable bool
	prev   bool // stable, one tick ago
	count  uint32
}

// step advances the debouncer by one tick. Everything on the right-hand side
// reads d, the prior-tick snapshot; the returned value is the commit.
func (d Debouncer) step(raw bool, debounceTicks uint32) Debouncer {
	n := d
	n.sync0 = raw
	n.sync1 = d.sync0
	n.prev = d.stable

	if d.sync1 == d.stable {
		n.count = 0
	} else {
		n.count = d.count + 1
		if n.count >= debounceTicks {
			n.stable = d.sync1
			n.count = 0
		}
	}
	return n
}

// Level reports the debounced button level.
func (d Debouncer) Level() bool { return d.stable }

// Edge reports a rising edge of the debounced level. It is true for exactly
// one tick, the tick after the stable level commits a 0->1 change.
func (d Debouncer) Edge() bool { return d.stable && !d.prev }
