package tzdb

import (
	"math"

	"github.com/lockels/temporal/internal/tzrule"
	"github.com/lockels/temporal/tzif"
)

// alpha and omega bound the spans of zones in effect before the first
// and after the last known transition.
const (
	alpha = math.MinInt64
	omega = math.MaxInt64
)

type zone struct {
	name   string
	offset int64 // seconds east of UTC
	dst    bool
}

// table is the queryable form of one zone's TZif data: explicit
// transitions for the recorded past plus an optional footer rule for
// instants beyond them.
type table struct {
	trans []int64 // transition instants, Unix seconds, ascending
	types []uint8 // zone index taking effect at trans[i]
	zones []zone
	first int // zone in effect before trans[0]
	rule  *tzrule.Rule
}

func fromTZif(d tzif.Data) *table {
	t := &table{
		trans: d.TransitionTimes,
		types: d.TransitionTypes,
		zones: make([]zone, len(d.Types)),
	}
	for i, lt := range d.Types {
		t.zones[i] = zone{
			name:   d.Designation(lt.DesignationIndex),
			offset: int64(lt.OffsetSeconds),
			dst:    lt.DST,
		}
	}
	t.first = t.firstZoneIndex()
	if d.TZString != "" {
		// A malformed footer loses only the ability to answer past
		// the last transition, not the whole zone.
		if r, err := tzrule.Parse(d.TZString); err == nil {
			t.rule = r
		}
	}
	return t
}

// span is a maximal run of instants sharing one offset regime.
// start and end may be the alpha and omega sentinels.
type span struct {
	zone  zone
	start int64
	end   int64
}

// lookup returns the zone in effect at sec together with the span of
// instants sharing it.
func (t *table) lookup(sec int64) span {
	if len(t.trans) == 0 {
		if t.rule != nil {
			return t.ruleSpan(sec, alpha)
		}
		return span{zone: t.zones[0], start: alpha, end: omega}
	}
	if sec < t.trans[0] {
		return span{zone: t.zones[t.first], start: alpha, end: t.trans[0]}
	}
	last := len(t.trans) - 1
	if sec >= t.trans[last] {
		if t.rule != nil {
			return t.ruleSpan(sec, t.trans[last])
		}
		return span{zone: t.zones[t.types[last]], start: t.trans[last], end: omega}
	}

	// Largest i with trans[i] <= sec. The bounds checks above
	// guarantee 0 <= i < last.
	lo, hi := 0, last
	for hi-lo > 1 {
		m := lo + (hi-lo)/2
		if t.trans[m] <= sec {
			lo = m
		} else {
			hi = m
		}
	}
	return span{zone: t.zones[t.types[lo]], start: t.trans[lo], end: t.trans[hi]}
}

// ruleSpan answers from the footer rule, clamping the span so it never
// reaches back before the last explicit transition.
func (t *table) ruleSpan(sec, clamp int64) span {
	z, start, end := t.rule.Lookup(sec)
	if start < clamp {
		start = clamp
	}
	return span{
		zone:  zone{name: z.Name, offset: z.Offset, dst: z.DST},
		start: start,
		end:   end,
	}
}

// spansOverlapping returns, in order, every span intersecting
// [lo, hi].
func (t *table) spansOverlapping(lo, hi int64) []span {
	var spans []span
	sec := lo
	for {
		s := t.lookup(sec)
		spans = append(spans, s)
		if s.end == omega || s.end > hi {
			return spans
		}
		sec = s.end
	}
}

// firstZoneIndex picks the zone in effect before the first transition,
// following the conventions of the reference TZif readers: the first
// zone if no transition ever selects it, otherwise the closest
// standard time zone preceding the first transition's type.
func (t *table) firstZoneIndex() int {
	used := false
	for _, ti := range t.types {
		if ti == 0 {
			used = true
			break
		}
	}
	if !used {
		return 0
	}
	if len(t.trans) > 0 && t.zones[t.types[0]].dst {
		for i := int(t.types[0]) - 1; i >= 0; i-- {
			if !t.zones[i].dst {
				return i
			}
		}
	}
	for i := range t.zones {
		if !t.zones[i].dst {
			return i
		}
	}
	return 0
}
