package appointment

// Period groups the bookable slots of a day.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

type periodSlots struct {
	period Period
	labels []string
}

// SlotCatalog is the fixed set of bookable time labels. It is built once at
// startup and never mutated; every accessor hands out copies.
type SlotCatalog struct {
	periods []periodSlots
	index   map[string]Period
}

func NewSlotCatalog() *SlotCatalog {
	return newSlotCatalog([]periodSlots{
		{PeriodMorning, []string{"08:00 AM", "09:00 AM", "10:00 AM", "11:00 AM"}},
		{PeriodAfternoon, []string{"12:00 PM", "01:00 PM", "02:00 PM", "03:00 PM"}},
		{PeriodEvening, []string{"04:00 PM", "05:00 PM", "06:00 PM", "07:00 PM"}},
	})
}

func newSlotCatalog(periods []periodSlots) *SlotCatalog {
	c := &SlotCatalog{index: make(map[string]Period)}
	for _, p := range periods {
		labels := append([]string(nil), p.labels...)
		c.periods = append(c.periods, periodSlots{period: p.period, labels: labels})
		for _, l := range labels {
			c.index[l] = p.period
		}
	}
	return c
}

func (c *SlotCatalog) Periods() []Period {
	out := make([]Period, 0, len(c.periods))
	for _, p := range c.periods {
		out = append(out, p.period)
	}
	return out
}

// Slots returns the ordered labels of one period, nil for an unknown period.
func (c *SlotCatalog) Slots(period Period) []string {
	for _, p := range c.periods {
		if p.period == period {
			return append([]string(nil), p.labels...)
		}
	}
	return nil
}

func (c *SlotCatalog) Contains(label string) bool {
	_, ok := c.index[label]
	return ok
}

func (c *SlotCatalog) PeriodOf(label string) (Period, bool) {
	p, ok := c.index[label]
	return p, ok
}

func (c *SlotCatalog) Len() int {
	return len(c.index)
}

// Template builds a fresh availability map with every slot open.
func (c *SlotCatalog) Template() Availability {
	var a Availability
	for _, p := range c.periods {
		slots := make([]SlotAvailability, 0, len(p.labels))
		for _, l := range p.labels {
			slots = append(slots, SlotAvailability{Time: l, Available: true})
		}
		*a.period(p.period) = slots
	}
	return a
}
