package game

import "time"

// TimelineItem is one scheduled chart entry. Authoring data, immutable.
type TimelineItem struct {
	Time   time.Duration // offset from timeline start when the note spawns
	Note   uint8         // device key number, pre-octave-offset
	Length time.Duration // hold length; carried in the data, not yet judged
}

// Chart is the ordered list of scheduled notes for a session. Items are
// strictly increasing in Time; the scheduler walks them once, forward only.
type Chart struct {
	Name  string
	Items []TimelineItem
}

// Duration is the spawn time of the last item, zero for an empty chart.
func (c *Chart) Duration() time.Duration {
	if len(c.Items) == 0 {
		return 0
	}
	return c.Items[len(c.Items)-1].Time
}
