package core

import "sync/atomic"

// Stats summarises the controller's activity since boot
type Stats struct {
	Cycles           uint32
	Accepted         uint32
	Rejected         uint32
	StrayEdges       uint32
	SpuriousCompares uint32
	LastIn           TickCount
	LastOut          TickCount
}

// CycleReport describes one completed cycle
type CycleReport struct {
	Seq      uint32
	In       TickCount
	Out      TickCount // zero when rejected
	Accepted bool
}

func (r CycleReport) String() string {
	if !r.Accepted {
		return "cycle " + utoa(r.Seq) + " in=" + utoa(uint32(r.In)) + " rejected"
	}
	return "cycle " + utoa(r.Seq) + " in=" + utoa(uint32(r.In)) + " out=" + utoa(uint32(r.Out))
}

// Stats returns a snapshot; call it from the foreground loop only
func (c *Controller) Stats() Stats {
	s := c.stats
	s.StrayEdges = atomic.LoadUint32(&c.strayEdges)
	s.SpuriousCompares = atomic.LoadUint32(&c.spuriousCompares)
	return s
}
