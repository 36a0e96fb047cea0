package monitor

type summary struct {
	fraction  float64
	reporting int
	unmasked  int
}

// fraction returns reporting/unmasked over chambers, -1 when every chamber
// is masked.
func fraction(chambers []*chamberBin) summary {
	var s summary
	for _, cb := range chambers {
		if cb.masked {
			continue
		}
		s.unmasked++
		if cb.reporting {
			s.reporting++
		}
	}
	if s.unmasked == 0 {
		s.fraction = -1
	} else {
		s.fraction = float64(s.reporting) / float64(s.unmasked)
	}
	return s
}

// refresh recomputes every derived bin from the accumulated ones.
func (b *Bins) refresh() summary {
	for _, cb := range b.all {
		cb.reporting = b.reporting.Bin(cb.x, cb.y) > 0
	}

	for _, g := range b.groups {
		g.value.Set(fraction(g.chambers).fraction)
	}
	total := fraction(b.all)
	b.report.Set(total.fraction)

	for _, cb := range b.all {
		v := 0.0
		switch {
		case cb.masked:
			v = -1
		case cb.reporting:
			v = 1
		}
		b.reportMap.SetBin(cb.x, cb.y, v)
		b.stationMaps[cb.station-1].SetBin(cb.chamber, cb.row, cb.hits.Value())
	}
	return total
}
