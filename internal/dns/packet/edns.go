package packet

import "github.com/haukened/wiredns/internal/dns/domain"

// mergeEDNS scans the additional section for OPT pseudo-records, caches
// the single one found on p.edns, and moves it to the front of the
// additional section so it is always easy to find again (spec.md §6:
// EDNS is a scatter/merge concern layered over the generic RR envelope,
// not a distinct wire section). More than one OPT record in a message is
// a protocol violation (RFC 6891 §6.1.1) and is rejected outright.
func (p *Packet) mergeEDNS() error {
	optIdx := -1
	for i, rr := range p.Additional {
		if rr.Type != domain.RRTypeOPT {
			continue
		}
		if optIdx != -1 {
			return domain.ErrTooManyOpt
		}
		optIdx = i
	}
	if optIdx == -1 {
		return nil
	}

	opt := p.Additional[optIdx].RData.OPT
	p.edns = &opt

	if optIdx != 0 {
		rr := p.Additional[optIdx]
		p.Additional = append(p.Additional[:optIdx], p.Additional[optIdx+1:]...)
		p.Additional = append([]domain.ResourceRecord{rr}, p.Additional...)
	}
	return nil
}

// EDNS reports the merged EDNS(0) view for this packet, if any.
func (p *Packet) EDNS() (domain.OPTRData, bool) {
	if p.edns == nil {
		return domain.OPTRData{}, false
	}
	return *p.edns, true
}

// writeEDNSBack copies the cached EDNS view back into the head OPT
// record of additional, so a change made through the cache (SetRcode)
// is reflected in what Encode actually serializes.
func (p *Packet) writeEDNSBack() {
	if p.edns == nil || len(p.Additional) == 0 || p.Additional[0].Type != domain.RRTypeOPT {
		return
	}
	p.Additional[0].RData.OPT = *p.edns
}
