package packet

// Truncate shrinks p in place until its wire encoding fits within
// maxLen, following RFC 2181 §9's two-pass discipline (spec.md §4.6):
//
//  1. Pop whole RRsets (grouped by owner/type/class) from the tail of
//     the additional section first, without setting TC — additional
//     records are always safe to drop silently, most commonly EDNS
//     glue or NOTIFY/UPDATE extras a client can live without.
//  2. If still too large, pop from authority, then answer, then
//     question, setting TC as soon as the first RR is dropped in this
//     pass, since dropping anything from these sections means the
//     response is incomplete and the client must retry over TCP.
//
// maxLen is clamped to at least 512, the minimum any DNS implementation
// must support (RFC 1035 §2.3.4).
func Truncate(p *Packet, maxLen int) *Packet {
	if maxLen < 512 {
		maxLen = 512
	}

	fits := func() bool {
		wire, err := p.Encode()
		return err == nil && len(wire) <= maxLen
	}
	if fits() {
		return p
	}

	popRRSet := func(sectionKey string) bool {
		dst := p.sectionSlice(mustAlias(sectionKey))
		if len(*dst) == 0 {
			return false
		}
		last := (*dst)[len(*dst)-1]
		setKey := last.RRSetKey()
		for len(*dst) > 0 && (*dst)[len(*dst)-1].RRSetKey() == setKey {
			*dst = (*dst)[:len(*dst)-1]
		}
		p.syncCounts()
		return true
	}

	for len(p.Additional) > 0 && !fits() {
		if !popRRSet("additional") {
			break
		}
	}
	if fits() {
		return p
	}

	for _, sectionKey := range []string{"authority", "answer"} {
		for {
			dst := p.sectionSlice(mustAlias(sectionKey))
			if len(*dst) == 0 || fits() {
				break
			}
			popRRSet(sectionKey)
			p.Header.TC = true
		}
		if fits() {
			return p
		}
	}

	for len(p.Question) > 0 && !fits() {
		p.Question = p.Question[:len(p.Question)-1]
		p.Header.TC = true
		p.syncCounts()
	}

	return p
}

func mustAlias(key string) section {
	s, ok := aliasSection(key)
	if !ok {
		panic("packet: unknown section key " + key)
	}
	return s
}
