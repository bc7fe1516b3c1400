package api

import (
	"fmt"
	"slices"
	"strings"
)

// Protocol identifies one protocol backend that can reach the device.
// The set is closed and known at build time.
type Protocol int

const (
	ProtocolMRP Protocol = iota + 1
	ProtocolDMAP
	ProtocolCompanion
	ProtocolAirPlay
	ProtocolRAOP
)

var protocolNames = map[Protocol]string{
	ProtocolMRP:       "MRP",
	ProtocolDMAP:      "DMAP",
	ProtocolCompanion: "Companion",
	ProtocolAirPlay:   "AirPlay",
	ProtocolRAOP:      "RAOP",
}

// String makes Protocol satisfy the fmt.Stringer interface.
func (p Protocol) String() string {
	if name, ok := protocolNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Protocol(%d)", int(p))
}

// AllProtocols returns every known protocol in declaration order.
func AllProtocols() []Protocol {
	return []Protocol{ProtocolMRP, ProtocolDMAP, ProtocolCompanion, ProtocolAirPlay, ProtocolRAOP}
}

// ParseProtocol converts a case-insensitive protocol name into a Protocol.
func ParseProtocol(name string) (Protocol, error) {
	trimmed := strings.TrimSpace(name)
	for p, n := range protocolNames {
		if strings.EqualFold(n, trimmed) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown protocol %q", name)
}

// PriorityList orders protocols by preference. Earlier entries win when more
// than one backend can serve the same operation.
type PriorityList []Protocol

// DefaultPriorities returns a fresh copy of the default preference order.
// Callers may modify the returned list freely.
func DefaultPriorities() PriorityList {
	return PriorityList{ProtocolMRP, ProtocolDMAP, ProtocolCompanion, ProtocolAirPlay, ProtocolRAOP}
}

// ParsePriorityList builds a PriorityList from protocol names, rejecting
// unknown names and duplicates.
func ParsePriorityList(names []string) (PriorityList, error) {
	list := make(PriorityList, 0, len(names))
	for _, name := range names {
		p, err := ParseProtocol(name)
		if err != nil {
			return nil, err
		}
		if list.Contains(p) {
			return nil, fmt.Errorf("protocol %s listed more than once", p)
		}
		list = append(list, p)
	}
	return list, nil
}

// Index returns the position of p in the list, or -1 if it is absent.
func (l PriorityList) Index(p Protocol) int {
	return slices.Index(l, p)
}

// Contains reports whether p is part of the list.
func (l PriorityList) Contains(p Protocol) bool {
	return l.Index(p) >= 0
}

// Rank orders protocols for resolution: those in the list by their list
// position, followed by the unlisted ones in the order given. Every
// component that picks between protocols ranks them this way.
func (l PriorityList) Rank(protocols []Protocol) []Protocol {
	ranked := make([]Protocol, 0, len(protocols))
	for _, p := range l {
		if slices.Contains(protocols, p) {
			ranked = append(ranked, p)
		}
	}
	for _, p := range protocols {
		if !l.Contains(p) && !slices.Contains(ranked, p) {
			ranked = append(ranked, p)
		}
	}
	return ranked
}

// Clone returns an independent copy of the list.
func (l PriorityList) Clone() PriorityList {
	return slices.Clone(l)
}

// String renders the list as "MRP > DMAP > ...".
func (l PriorityList) String() string {
	parts := make([]string, len(l))
	for i, p := range l {
		parts[i] = p.String()
	}
	return strings.Join(parts, " > ")
}
