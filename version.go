package main

import "strings"

// Protocol identifies a supported wire protocol version by its numeric
// handshake id. Ordering and equality follow the numeric id, so bands like
// "V1_9_1..=V1_13_2" can be tested with plain comparison operators.
type Protocol int32

const (
	Legacy Protocol = -1

	V1_7_2  Protocol = 4
	V1_7_6  Protocol = 5
	V1_8    Protocol = 47
	V1_9    Protocol = 107
	V1_9_1  Protocol = 108
	V1_9_2  Protocol = 109
	V1_9_4  Protocol = 110
	V1_10   Protocol = 210
	V1_11   Protocol = 315
	V1_11_1 Protocol = 316
	V1_12   Protocol = 335
	V1_12_1 Protocol = 338
	V1_12_2 Protocol = 340
	V1_13   Protocol = 393
	V1_13_1 Protocol = 401
	V1_13_2 Protocol = 404
	V1_14   Protocol = 477
	V1_14_1 Protocol = 480
	V1_14_2 Protocol = 485
	V1_14_3 Protocol = 490
	V1_14_4 Protocol = 498
	V1_15   Protocol = 573
	V1_15_1 Protocol = 575
	V1_15_2 Protocol = 578
	V1_16   Protocol = 735
	V1_16_1 Protocol = 736
	V1_16_2 Protocol = 751
	V1_16_3 Protocol = 753
	V1_16_4 Protocol = 754
	V1_17   Protocol = 755
	V1_17_1 Protocol = 756
	V1_18   Protocol = 757
	V1_18_2 Protocol = 758
	V1_19   Protocol = 759
	V1_19_1 Protocol = 760
	V1_19_3 Protocol = 761
	V1_19_4 Protocol = 762
)

// protocolNames maps each supported tag to its canonical name, used both for
// Stringer output and for parsing "default protocol" from config.
var protocolNames = map[Protocol]string{
	Legacy:  "legacy",
	V1_7_2:  "V1_7_2",
	V1_7_6:  "V1_7_6",
	V1_8:    "V1_8",
	V1_9:    "V1_9",
	V1_9_1:  "V1_9_1",
	V1_9_2:  "V1_9_2",
	V1_9_4:  "V1_9_4",
	V1_10:   "V1_10",
	V1_11:   "V1_11",
	V1_11_1: "V1_11_1",
	V1_12:   "V1_12",
	V1_12_1: "V1_12_1",
	V1_12_2: "V1_12_2",
	V1_13:   "V1_13",
	V1_13_1: "V1_13_1",
	V1_13_2: "V1_13_2",
	V1_14:   "V1_14",
	V1_14_1: "V1_14_1",
	V1_14_2: "V1_14_2",
	V1_14_3: "V1_14_3",
	V1_14_4: "V1_14_4",
	V1_15:   "V1_15",
	V1_15_1: "V1_15_1",
	V1_15_2: "V1_15_2",
	V1_16:   "V1_16",
	V1_16_1: "V1_16_1",
	V1_16_2: "V1_16_2",
	V1_16_3: "V1_16_3",
	V1_16_4: "V1_16_4",
	V1_17:   "V1_17",
	V1_17_1: "V1_17_1",
	V1_18:   "V1_18",
	V1_18_2: "V1_18_2",
	V1_19:   "V1_19",
	V1_19_1: "V1_19_1",
	V1_19_3: "V1_19_3",
	V1_19_4: "V1_19_4",
}

var namesByLowerString = func() map[string]Protocol {
	m := make(map[string]Protocol, len(protocolNames))
	for p, name := range protocolNames {
		if p == Legacy {
			continue
		}
		m[strings.ToLower(name)] = p
	}
	return m
}()

// Latest is the newest wire version this server understands.
func Latest() Protocol {
	return V1_19_4
}

// FromIndex resolves a raw handshake protocol integer to a Protocol tag.
// Unknown values intentionally downgrade to Legacy rather than erroring -
// this is the contract the rest of the codec relies on for graceful
// handling of unsupported clients (see status response handling).
func FromIndex(idx int32) Protocol {
	p := Protocol(idx)
	if p == Legacy {
		return Legacy
	}
	if _, ok := protocolNames[p]; ok {
		return p
	}
	return Legacy
}

// ParseProtocolName parses a config-style snake_case version tag, e.g.
// "v1_19_4", into a Protocol. Used for the optional "default protocol"
// config key.
func ParseProtocolName(s string) (Protocol, bool) {
	p, ok := namesByLowerString[strings.ToLower(s)]
	return p, ok
}

// ConfigKey returns the canonical tag used as a match_version map key
// (e.g. "V1_19_4"), matching the literal enum variant names
// original_source's LimboConfig::MapForVersions keys are written against.
func (p Protocol) ConfigKey() (string, bool) {
	name, ok := protocolNames[p]
	return name, ok
}

// String renders the protocol the way the source formats it for logs:
// strip the leading "V" and replace underscores with dots.
func (p Protocol) String() string {
	name, ok := protocolNames[p]
	if !ok {
		name = "unsupported"
	}
	name = strings.TrimPrefix(name, "V")
	return strings.ReplaceAll(name, "_", ".")
}
