package main

import "testing"

// allProtocols enumerates every version tag this server understands, used to
// exhaustively check id_for_protocol against every mapping table (spec.md §8
// "version-mapped id invariant").
var allProtocols = []Protocol{
	Legacy,
	V1_7_2, V1_7_6, V1_8, V1_9, V1_9_1, V1_9_2, V1_9_4, V1_10, V1_11, V1_11_1,
	V1_12, V1_12_1, V1_12_2, V1_13, V1_13_1, V1_13_2, V1_14, V1_14_1, V1_14_2,
	V1_14_3, V1_14_4, V1_15, V1_15_1, V1_15_2, V1_16, V1_16_1, V1_16_2,
	V1_16_3, V1_16_4, V1_17, V1_17_1, V1_18, V1_18_2, V1_19, V1_19_1,
	V1_19_3, V1_19_4,
}

// checkIDMapping verifies, for every version tag, that idForProtocol returns
// the id of the first matching range or -1 if none match.
func checkIDMapping(t *testing.T, name string, mappings []idMapping) {
	t.Helper()
	for _, ver := range allProtocols {
		want := int32(-1)
		for _, m := range mappings {
			if ver >= m.from && ver <= m.to {
				want = m.id
				break
			}
		}
		if got := idForProtocol(mappings, ver); got != want {
			t.Errorf("%s: idForProtocol(%s) = 0x%02X, want 0x%02X", name, ver, got, want)
		}
	}
}

func TestVersionMappedIDInvariant(t *testing.T) {
	tables := map[string][]idMapping{
		"keepAliveServerbound":   keepAliveServerboundMapping,
		"sendCommands":           sendCommandsMapping,
		"playLogin":              playLoginMapping,
		"pluginMessageOut":       pluginMessageOutMapping,
		"playerAbilities":        playerAbilitiesMapping,
		"playerPositionRotation": playerPositionRotationMapping,
		"keepAliveClientbound":   keepAliveClientboundMapping,
		"chatMessage":            chatMessageMapping,
		"playerInfo":             playerInfoMapping,
		"spawnPosition":          spawnPositionMapping,
		"disconnectPlay":         disconnectPlayMapping,
	}
	for name, mappings := range tables {
		checkIDMapping(t, name, mappings)
	}
}

// TestSpawnPositionOutsideRange covers the "-1 outside all ranges" half of
// the invariant concretely: spawnPositionMapping only covers V1_19_3 and
// V1_19_4, so every earlier version must map to -1.
func TestSpawnPositionOutsideRange(t *testing.T) {
	for _, ver := range []Protocol{Legacy, V1_7_2, V1_8, V1_16, V1_19} {
		if got := SpawnPositionID(ver); got != -1 {
			t.Errorf("SpawnPositionID(%s) = %d, want -1", ver, got)
		}
	}
	if got := SpawnPositionID(V1_19_3); got != 0x4C {
		t.Errorf("SpawnPositionID(V1_19_3) = 0x%02X, want 0x4C", got)
	}
}
