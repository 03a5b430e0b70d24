package main

import "github.com/google/uuid"

// idMapping is one (version_range, id) entry of a Form B packet's
// association list (spec.md §4.3).
type idMapping struct {
	id   int32
	from Protocol
	to   Protocol
}

// idForProtocol returns the mapped id for ver, or -1 if ver falls outside
// every listed range (spec.md §3 "id_for_protocol(v) is -1 if v is outside
// all ranges").
func idForProtocol(mappings []idMapping, ver Protocol) int32 {
	for _, m := range mappings {
		if ver >= m.from && ver <= m.to {
			return m.id
		}
	}
	return -1
}

// Gamemode is a byte-coded enum (original `byte_enum!(out Gamemode {...})`).
type Gamemode int8

const (
	GamemodeUndefined Gamemode = -1
	GamemodeSurvival  Gamemode = 0
	GamemodeCreative  Gamemode = 1
	GamemodeAdventure Gamemode = 2
	GamemodeSpectator Gamemode = 3
)

// ChatMessagePosition selects where a ChatMessage is rendered client-side.
// System (1) is defined for completeness (original source declares it but
// no encoder path emits it - see SPEC_FULL.md §9) but never produced by
// this server; only Chat and ActionBar are used (§4.7/§6.2).
type ChatMessagePosition uint8

const (
	ChatPositionChat      ChatMessagePosition = 0
	ChatPositionSystem    ChatMessagePosition = 1
	ChatPositionActionBar ChatMessagePosition = 2
)

var keepAliveServerboundMapping = []idMapping{
	{0x00, V1_7_2, V1_8},
	{0x0B, V1_9, V1_11_1},
	{0x0C, V1_12, V1_12},
	{0x0B, V1_12_1, V1_12_2},
	{0x0E, V1_13, V1_13_2},
	{0x0F, V1_14, V1_15_2},
	{0x10, V1_16, V1_16_4},
	{0x0F, V1_17, V1_18_2},
	{0x11, V1_19, V1_19},
	{0x12, V1_19_1, V1_19_1},
	{0x11, V1_19_3, V1_19_3},
	{0x12, V1_19_4, V1_19_4},
}

// KeepAliveServerbound (in) id_for_protocol table, verbatim from
// original_source/picolimbo/src/proto/play.rs.
func KeepAliveServerboundID(ver Protocol) int32 { return idForProtocol(keepAliveServerboundMapping, ver) }

type KeepAliveServerbound struct{ KaID int64 }

var sendCommandsMapping = []idMapping{
	{0x11, V1_13, V1_14_4},
	{0x12, V1_15, V1_15_2},
	{0x11, V1_16, V1_16_1},
	{0x10, V1_16_2, V1_16_4},
	{0x12, V1_17, V1_18_2},
	{0x0F, V1_19, V1_19_1},
	{0x0E, V1_19_3, V1_19_3},
	{0x10, V1_19_4, V1_19_4},
}

func SendCommandsID(ver Protocol) int32 { return idForProtocol(sendCommandsMapping, ver) }

type SendCommands struct{}

var playLoginMapping = []idMapping{
	{0x01, V1_7_2, V1_8},
	{0x23, V1_9, V1_12_2},
	{0x25, V1_13, V1_14_4},
	{0x26, V1_15, V1_15_2},
	{0x25, V1_16, V1_16_1},
	{0x24, V1_16_2, V1_16_4},
	{0x26, V1_17, V1_18_2},
	{0x23, V1_19, V1_19},
	{0x25, V1_19_1, V1_19_1},
	{0x24, V1_19_3, V1_19_3},
	{0x28, V1_19_4, V1_19_4},
}

func PlayLoginID(ver Protocol) int32 { return idForProtocol(playLoginMapping, ver) }

// PlayLogin carries every field any version band might need; per-version
// encoding picks the subset it uses (§4.4).
type PlayLogin struct {
	EID                 int32
	IsHardcore          bool
	Gamemode            Gamemode
	PrevGamemode        Gamemode
	SpawnDimension      Identifier
	DimensionName       Identifier
	HashedSeed          int64
	MaxPlayers          int32
	ViewDistance        int32
	SimulationDistance  int32
	ReducedDebugInfo    bool
	EnableRespawnScreen bool
	IsDebug             bool
	IsFlat              bool
	HasDeathPos         bool
}

var pluginMessageOutMapping = []idMapping{
	{0x3F, V1_7_2, V1_8},
	{0x18, V1_8, V1_12_2},
	{0x19, V1_13, V1_13_2},
	{0x18, V1_14, V1_14_4},
	{0x19, V1_15, V1_15_2},
	{0x18, V1_16, V1_16_1},
	{0x17, V1_16_2, V1_16_4},
	{0x18, V1_17, V1_18_2},
	{0x15, V1_19, V1_19},
	{0x16, V1_19_1, V1_19_1},
	{0x15, V1_19_3, V1_19_3},
	{0x17, V1_19_4, V1_19_4},
}

func PluginMessageOutID(ver Protocol) int32 { return idForProtocol(pluginMessageOutMapping, ver) }

type PluginMessageOut struct {
	Channel string
	Data    string
}

var playerAbilitiesMapping = []idMapping{
	{0x39, V1_7_2, V1_8},
	{0x2B, V1_9, V1_12},
	{0x2C, V1_12_1, V1_12_2},
	{0x2E, V1_13, V1_13_2},
	{0x31, V1_14, V1_14_4},
	{0x32, V1_15, V1_15_2},
	{0x31, V1_16, V1_16_1},
	{0x30, V1_16_2, V1_16_4},
	{0x32, V1_17, V1_18_2},
	{0x2F, V1_19, V1_19},
	{0x31, V1_19_1, V1_19_1},
	{0x30, V1_19_3, V1_19_3},
	{0x34, V1_19_4, V1_19_4},
}

func PlayerAbilitiesID(ver Protocol) int32 { return idForProtocol(playerAbilitiesMapping, ver) }

type PlayerAbilities struct {
	Flags       uint8
	FlyingSpeed float32
	FovMod      float32
}

var playerPositionRotationMapping = []idMapping{
	{0x08, V1_7_2, V1_8},
	{0x2E, V1_9, V1_12},
	{0x2F, V1_12_1, V1_12_2},
	{0x32, V1_13, V1_13_2},
	{0x35, V1_14, V1_14_4},
	{0x36, V1_15, V1_15_2},
	{0x35, V1_16, V1_16_1},
	{0x34, V1_16_2, V1_16_4},
	{0x38, V1_17, V1_18_2},
	{0x36, V1_19, V1_19},
	{0x39, V1_19_1, V1_19_1},
	{0x38, V1_19_3, V1_19_3},
	{0x3C, V1_19_4, V1_19_4},
}

func PlayerPositionRotationID(ver Protocol) int32 {
	return idForProtocol(playerPositionRotationMapping, ver)
}

type PlayerPositionRotation struct {
	X, Y, Z   float64
	Yaw       float32
	Pitch     float32
	OnGround  bool
}

var keepAliveClientboundMapping = []idMapping{
	{0x00, V1_7_2, V1_8},
	{0x1F, V1_9, V1_12_2},
	{0x21, V1_13, V1_13_2},
	{0x20, V1_14, V1_14_4},
	{0x21, V1_15, V1_15_2},
	{0x20, V1_16, V1_16_1},
	{0x1F, V1_16_2, V1_16_4},
	{0x21, V1_17, V1_18_2},
	{0x1E, V1_19, V1_19},
	{0x20, V1_19_1, V1_19_1},
	{0x1F, V1_19_3, V1_19_3},
	{0x23, V1_19_4, V1_19_4},
}

func KeepAliveClientboundID(ver Protocol) int32 { return idForProtocol(keepAliveClientboundMapping, ver) }

type KeepAliveClientbound struct{ KaID int64 }

var chatMessageMapping = []idMapping{
	{0x02, V1_7_2, V1_8},
	{0x0F, V1_9, V1_12_2},
	{0x0E, V1_13, V1_14_4},
	{0x0F, V1_15, V1_15_2},
	{0x0E, V1_16, V1_16_4},
	{0x0F, V1_17, V1_18_2},
	{0x5F, V1_19, V1_19},
	{0x62, V1_19_1, V1_19_1},
	{0x60, V1_19_3, V1_19_3},
	{0x64, V1_19_4, V1_19_4},
}

func ChatMessageID(ver Protocol) int32 { return idForProtocol(chatMessageMapping, ver) }

type ChatMessage struct {
	Message  Component
	Position ChatMessagePosition
	Sender   uuid.UUID
}

var playerInfoMapping = []idMapping{
	{0x38, V1_7_2, V1_8},
	{0x2D, V1_9, V1_12},
	{0x2E, V1_12_1, V1_12_2},
	{0x30, V1_13, V1_13_2},
	{0x33, V1_14, V1_14_4},
	{0x34, V1_15, V1_15_2},
	{0x33, V1_16, V1_16_1},
	{0x32, V1_16_2, V1_16_4},
	{0x36, V1_17, V1_18_2},
	{0x34, V1_19, V1_19},
	{0x37, V1_19_1, V1_19_1},
	{0x36, V1_19_3, V1_19_3},
	{0x3A, V1_19_4, V1_19_4},
}

func PlayerInfoID(ver Protocol) int32 { return idForProtocol(playerInfoMapping, ver) }

type PlayerInfo struct {
	Username string
	Gamemode int32
	UUID     uuid.UUID
}

var spawnPositionMapping = []idMapping{
	{0x4C, V1_19_3, V1_19_3},
	{0x50, V1_19_4, V1_19_4},
}

func SpawnPositionID(ver Protocol) int32 { return idForProtocol(spawnPositionMapping, ver) }

type SpawnPosition struct {
	X, Y, Z  int32
	Rotation float32
}

var disconnectPlayMapping = []idMapping{
	{0x40, V1_7_2, V1_8},
	{0x1A, V1_8, V1_12_2},
	{0x1B, V1_12_2, V1_14},
	{0x1A, V1_14, V1_14_4},
	{0x1B, V1_14_4, V1_19_4},
}

func DisconnectPlayID(ver Protocol) int32 { return idForProtocol(disconnectPlayMapping, ver) }

// DisconnectPlay (out) is kept for completeness (original source defines
// it) though the normal limbo flow never forcibly disconnects a parked
// Play-state client; it is available for a future "kick on shutdown"
// feature but unused today.
type DisconnectPlay struct {
	Reason Component
}
