package main

import "bytes"

// Custom per-version serializers (C4, spec.md §4.4). Each Encode* writes
// only the packet body; the caller prepends Varint(id_for_protocol(ver)) via
// buildPacketFrame before framing.

func EncodeKeepAliveClientbound(buf *bytes.Buffer, p KeepAliveClientbound, ver Protocol) {
	switch {
	case ver >= V1_12_2:
		WriteI64(buf, p.KaID)
	case ver >= V1_8:
		WriteVarInt(buf, int32(p.KaID))
	default:
		WriteI32(buf, int32(p.KaID))
	}
}

func DecodeKeepAliveServerbound(r *bytes.Reader, ver Protocol) (KeepAliveServerbound, error) {
	switch {
	case ver >= V1_12_2:
		v, err := ReadI64(r)
		return KeepAliveServerbound{KaID: v}, err
	case ver >= V1_8:
		v, err := ReadVarInt(r)
		return KeepAliveServerbound{KaID: int64(v)}, err
	default:
		v, err := ReadI32(r)
		return KeepAliveServerbound{KaID: int64(v)}, err
	}
}

// EncodeSendCommands writes the fixed empty-command-graph payload
// (Varint(1), u8(0), Varint(0), Varint(1)) verbatim, per spec.md §4.4.
func EncodeSendCommands(buf *bytes.Buffer) {
	WriteVarInt(buf, 1)
	WriteU8(buf, 0)
	WriteVarInt(buf, 0)
	WriteVarInt(buf, 1)
}

func EncodePluginMessageOut(buf *bytes.Buffer, p PluginMessageOut, ver Protocol) error {
	if err := WriteString(buf, p.Channel); err != nil {
		return err
	}
	if ver < V1_8 {
		WriteU16PrefixedBytes(buf, []byte(p.Data))
		return nil
	}
	return WriteString(buf, p.Data)
}

func EncodePlayerAbilities(buf *bytes.Buffer, p PlayerAbilities) {
	WriteU8(buf, p.Flags)
	WriteF32(buf, p.FlyingSpeed)
	WriteF32(buf, p.FovMod)
}

// EncodePlayerPositionRotation adds the pre-1.8 "eye height" offset, picks
// the on_ground encoding, and appends the teleport-id / dismount fields
// introduced in later versions - all exactly per spec.md §4.4.
func EncodePlayerPositionRotation(buf *bytes.Buffer, p PlayerPositionRotation, ver Protocol) {
	WriteF64(buf, p.X)
	y := p.Y
	if ver < V1_8 {
		y += 1.62
	}
	WriteF64(buf, y)
	WriteF64(buf, p.Z)
	WriteF32(buf, p.Yaw)
	WriteF32(buf, p.Pitch)

	if ver >= V1_8 {
		WriteU8(buf, 0x08)
	} else {
		WriteBool(buf, true)
	}

	if ver >= V1_9 {
		WriteVarInt(buf, 1) // teleport id
	}

	if ver >= V1_17 && ver <= V1_19_3 {
		WriteBool(buf, false) // dismount
	}
}

// EncodeChatMessage writes the position field in whichever of three shapes
// (bool / varint / u8) the version band expects, and appends the sender
// UUID only for the narrow V1_16..V1_18_2 window (spec.md §4.4).
func EncodeChatMessage(buf *bytes.Buffer, p ChatMessage, ver Protocol) error {
	if err := EncodeComponent(buf, p.Message); err != nil {
		return err
	}
	switch {
	case ver >= V1_19_1:
		WriteBool(buf, p.Position == ChatPositionActionBar)
	case ver >= V1_19:
		WriteVarInt(buf, int32(p.Position))
	case ver >= V1_8:
		WriteU8(buf, uint8(p.Position))
	}

	if ver >= V1_16 && ver < V1_19 {
		return WriteUUID(buf, p.Sender, ver)
	}
	return nil
}

// EncodePlayerInfo has three distinct shapes, per spec.md §4.4.
func EncodePlayerInfo(buf *bytes.Buffer, p PlayerInfo, ver Protocol) error {
	switch {
	case ver < V1_8:
		if err := WriteString(buf, p.Username); err != nil {
			return err
		}
		WriteBool(buf, true) // is online
		WriteI16(buf, 0)
		return nil
	case ver >= V1_19_3:
		WriteU8(buf, 0b101100) // actions bitmask
		WriteVarInt(buf, 1)    // actions count
		if err := WriteUUID(buf, p.UUID, ver); err != nil {
			return err
		}
		if err := WriteString(buf, p.Username); err != nil {
			return err
		}
		WriteVarInt(buf, 0)
		WriteBool(buf, true) // listed
		WriteVarInt(buf, p.Gamemode)
		return nil
	default:
		WriteVarInt(buf, 0) // action = add player
		WriteVarInt(buf, 1) // count
		if err := WriteUUID(buf, p.UUID, ver); err != nil {
			return err
		}
		if err := WriteString(buf, p.Username); err != nil {
			return err
		}
		WriteVarInt(buf, 0) // no profile properties
		WriteVarInt(buf, p.Gamemode)
		WriteVarInt(buf, 60) // ping
		WriteBool(buf, false)
		if ver >= V1_19 {
			WriteBool(buf, false) // no chat session
		}
		return nil
	}
}

// EncodeSpawnPosition packs x/y/z into a single big-endian i64, per the bit
// layout in spec.md §4.4.
func EncodeSpawnPosition(buf *bytes.Buffer, p SpawnPosition) {
	packed := (int64(p.X)&0x3FFFFFF)<<38 | (int64(p.Z)&0x3FFFFFF)<<12 | (int64(p.Y) & 0xFFF)
	WriteI64(buf, packed)
	WriteF32(buf, p.Rotation)
}

func EncodeDisconnectPlay(buf *bytes.Buffer, p DisconnectPlay) error {
	return EncodeComponent(buf, p.Reason)
}

// EncodePlayLogin reproduces all nine version bands from
// original_source/picolimbo/src/proto/play.rs's Encodeable impl, including
// its dimension-codec/default-dimension selection per band.
func EncodePlayLogin(buf *bytes.Buffer, p PlayLogin, ver Protocol, dimPreferred string) error {
	WriteI32(buf, p.EID)

	switch {
	case ver >= V1_7_2 && ver <= V1_7_6:
		WriteI8(buf, int8(p.Gamemode))
		dim, _ := defaultDimFrom(Dim.Codec116, dimPreferred)
		WriteI8(buf, dim.ID)
		WriteU8(buf, 0) // difficulty
		WriteU8(buf, uint8(p.MaxPlayers))
		return WriteString(buf, "flat")

	case ver >= V1_8 && ver <= V1_9:
		WriteI8(buf, int8(p.Gamemode))
		dim, _ := defaultDimFrom(Dim.Codec116, dimPreferred)
		WriteI8(buf, dim.ID)
		WriteU8(buf, 0)
		WriteU8(buf, uint8(p.MaxPlayers))
		if err := WriteString(buf, "flat"); err != nil {
			return err
		}
		WriteBool(buf, p.ReducedDebugInfo)
		return nil

	case ver >= V1_9_1 && ver <= V1_13_2:
		WriteI8(buf, int8(p.Gamemode))
		dim, _ := defaultDimFrom(Dim.Codec116, dimPreferred)
		WriteI32(buf, int32(dim.ID))
		WriteU8(buf, 0)
		WriteU8(buf, uint8(p.MaxPlayers))
		if err := WriteString(buf, "flat"); err != nil {
			return err
		}
		WriteBool(buf, p.ReducedDebugInfo)
		return nil

	case ver >= V1_14 && ver <= V1_14_4:
		WriteI8(buf, int8(p.Gamemode))
		dim, _ := defaultDimFrom(Dim.Codec116, dimPreferred)
		WriteI32(buf, int32(dim.ID))
		WriteU8(buf, uint8(p.MaxPlayers))
		if err := WriteString(buf, "flat"); err != nil {
			return err
		}
		WriteVarInt(buf, p.ViewDistance)
		WriteBool(buf, p.ReducedDebugInfo)
		return nil

	case ver >= V1_15 && ver <= V1_15_2:
		WriteI8(buf, int8(p.Gamemode))
		dim, _ := defaultDimFrom(Dim.Codec116, dimPreferred)
		WriteI32(buf, int32(dim.ID))
		WriteI64(buf, p.HashedSeed)
		WriteU8(buf, uint8(p.MaxPlayers))
		if err := WriteString(buf, "flat"); err != nil {
			return err
		}
		WriteVarInt(buf, p.ViewDistance)
		WriteBool(buf, p.ReducedDebugInfo)
		WriteBool(buf, p.EnableRespawnScreen)
		return nil

	case ver >= V1_16 && ver <= V1_16_1:
		WriteI8(buf, int8(p.Gamemode))
		WriteI8(buf, int8(p.PrevGamemode))
		WriteVarInt(buf, 1) // dimensions
		if err := WriteIdentifier(buf, p.SpawnDimension); err != nil {
			return err
		}
		Dim.CodecLegacy.Encode(buf)
		dim, _ := defaultDimFrom(Dim.Codec116, dimPreferred)
		if err := WriteIdentifier(buf, dim.Name); err != nil {
			return err
		}
		if err := WriteIdentifier(buf, p.SpawnDimension); err != nil {
			return err
		}
		if err := WriteIdentifier(buf, p.DimensionName); err != nil {
			return err
		}
		WriteI64(buf, p.HashedSeed)
		WriteVarInt(buf, p.MaxPlayers)
		WriteVarInt(buf, p.ViewDistance)
		WriteBool(buf, p.ReducedDebugInfo)
		WriteBool(buf, p.EnableRespawnScreen)
		WriteBool(buf, p.IsDebug)
		WriteBool(buf, p.IsFlat)
		return nil

	case ver >= V1_16_2 && ver <= V1_17_1:
		WriteBool(buf, p.IsHardcore)
		WriteI8(buf, int8(p.Gamemode))
		WriteI8(buf, int8(p.PrevGamemode))
		WriteVarInt(buf, 1)
		if err := WriteIdentifier(buf, p.SpawnDimension); err != nil {
			return err
		}
		Dim.Codec116.Encode(buf)
		dim, _ := defaultDimFrom(Dim.Codec116, dimPreferred)
		if err := encodeNBTPayload(buf, dim.Data); err != nil {
			return err
		}
		if err := WriteIdentifier(buf, p.DimensionName); err != nil {
			return err
		}
		WriteI64(buf, p.HashedSeed)
		WriteVarInt(buf, p.MaxPlayers)
		WriteVarInt(buf, p.ViewDistance)
		WriteBool(buf, p.ReducedDebugInfo)
		WriteBool(buf, p.EnableRespawnScreen)
		WriteBool(buf, p.IsDebug)
		WriteBool(buf, p.IsFlat)
		return nil

	case ver >= V1_18 && ver <= V1_18_2:
		WriteBool(buf, p.IsHardcore)
		WriteI8(buf, int8(p.Gamemode))
		WriteVarInt(buf, 1)
		if err := WriteIdentifier(buf, p.SpawnDimension); err != nil {
			return err
		}
		var dim Dimension
		if ver == V1_18_2 {
			Dim.Codec1182.Encode(buf)
			dim, _ = defaultDimFrom(Dim.Codec1182, dimPreferred)
		} else {
			Dim.Codec116.Encode(buf)
			dim, _ = defaultDimFrom(Dim.Codec116, dimPreferred)
		}
		if err := encodeNBTPayload(buf, dim.Data); err != nil {
			return err
		}
		if err := WriteIdentifier(buf, p.DimensionName); err != nil {
			return err
		}
		WriteI64(buf, p.HashedSeed)
		WriteVarInt(buf, p.MaxPlayers)
		WriteVarInt(buf, p.ViewDistance)
		WriteVarInt(buf, p.SimulationDistance)
		WriteBool(buf, p.ReducedDebugInfo)
		WriteBool(buf, p.EnableRespawnScreen)
		WriteBool(buf, p.IsDebug)
		WriteBool(buf, p.IsFlat)
		return nil

	case ver >= V1_19:
		WriteBool(buf, p.IsHardcore)
		WriteU8(buf, uint8(p.Gamemode))
		WriteU8(buf, uint8(p.PrevGamemode))
		WriteVarInt(buf, 1)
		if err := WriteIdentifier(buf, p.DimensionName); err != nil {
			return err
		}
		var codec NBTBlob
		switch {
		case ver >= V1_19_4:
			codec = Dim.Codec1194
		case ver >= V1_19_1:
			codec = Dim.Codec1191
		default:
			codec = Dim.Codec119
		}
		codec.Encode(buf)
		if err := WriteIdentifier(buf, p.SpawnDimension); err != nil {
			return err
		}
		if err := WriteIdentifier(buf, p.DimensionName); err != nil {
			return err
		}
		WriteI64(buf, p.HashedSeed)
		WriteVarInt(buf, p.MaxPlayers)
		WriteVarInt(buf, p.ViewDistance)
		WriteVarInt(buf, p.SimulationDistance)
		WriteBool(buf, p.ReducedDebugInfo)
		WriteBool(buf, p.EnableRespawnScreen)
		WriteBool(buf, p.IsDebug)
		WriteBool(buf, p.IsFlat)
		WriteBool(buf, p.HasDeathPos)
		return nil

	default:
		return nil
	}
}
