package main

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"log"
	"time"

	"github.com/google/uuid"
)

// keepAliveInterval is the Play-state keepalive cadence (spec.md §4.7).
const keepAliveInterval = 3 * time.Second

// playerConn bundles what the play loop needs to send/receive framed
// packets without reaching back into the raw socket - grounded on
// original_source's LimboPlayer (player.rs), generalized from its
// flume::Sender/Receiver pair to this codebase's buffered channels.
type playerConn struct {
	ver      Protocol
	uuid     uuid.UUID
	username string
	srv      *Server
	send     func([]byte) error
	inbound  <-chan []byte
	ctx      context.Context
}

// sendPacket frames id+body and enqueues it on the outbound channel.
func (pc *playerConn) sendPacket(id int32, body []byte) error {
	return pc.send(buildPacketFrame(id, body))
}

// runPlay drives the Play state end to end: the initial packet sequence,
// configured on-join actions, then the keepalive loop. Grounded on
// original_source/picolimbo/src/player.rs's LimboPlayer::handle_self.
func runPlay(pc *playerConn, cfg *Config) error {
	if err := sendPlayLoginSequence(pc, cfg); err != nil {
		return err
	}

	for _, action := range cfg.OnJoin {
		if err := processJoinAction(pc, action); err != nil {
			return err
		}
	}

	return runKeepAliveLoop(pc)
}

func sendPlayLoginSequence(pc *playerConn, cfg *Config) error {
	ver := pc.ver
	dimIdentifier := NewIdentifier("minecraft", cfg.Dimension)

	var body bytes.Buffer
	err := EncodePlayLogin(&body, PlayLogin{
		EID:                 0,
		IsHardcore:          true,
		Gamemode:            GamemodeSurvival,
		PrevGamemode:        GamemodeUndefined,
		SpawnDimension:      dimIdentifier,
		DimensionName:       dimIdentifier,
		HashedSeed:          0,
		MaxPlayers:          int32(cfg.MaxPlayers),
		ViewDistance:        2,
		SimulationDistance:  2,
		ReducedDebugInfo:    false,
		EnableRespawnScreen: false,
		IsDebug:             false,
		IsFlat:              true,
		HasDeathPos:         false,
	}, ver, cfg.Dimension)
	if err != nil {
		return err
	}
	if err := pc.sendPacket(PlayLoginID(ver), body.Bytes()); err != nil {
		return err
	}

	body.Reset()
	EncodePlayerAbilities(&body, PlayerAbilities{Flags: 0x02, FlyingSpeed: 0, FovMod: 0.1})
	if err := pc.sendPacket(PlayerAbilitiesID(ver), body.Bytes()); err != nil {
		return err
	}

	y := float64(400)
	if ver < V1_9 {
		y = 64
	}
	body.Reset()
	EncodePlayerPositionRotation(&body, PlayerPositionRotation{X: 0, Y: y, Z: 0, Yaw: 0, Pitch: 0, OnGround: false}, ver)
	if err := pc.sendPacket(PlayerPositionRotationID(ver), body.Bytes()); err != nil {
		return err
	}

	if ver >= V1_19_3 {
		body.Reset()
		EncodeSpawnPosition(&body, SpawnPosition{X: 0, Y: 400, Z: 0, Rotation: 0})
		if err := pc.sendPacket(SpawnPositionID(ver), body.Bytes()); err != nil {
			return err
		}
	}

	if ver == V1_16_4 {
		body.Reset()
		if err := EncodePlayerInfo(&body, PlayerInfo{Username: "A Limbo Player", Gamemode: 1, UUID: pc.uuid}, ver); err != nil {
			return err
		}
		if err := pc.sendPacket(PlayerInfoID(ver), body.Bytes()); err != nil {
			return err
		}
	}

	channel := "minecraft:brand"
	if ver < V1_13 {
		channel = "MC|Brand"
	}
	body.Reset()
	if err := EncodePluginMessageOut(&body, PluginMessageOut{Channel: channel, Data: cfg.Brand}, ver); err != nil {
		return err
	}
	return pc.sendPacket(PluginMessageOutID(ver), body.Bytes())
}

// processJoinAction dispatches a single configured on-join action,
// recursing through match_version exactly like
// LimboPlayer::handle_join_action. Per SPEC_FULL.md §10 Open Question #4,
// an action whose version gate the connection doesn't meet is skipped
// rather than treated as fatal: send title below V1_8 and send bossbar
// below V1_9 are skipped with a log line, an unmatched match_version is
// skipped without one.
func processJoinAction(pc *playerConn, action JoinAction) error {
	ver := pc.ver

	switch {
	case action.SendMessage != nil:
		return sendChatMessage(pc, Text(*action.SendMessage), ChatPositionChat)

	case action.SendActionBar != nil:
		return sendChatMessage(pc, Text(*action.SendActionBar), ChatPositionActionBar)

	case action.SendPluginMessage != nil:
		var body bytes.Buffer
		if err := EncodePluginMessageOut(&body, PluginMessageOut{
			Channel: action.SendPluginMessage.Channel,
			Data:    action.SendPluginMessage.Message,
		}, ver); err != nil {
			return err
		}
		return pc.sendPacket(PluginMessageOutID(ver), body.Bytes())

	case action.MatchVersion != nil:
		key, ok := ver.ConfigKey()
		if !ok {
			return nil
		}
		if matched, ok := action.MatchVersion[key]; ok {
			return processJoinAction(pc, matched)
		}
		return nil

	case action.SendTitle != nil:
		if ver < V1_8 {
			log.Printf("limbo: skipping send_title for %s, below minimum version V1_8", ver)
			return nil
		}
		return sendTitleAction(pc, action.SendTitle)

	case action.SendBossbar != nil:
		if ver < V1_9 {
			log.Printf("limbo: skipping send_bossbar for %s, below minimum version V1_9", ver)
			return nil
		}
		return sendBossbarAction(pc, action.SendBossbar)

	default:
		return nil
	}
}

func sendChatMessage(pc *playerConn, msg Component, pos ChatMessagePosition) error {
	var body bytes.Buffer
	if err := EncodeChatMessage(&body, ChatMessage{Message: msg, Position: pos, Sender: newRandomUUID()}, pc.ver); err != nil {
		return err
	}
	return pc.sendPacket(ChatMessageID(pc.ver), body.Bytes())
}

func sendTitleAction(pc *playerConn, t *TitleAction) error {
	ver := pc.ver
	fadeIn, stay, fadeOut := int32(20), int32(100), int32(20)
	if t.FadeIn != nil {
		fadeIn = *t.FadeIn
	}
	if t.Stay != nil {
		stay = *t.Stay
	}
	if t.FadeOut != nil {
		fadeOut = *t.FadeOut
	}

	var body bytes.Buffer
	EncodeTitleTimes(&body, TitleTimes{FadeIn: fadeIn, Stay: stay, FadeOut: fadeOut})
	if err := pc.sendPacket(TitleTimesID(ver), body.Bytes()); err != nil {
		return err
	}

	if t.Subtitle != nil {
		title := ""
		if t.Title != nil {
			title = *t.Title
		}
		body.Reset()
		if err := EncodeTitleMessage(&body, TitleMessage{Message: Text(title)}); err != nil {
			return err
		}
		if err := pc.sendPacket(TitleTextID(ver), body.Bytes()); err != nil {
			return err
		}
		body.Reset()
		if err := EncodeTitleSubtitle(&body, TitleSubtitle{Message: Text(*t.Subtitle)}); err != nil {
			return err
		}
		return pc.sendPacket(TitleSubtitleID(ver), body.Bytes())
	} else if t.Title != nil {
		body.Reset()
		if err := EncodeTitleMessage(&body, TitleMessage{Message: Text(*t.Title)}); err != nil {
			return err
		}
		return pc.sendPacket(TitleTextID(ver), body.Bytes())
	}
	return nil
}

func sendBossbarAction(pc *playerConn, b *BossbarAction) error {
	var body bytes.Buffer
	if err := EncodeShowBossbar(&body, ShowBossbar{
		Title:       Text(b.Title),
		Progress:    b.Progress,
		Color:       ParseBossbarColor(b.Color),
		Notches:     ParseBossbarNotches(b.Notches),
		DarkensSky:  b.DarkensSky,
		IsDragonBar: b.IsDragonBar,
		CreateFog:   b.CreateFog,
	}); err != nil {
		return err
	}
	return pc.sendPacket(ShowBossbarID(pc.ver), body.Bytes())
}

// runKeepAliveLoop sends a KeepAliveClientbound every keepAliveInterval and
// silently drains anything arriving on the inbound channel (spec.md §4.7:
// "Inbound KeepAliveServerbound packets are read and silently consumed;
// their id is not matched against the last sent value" - replicating
// SPEC_FULL.md §10 Open Question #1 faithfully rather than adding
// correlation/timeout logic).
func runKeepAliveLoop(pc *playerConn) error {
	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-pc.ctx.Done():
			return pc.ctx.Err()

		case frame, ok := <-pc.inbound:
			if !ok {
				return nil
			}
			// Any well-framed Play-phase packet is accepted here
			// unconditionally, including ones that are not actually
			// KeepAliveServerbound - the reader goroutine in conn.go only
			// delivers raw frames, it does not interpret packet ids.
			_ = frame

		case <-ticker.C:
			var body bytes.Buffer
			kaID := randomInt64()
			EncodeKeepAliveClientbound(&body, KeepAliveClientbound{KaID: kaID}, pc.ver)
			if err := pc.sendPacket(KeepAliveClientboundID(pc.ver), body.Bytes()); err != nil {
				return err
			}
		}
	}
}

func randomInt64() int64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return int64(binary.BigEndian.Uint64(b[:]))
}
