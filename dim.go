package main

import (
	_ "embed"
	"fmt"
)

//go:embed res/codecs/codec_legacy.nbt.gz
var codecLegacyGz []byte

//go:embed res/codecs/codec_1_16.nbt.gz
var codec116Gz []byte

//go:embed res/codecs/codec_1_18_2.nbt.gz
var codec1182Gz []byte

//go:embed res/codecs/codec_1_19.nbt.gz
var codec119Gz []byte

//go:embed res/codecs/codec_1_19_1.nbt.gz
var codec1191Gz []byte

//go:embed res/codecs/codec_1_19_4.nbt.gz
var codec1194Gz []byte

// Dimension is one selectable entry out of a dimension-type registry: its
// on-wire legacy id (pre-1.16 PlayLogin dimension field), its identifier,
// and its whole NBT registry entry (the name/id/element compound, spec.md
// §6.3).
type Dimension struct {
	ID   int8
	Name Identifier
	Data NBTValue
}

// DimensionManager holds every embedded dimension-codec document, decoded
// once at process startup and shared immutably by every connection
// (spec.md §9 "dimension manager is an immutable singleton").
type DimensionManager struct {
	CodecLegacy NBTBlob
	Codec116    NBTBlob
	Codec1182   NBTBlob
	Codec119    NBTBlob
	Codec1191   NBTBlob
	Codec1194   NBTBlob
}

// Dim is the process-wide dimension manager singleton, grounded on
// original_source's `DIMENSION_MANAGER` (picolimbo/src/dim.rs), initialized
// eagerly instead of lazily since Go has no lazy_static equivalent in the
// teacher's stack and eager init at package load keeps the same "decode
// once, never again" guarantee.
var Dim = mustInitDimensionManager()

func mustInitDimensionManager() *DimensionManager {
	load := func(gz []byte) NBTBlob {
		blob, err := LoadNBTBlobGzip(gz)
		if err != nil {
			panic(fmt.Sprintf("dim: failed to decode embedded codec: %v", err))
		}
		return blob
	}
	return &DimensionManager{
		CodecLegacy: load(codecLegacyGz),
		Codec116:    load(codec116Gz),
		Codec1182:   load(codec1182Gz),
		Codec119:    load(codec119Gz),
		Codec1191:   load(codec1191Gz),
		Codec1194:   load(codec1194Gz),
	}
}

// defaultDimFrom picks one of the four registry entries out of blob's
// "minecraft:dimension_type"."value" list according to the configured
// preferred dimension path, per spec.md §6.3: index 0 (id 0, overworld) is
// the default, index 2 (id -1, the_nether) for "the_nether", index 3 (id 1,
// the_end) for "the_end".
func defaultDimFrom(blob NBTBlob, preferred string) (Dimension, bool) {
	dimType, ok := blob.Root.Get("minecraft:dimension_type")
	if !ok {
		return Dimension{}, false
	}
	list, ok := dimType.Get("value")
	if !ok {
		return Dimension{}, false
	}

	idx, id, name := 0, int8(0), "minecraft:overworld"
	switch preferred {
	case "the_nether":
		idx, id, name = 2, -1, "minecraft:the_nether"
	case "the_end":
		idx, id, name = 3, 1, "minecraft:the_end"
	}

	// Matches original_source's default_dim_1_16 exactly: `data` is the whole
	// list entry (name/id/element triple), not just its "element" member -
	// faithfully replicated rather than "fixed", per SPEC_FULL.md's ground
	// truth rule for behavior the distilled spec is silent on.
	entry, ok := list.Index(idx)
	if !ok {
		return Dimension{}, false
	}
	return Dimension{ID: id, Name: ParseIdentifier(name), Data: entry}, true
}
