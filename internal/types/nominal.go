package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"github.com/Yoopo/rust-clippy/internal/source"
)

// NominalInfo stores metadata for a named type. Path holds the
// fully-qualified definition path segments (e.g. std, string, String).
type NominalInfo struct {
	Name source.StringID
	Path []source.StringID
	Decl source.Span
}

// RegisterNominal allocates a nominal type slot and returns its TypeID.
// The last path segment is the type's simple name.
func (in *Interner) RegisterNominal(path []source.StringID, decl source.Span) TypeID {
	name := source.NoStringID
	if len(path) > 0 {
		name = path[len(path)-1]
	}
	slot := in.appendNominalInfo(NominalInfo{
		Name: name,
		Path: slices.Clone(path),
		Decl: decl,
	})
	return in.internRaw(Type{Kind: KindNominal, Payload: slot})
}

// NominalInfo returns metadata for the provided nominal TypeID.
func (in *Interner) NominalInfo(id TypeID) (NominalInfo, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindNominal {
		return NominalInfo{}, false
	}
	return in.nominalInfoBySlot(t.Payload)
}

func (in *Interner) nominalInfoBySlot(slot uint32) (NominalInfo, bool) {
	if slot == 0 || int(slot) >= len(in.nominals) {
		return NominalInfo{}, false
	}
	return in.nominals[slot], true
}

func (in *Interner) appendNominalInfo(info NominalInfo) uint32 {
	slot, err := safecast.Conv[uint32](len(in.nominals))
	if err != nil {
		panic(fmt.Errorf("len(nominals) overflow: %w", err))
	}
	in.nominals = append(in.nominals, info)
	return slot
}
