package types

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/Yoopo/rust-clippy/internal/source"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Invalid TypeID
	Unit    TypeID
	Bool    TypeID
	Str     TypeID
	Int     TypeID
	Uint    TypeID
	Float   TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	nominals []NominalInfo
}

type typeKey Type

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 32),
	}
	in.nominals = append(in.nominals, NominalInfo{}) // reserve 0 as invalid sentinel
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Str = in.Intern(Type{Kind: KindStr})
	in.builtins.Int = in.Intern(MakeInt(WidthAny))
	in.builtins.Uint = in.Intern(MakeUint(WidthAny))
	in.builtins.Float = in.Intern(MakeFloat(WidthAny))
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	key := typeKey(t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// Len returns the number of interned types, sentinel included.
func (in *Interner) Len() int {
	return len(in.types)
}

// StripRefs removes reference and owning wrappers until a non-wrapper type
// is reached. Unknown IDs come back unchanged; callers treat them as
// non-matching.
func (in *Interner) StripRefs(id TypeID) TypeID {
	for {
		t, ok := in.Lookup(id)
		if !ok {
			return id
		}
		switch t.Kind {
		case KindReference, KindOwn:
			id = t.Elem
		default:
			return id
		}
	}
}

// IsTextual reports whether id (after stripping reference wrappers) is the
// primitive str type or a nominal type whose definition path matches
// ownedStringPath segment-for-segment.
func (in *Interner) IsTextual(id TypeID, names *source.Interner, ownedStringPath []string) bool {
	t, ok := in.Lookup(in.StripRefs(id))
	if !ok {
		return false
	}
	switch t.Kind {
	case KindStr:
		return true
	case KindNominal:
		info, ok := in.nominalInfoBySlot(t.Payload)
		if !ok {
			return false
		}
		return pathMatches(info.Path, names, ownedStringPath)
	default:
		return false
	}
}

func pathMatches(path []source.StringID, names *source.Interner, want []string) bool {
	if names == nil || len(path) != len(want) {
		return false
	}
	for i, seg := range path {
		s, ok := names.Lookup(seg)
		if !ok || s != want[i] {
			return false
		}
	}
	return true
}
