package proto

import "fmt"

// StartPrototype begins a pending prototype (ObjectID is its id); the
// per-field packets that follow populate it until CommitPrototypes
// flushes every pending prototype into the live table.
type StartPrototype struct{}

func (StartPrototype) PacketType() byte { return TypeStartPrototype }
func (m StartPrototype) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypeStartPrototype, objectID).finish()
}

type PrototypeName struct{ Name string }

func (PrototypeName) PacketType() byte { return TypePrototypeName }
func (m PrototypeName) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypePrototypeName, objectID)
	if err := f.putStr(m.Name); err != nil {
		return nil, err
	}
	return f.finish()
}

func DecodePrototypeName(h Header, payload []byte) (PrototypeName, error) {
	d := newDecoder(payload)
	s, err := d.str()
	return PrototypeName{Name: s}, err
}

type PrototypeDisplay struct{ DisplayName string }

func (PrototypeDisplay) PacketType() byte { return TypePrototypeDisplay }
func (m PrototypeDisplay) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypePrototypeDisplay, objectID)
	if err := f.putStr(m.DisplayName); err != nil {
		return nil, err
	}
	return f.finish()
}

func DecodePrototypeDisplay(h Header, payload []byte) (PrototypeDisplay, error) {
	d := newDecoder(payload)
	s, err := d.str()
	return PrototypeDisplay{DisplayName: s}, err
}

type PrototypePath struct{ Path string }

func (PrototypePath) PacketType() byte { return TypePrototypePath }
func (m PrototypePath) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypePrototypePath, objectID)
	if err := f.putStr(m.Path); err != nil {
		return nil, err
	}
	return f.finish()
}

func DecodePrototypePath(h Header, payload []byte) (PrototypePath, error) {
	d := newDecoder(payload)
	s, err := d.str()
	return PrototypePath{Path: s}, err
}

// PrototypeFD and PrototypeIconFD carry no payload of their own; the
// file descriptor rides in the frame's ancillary data and is matched up
// by the dispatcher from the same recvmsg call.
type PrototypeFD struct{}

func (PrototypeFD) PacketType() byte { return TypePrototypeFD }
func (m PrototypeFD) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypePrototypeFD, objectID)
	buf, err := f.finish()
	if err != nil {
		return nil, err
	}
	buf[1] |= FlagHasFD
	return buf, nil
}

type PrototypeIconFD struct{}

func (PrototypeIconFD) PacketType() byte { return TypePrototypeIconFD }
func (m PrototypeIconFD) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypePrototypeIconFD, objectID)
	buf, err := f.finish()
	if err != nil {
		return nil, err
	}
	buf[1] |= FlagHasFD
	return buf, nil
}

// PrototypeActions lists the action names a prototype exposes.
type PrototypeActions struct{ Names []string }

func (PrototypeActions) PacketType() byte { return TypePrototypeActions }

func (m PrototypeActions) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypePrototypeActions, objectID)
	if len(m.Names) > 255 {
		return nil, errTooMany("PrototypeActions.Names", len(m.Names))
	}
	f.putU8(uint8(len(m.Names)))
	for _, n := range m.Names {
		if err := f.putStr(n); err != nil {
			return nil, err
		}
	}
	return f.finish()
}

func DecodePrototypeActions(h Header, payload []byte) (PrototypeActions, error) {
	d := newDecoder(payload)
	n, err := d.u8()
	if err != nil {
		return PrototypeActions{}, err
	}
	var m PrototypeActions
	for i := 0; i < int(n); i++ {
		s, err := d.str()
		if err != nil {
			return m, err
		}
		m.Names = append(m.Names, s)
	}
	return m, nil
}

// PrototypeBehavior lists the behavior names a prototype exposes.
type PrototypeBehavior struct{ Names []string }

func (PrototypeBehavior) PacketType() byte { return TypePrototypeBehavior }

func (m PrototypeBehavior) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypePrototypeBehavior, objectID)
	if len(m.Names) > 255 {
		return nil, errTooMany("PrototypeBehavior.Names", len(m.Names))
	}
	f.putU8(uint8(len(m.Names)))
	for _, n := range m.Names {
		if err := f.putStr(n); err != nil {
			return nil, err
		}
	}
	return f.finish()
}

func DecodePrototypeBehavior(h Header, payload []byte) (PrototypeBehavior, error) {
	d := newDecoder(payload)
	n, err := d.u8()
	if err != nil {
		return PrototypeBehavior{}, err
	}
	var m PrototypeBehavior
	for i := 0; i < int(n); i++ {
		s, err := d.str()
		if err != nil {
			return m, err
		}
		m.Names = append(m.Names, s)
	}
	return m, nil
}

type PrototypeAuthor struct{ Author string }

func (PrototypeAuthor) PacketType() byte { return TypePrototypeAuthor }
func (m PrototypeAuthor) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypePrototypeAuthor, objectID)
	if err := f.putStr(m.Author); err != nil {
		return nil, err
	}
	return f.finish()
}

func DecodePrototypeAuthor(h Header, payload []byte) (PrototypeAuthor, error) {
	d := newDecoder(payload)
	s, err := d.str()
	return PrototypeAuthor{Author: s}, err
}

type PrototypeVersion struct{ Version string }

func (PrototypeVersion) PacketType() byte { return TypePrototypeVersion }
func (m PrototypeVersion) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypePrototypeVersion, objectID)
	if err := f.putStr(m.Version); err != nil {
		return nil, err
	}
	return f.finish()
}

func DecodePrototypeVersion(h Header, payload []byte) (PrototypeVersion, error) {
	d := newDecoder(payload)
	s, err := d.str()
	return PrototypeVersion{Version: s}, err
}

// CommitPrototypes flushes every pending prototype into the live table;
// no payload.
type CommitPrototypes struct{}

func (CommitPrototypes) PacketType() byte { return TypeCommitPrototypes }
func (m CommitPrototypes) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypeCommitPrototypes, objectID).finish()
}

// VariableKind distinguishes a MascotInfo variable record's payload
// type.
type VariableKind uint8

const (
	VariableInt   VariableKind = 0
	VariableFloat VariableKind = 1
)

// MascotVariable is one entry of MascotInfo's variable table: a scoped
// program result plus the metadata the daemon tracks about its script.
type MascotVariable struct {
	Kind          VariableKind
	IntValue      int32
	FloatValue    float32
	Used          bool
	EvaluateOnce  bool
	ScriptID      uint16
}

// ActionPoolEntry names an action available to the mascot plus its
// index into the compiled action table.
type ActionPoolEntry struct {
	Name  string
	Index uint32
}

// BehaviorPoolEntry names a behavior available to the mascot plus its
// selection frequency.
type BehaviorPoolEntry struct {
	Name      string
	Frequency uint64
}

// MascotInfo is the full state snapshot of a mascot, per §4.F.MI.
type MascotInfo struct {
	PrototypeID     uint32
	EnvironmentID   uint32
	State           uint32
	ActionName      string
	ActionIndex     uint16
	BehaviorName    string
	AffordanceName  string
	ActionPool      []ActionPoolEntry
	BehaviorPool    []BehaviorPoolEntry
	Variables       []MascotVariable
}

func (MascotInfo) PacketType() byte { return TypeMascotInfo }

func (m MascotInfo) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeMascotInfo, objectID)
	f.putU32(m.PrototypeID)
	f.putU32(m.EnvironmentID)
	f.putU32(m.State)
	if err := f.putStr(m.ActionName); err != nil {
		return nil, err
	}
	f.putU16(m.ActionIndex)
	if err := f.putStr(m.BehaviorName); err != nil {
		return nil, err
	}
	if err := f.putStr(m.AffordanceName); err != nil {
		return nil, err
	}
	if len(m.ActionPool) > 255 {
		return nil, errTooMany("MascotInfo.ActionPool", len(m.ActionPool))
	}
	f.putU8(uint8(len(m.ActionPool)))
	for _, a := range m.ActionPool {
		if err := f.putStr(a.Name); err != nil {
			return nil, err
		}
		f.putU32(a.Index)
	}
	if len(m.BehaviorPool) > 255 {
		return nil, errTooMany("MascotInfo.BehaviorPool", len(m.BehaviorPool))
	}
	f.putU8(uint8(len(m.BehaviorPool)))
	for _, b := range m.BehaviorPool {
		if err := f.putStr(b.Name); err != nil {
			return nil, err
		}
		f.putU64(b.Frequency)
	}
	if len(m.Variables) > 0xFFFF {
		return nil, errTooMany("MascotInfo.Variables", len(m.Variables))
	}
	f.putU16(uint16(len(m.Variables)))
	for _, v := range m.Variables {
		f.putU8(uint8(v.Kind))
		if v.Kind == VariableFloat {
			f.putF32(v.FloatValue)
		} else {
			f.putU32(uint32(v.IntValue))
		}
		f.putBool(v.Used)
		f.putBool(v.EvaluateOnce)
		f.putU16(v.ScriptID)
	}
	return f.finish()
}

func DecodeMascotInfo(h Header, payload []byte) (MascotInfo, error) {
	d := newDecoder(payload)
	var m MascotInfo
	var err error
	if m.PrototypeID, err = d.u32(); err != nil {
		return m, err
	}
	if m.EnvironmentID, err = d.u32(); err != nil {
		return m, err
	}
	if m.State, err = d.u32(); err != nil {
		return m, err
	}
	if m.ActionName, err = d.str(); err != nil {
		return m, err
	}
	if m.ActionIndex, err = d.u16(); err != nil {
		return m, err
	}
	if m.BehaviorName, err = d.str(); err != nil {
		return m, err
	}
	if m.AffordanceName, err = d.str(); err != nil {
		return m, err
	}

	apLen, err := d.u8()
	if err != nil {
		return m, err
	}
	for i := 0; i < int(apLen); i++ {
		name, err := d.str()
		if err != nil {
			return m, err
		}
		idx, err := d.u32()
		if err != nil {
			return m, err
		}
		m.ActionPool = append(m.ActionPool, ActionPoolEntry{Name: name, Index: idx})
	}

	bpLen, err := d.u8()
	if err != nil {
		return m, err
	}
	for i := 0; i < int(bpLen); i++ {
		name, err := d.str()
		if err != nil {
			return m, err
		}
		freq, err := d.u64()
		if err != nil {
			return m, err
		}
		m.BehaviorPool = append(m.BehaviorPool, BehaviorPoolEntry{Name: name, Frequency: freq})
	}

	varCount, err := d.u16()
	if err != nil {
		return m, err
	}
	for i := 0; i < int(varCount); i++ {
		kindByte, err := d.u8()
		if err != nil {
			return m, err
		}
		var v MascotVariable
		v.Kind = VariableKind(kindByte)
		if v.Kind == VariableFloat {
			if v.FloatValue, err = d.f32(); err != nil {
				return m, err
			}
		} else {
			raw, err := d.u32()
			if err != nil {
				return m, err
			}
			v.IntValue = int32(raw)
		}
		if v.Used, err = d.boolean(); err != nil {
			return m, err
		}
		if v.EvaluateOnce, err = d.boolean(); err != nil {
			return m, err
		}
		if v.ScriptID, err = d.u16(); err != nil {
			return m, err
		}
		m.Variables = append(m.Variables, v)
	}

	return m, nil
}

// ErrUnknownType is returned by Decode for a packet type id with no
// known payload shape; callers treat it as a forward-compatible no-op,
// per the protocol's "unknown packet ids are silently ignored" policy.
var ErrUnknownType = fmt.Errorf("proto: unknown packet type")
