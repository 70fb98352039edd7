// Package objects is the client-side object table: prototypes,
// environments, mascots, selections, imports, and exports, all keyed by
// a 32-bit object id in one map, with file descriptors owned exclusively
// by the object that holds them.
package objects

import (
	"os"

	"github.com/dolthub/swiss"
)

// Client-allocated object ids encode their kind in the high byte, since
// the daemon only ever allocates prototype/environment/mascot ids.
const (
	KindSelection uint32 = 0x05 << 24
	KindImport    uint32 = 0x06 << 24
	KindExport    uint32 = 0x07 << 24
)

// Object is implemented by every entry the table can hold.
type Object interface {
	ObjectID() uint32
	// Close releases any owned file descriptor. Safe to call on an
	// object that owns none.
	Close() error
}

// Prototype is a loaded mascot definition.
type Prototype struct {
	ID          uint32
	Name        string
	DisplayName string
	Path        string
	FD          *os.File
	IconFD      *os.File
	Actions     []string
	Behaviors   []string
	Author      string
	Version     string
}

func (p *Prototype) ObjectID() uint32 { return p.ID }

func (p *Prototype) Close() error {
	var err error
	if p.FD != nil {
		err = p.FD.Close()
		p.FD = nil
	}
	if p.IconFD != nil {
		if e := p.IconFD.Close(); err == nil {
			err = e
		}
		p.IconFD = nil
	}
	return err
}

// Environment is a screen/output region hosting mascots.
type Environment struct {
	ID          uint32
	Name        string
	Description string
	X, Y, W, H  uint32
	Scale       float32
	Mascots     map[uint32]*Mascot
}

func (e *Environment) ObjectID() uint32 { return e.ID }
func (e *Environment) Close() error     { return nil }

// ActionPoolEntry and BehaviorPoolEntry mirror the wire records a
// MascotInfo packet carries, kept local to avoid a dependency from
// objects back onto proto's wire-shape types.
type ActionPoolEntry struct {
	Name  string
	Index uint32
}

type BehaviorPoolEntry struct {
	Name      string
	Frequency uint64
}

// Variable is one resolved scalar slot of a mascot's program state.
type Variable struct {
	IsFloat      bool
	IntValue     int32
	FloatValue   float32
	Used         bool
	EvaluateOnce bool
	ScriptID     uint16
}

// Mascot is a live instance of a Prototype inside an Environment.
type Mascot struct {
	ID              uint32
	PrototypeID     uint32
	EnvironmentID   uint32
	CurrentAction   string
	ActionIndex     uint16
	State           uint32
	CurrentBehavior string
	Affordance      string
	ActionStack     []string
	BehaviorPool    []BehaviorPoolEntry
	ActionPool      []ActionPoolEntry
	Variables       []Variable
}

func (m *Mascot) ObjectID() uint32 { return m.ID }
func (m *Mascot) Close() error     { return nil }

// Selection is a client-initiated, multi-environment pointer-pick
// session; its id is client-allocated with high byte KindSelection.
type Selection struct {
	ID           uint32
	Environments []uint32
}

func (s *Selection) ObjectID() uint32 { return s.ID }
func (s *Selection) Close() error     { return nil }

// Import is an in-flight package import; its id is client-allocated
// with high byte KindImport.
type Import struct {
	ID    uint32
	FD    *os.File
	Force bool
}

func (i *Import) ObjectID() uint32 { return i.ID }
func (i *Import) Close() error {
	if i.FD == nil {
		return nil
	}
	err := i.FD.Close()
	i.FD = nil
	return err
}

// Export is an in-flight package export; its id is client-allocated
// with high byte KindExport.
type Export struct {
	ID          uint32
	FD          *os.File
	PrototypeID uint32
}

func (e *Export) ObjectID() uint32 { return e.ID }
func (e *Export) Close() error {
	if e.FD == nil {
		return nil
	}
	err := e.FD.Close()
	e.FD = nil
	return err
}

// Table is the id-keyed object store. It owns every FD held by an
// object: Remove closes it, guaranteeing no descriptor leaks past
// object lifetime.
type Table struct {
	objects *swiss.Map[uint32, Object]
	nextKind map[uint32]uint32
}

// New returns an empty Table.
func New() *Table {
	return &Table{
		objects:  swiss.NewMap[uint32, Object](64),
		nextKind: map[uint32]uint32{KindSelection: 1, KindImport: 1, KindExport: 1},
	}
}

// Put inserts or replaces obj under its own id.
func (t *Table) Put(obj Object) { t.objects.Put(obj.ObjectID(), obj) }

// Get looks up an object by id.
func (t *Table) Get(id uint32) (Object, bool) { return t.objects.Get(id) }

// Remove deletes id from the table, closing any owned FD first. A
// missing id is a no-op.
func (t *Table) Remove(id uint32) error {
	obj, ok := t.objects.Get(id)
	if !ok {
		return nil
	}
	t.objects.Delete(id)
	return obj.Close()
}

// AllocID returns the next unused client-allocated id for kind
// (KindSelection, KindImport, or KindExport), encoding the kind in the
// high byte.
func (t *Table) AllocID(kind uint32) uint32 {
	n := t.nextKind[kind]
	t.nextKind[kind] = n + 1
	return kind | n
}
