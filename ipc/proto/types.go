package proto

// Packet type ids, per the daemon's fixed message inventory.
const (
	TypeClientHello             = 0x00
	TypeServerHello             = 0x01
	TypeNotice                  = 0x03
	TypeStartSession            = 0x04
	TypeEnvironmentAnnouncement = 0x05
	TypeEnvironmentChanged      = 0x06
	TypeEnvironmentMascot       = 0x07
	TypeEnvironmentWithdrawn    = 0x08

	TypeStartPrototype    = 0x09
	TypePrototypeName     = 0x0A
	TypePrototypeDisplay  = 0x0B
	TypePrototypePath     = 0x0C
	TypePrototypeFD       = 0x0D
	TypePrototypeIconFD   = 0x0E
	TypePrototypeActions  = 0x0F
	TypePrototypeBehavior = 0x10
	TypePrototypeAuthor   = 0x11
	TypePrototypeVersion  = 0x12
	TypeCommitPrototypes  = 0x13

	TypeMascotMigrated = 0x14
	TypeMascotDisposed = 0x15
	TypeMascotGetInfo  = 0x16
	TypeMascotInfo     = 0x17
	TypeMascotClicked  = 0x18

	TypeSelect             = 0x1E
	TypeSelectionDone      = 0x1F
	TypeSelectionCancelled = 0x20

	TypeReloadPrototype = 0x21
	TypeImportPrototype = 0x22
	TypeImportFailed    = 0x23
	TypeImportStarted   = 0x24
	TypeImportFinished  = 0x25
	TypeImportProgress  = 0x26
	TypeExportPrototype = 0x27
	TypeExportFailed    = 0x28
	TypeExportFinished  = 0x29

	TypeSpawn           = 0x2A
	TypeDispose         = 0x2B
	TypeEnvironmentClose = 0x2E
	TypeSelectionCancel = 0x3C

	TypeApplyBehavior   = 0x50
	TypeGetConfigKey    = 0x51
	TypeSetConfigKey    = 0x52
	TypeListConfigKey   = 0x53
	TypeConfigKey       = 0x54
	TypeClickExpired    = 0x55
	TypeStop            = 0x56
	TypePrototypeWithdraw = 0x57
)

// Flags bits on the frame header.
const (
	FlagHasFD byte = 1 << iota
)

// Message is implemented by every typed packet payload.
type Message interface {
	// PacketType returns this message's wire type id.
	PacketType() byte
	// Encode renders the message (targeting objectID) into a complete
	// wire frame, header included.
	Encode(objectID uint32) ([]byte, error)
}

// ClientHello is the first outbound packet of the handshake.
type ClientHello struct {
	Version uint64
}

func (ClientHello) PacketType() byte { return TypeClientHello }

func (m ClientHello) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeClientHello, objectID)
	f.putU64(m.Version)
	return f.finish()
}

func DecodeClientHello(h Header, payload []byte) (ClientHello, error) {
	d := newDecoder(payload)
	v, err := d.u64()
	return ClientHello{Version: v}, err
}

// ServerHello carries no payload.
type ServerHello struct{}

func (ServerHello) PacketType() byte { return TypeServerHello }
func (m ServerHello) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypeServerHello, objectID).finish()
}

// StartSession carries no payload; its receipt completes the handshake.
type StartSession struct{}

func (StartSession) PacketType() byte { return TypeStartSession }
func (m StartSession) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypeStartSession, objectID).finish()
}

// Notice is a server-originated diagnostic, optionally carrying
// byte-string values (used for structured substitutions in the message).
type Notice struct {
	Severity uint8
	Alert    uint8
	Message  string
	Values   [][]byte
}

func (Notice) PacketType() byte { return TypeNotice }

func (m Notice) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeNotice, objectID)
	f.putU8(m.Severity)
	f.putU8(m.Alert)
	if err := f.putStr(m.Message); err != nil {
		return nil, err
	}
	if len(m.Values) > 255 {
		return nil, errTooMany("Notice.Values", len(m.Values))
	}
	f.putU8(uint8(len(m.Values)))
	for _, v := range m.Values {
		if len(v) > 255 {
			return nil, errTooMany("Notice value", len(v))
		}
		f.putU8(uint8(len(v)))
		f.buf = append(f.buf, v...)
	}
	return f.finish()
}

func DecodeNotice(h Header, payload []byte) (Notice, error) {
	d := newDecoder(payload)
	var m Notice
	var err error
	if m.Severity, err = d.u8(); err != nil {
		return m, err
	}
	if m.Alert, err = d.u8(); err != nil {
		return m, err
	}
	if m.Message, err = d.str(); err != nil {
		return m, err
	}
	n, err := d.u8()
	if err != nil {
		return m, err
	}
	for i := 0; i < int(n); i++ {
		ln, err := d.u8()
		if err != nil {
			return m, err
		}
		if err := d.need(int(ln)); err != nil {
			return m, err
		}
		m.Values = append(m.Values, append([]byte(nil), d.buf[d.pos:d.pos+int(ln)]...))
		d.pos += int(ln)
	}
	return m, nil
}

// EnvironmentAnnouncement introduces a new environment.
type EnvironmentAnnouncement struct {
	NewID uint32
	Name  string
	Desc  string
	X, Y, W, H uint32
	Scale float32
}

func (EnvironmentAnnouncement) PacketType() byte { return TypeEnvironmentAnnouncement }

func (m EnvironmentAnnouncement) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeEnvironmentAnnouncement, objectID)
	f.putU32(m.NewID)
	if err := f.putStr(m.Name); err != nil {
		return nil, err
	}
	if err := f.putStr(m.Desc); err != nil {
		return nil, err
	}
	f.putU32(m.X)
	f.putU32(m.Y)
	f.putU32(m.W)
	f.putU32(m.H)
	f.putF32(m.Scale)
	return f.finish()
}

func DecodeEnvironmentAnnouncement(h Header, payload []byte) (EnvironmentAnnouncement, error) {
	d := newDecoder(payload)
	var m EnvironmentAnnouncement
	var err error
	if m.NewID, err = d.u32(); err != nil {
		return m, err
	}
	if m.Name, err = d.str(); err != nil {
		return m, err
	}
	if m.Desc, err = d.str(); err != nil {
		return m, err
	}
	if m.X, err = d.u32(); err != nil {
		return m, err
	}
	if m.Y, err = d.u32(); err != nil {
		return m, err
	}
	if m.W, err = d.u32(); err != nil {
		return m, err
	}
	if m.H, err = d.u32(); err != nil {
		return m, err
	}
	m.Scale, err = d.f32()
	return m, err
}

// EnvironmentChanged carries the same fields as EnvironmentAnnouncement
// minus the id, which is the frame's ObjectID.
type EnvironmentChanged struct {
	Name       string
	Desc       string
	X, Y, W, H uint32
	Scale      float32
}

func (EnvironmentChanged) PacketType() byte { return TypeEnvironmentChanged }

func (m EnvironmentChanged) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeEnvironmentChanged, objectID)
	if err := f.putStr(m.Name); err != nil {
		return nil, err
	}
	if err := f.putStr(m.Desc); err != nil {
		return nil, err
	}
	f.putU32(m.X)
	f.putU32(m.Y)
	f.putU32(m.W)
	f.putU32(m.H)
	f.putF32(m.Scale)
	return f.finish()
}

func DecodeEnvironmentChanged(h Header, payload []byte) (EnvironmentChanged, error) {
	d := newDecoder(payload)
	var m EnvironmentChanged
	var err error
	if m.Name, err = d.str(); err != nil {
		return m, err
	}
	if m.Desc, err = d.str(); err != nil {
		return m, err
	}
	if m.X, err = d.u32(); err != nil {
		return m, err
	}
	if m.Y, err = d.u32(); err != nil {
		return m, err
	}
	if m.W, err = d.u32(); err != nil {
		return m, err
	}
	if m.H, err = d.u32(); err != nil {
		return m, err
	}
	m.Scale, err = d.f32()
	return m, err
}

// EnvironmentMascot announces a mascot spawned into an environment
// (the frame's ObjectID).
type EnvironmentMascot struct {
	NewMascotID  uint32
	PrototypeID uint32
}

func (EnvironmentMascot) PacketType() byte { return TypeEnvironmentMascot }

func (m EnvironmentMascot) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeEnvironmentMascot, objectID)
	f.putU32(m.NewMascotID)
	f.putU32(m.PrototypeID)
	return f.finish()
}

func DecodeEnvironmentMascot(h Header, payload []byte) (EnvironmentMascot, error) {
	d := newDecoder(payload)
	var m EnvironmentMascot
	var err error
	if m.NewMascotID, err = d.u32(); err != nil {
		return m, err
	}
	m.PrototypeID, err = d.u32()
	return m, err
}

// EnvironmentWithdrawn targets the ObjectID; no payload.
type EnvironmentWithdrawn struct{}

func (EnvironmentWithdrawn) PacketType() byte { return TypeEnvironmentWithdrawn }
func (m EnvironmentWithdrawn) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypeEnvironmentWithdrawn, objectID).finish()
}

// MascotMigrated moves the target mascot (ObjectID) into EnvironmentID.
type MascotMigrated struct {
	EnvironmentID uint32
}

func (MascotMigrated) PacketType() byte { return TypeMascotMigrated }
func (m MascotMigrated) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeMascotMigrated, objectID)
	f.putU32(m.EnvironmentID)
	return f.finish()
}

func DecodeMascotMigrated(h Header, payload []byte) (MascotMigrated, error) {
	d := newDecoder(payload)
	id, err := d.u32()
	return MascotMigrated{EnvironmentID: id}, err
}

// MascotDisposed targets the ObjectID; no payload.
type MascotDisposed struct{}

func (MascotDisposed) PacketType() byte { return TypeMascotDisposed }
func (m MascotDisposed) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypeMascotDisposed, objectID).finish()
}

// MascotGetInfo is outbound; no payload.
type MascotGetInfo struct{}

func (MascotGetInfo) PacketType() byte { return TypeMascotGetInfo }
func (m MascotGetInfo) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypeMascotGetInfo, objectID).finish()
}

// MascotClicked names the new clicked affordance id.
type MascotClicked struct {
	NewClickedID uint32
}

func (MascotClicked) PacketType() byte { return TypeMascotClicked }
func (m MascotClicked) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeMascotClicked, objectID)
	f.putU32(m.NewClickedID)
	return f.finish()
}

func DecodeMascotClicked(h Header, payload []byte) (MascotClicked, error) {
	d := newDecoder(payload)
	id, err := d.u32()
	return MascotClicked{NewClickedID: id}, err
}

// Select requests a selection (new selection object NewID) across a set
// of environments.
type Select struct {
	NewID          uint32
	EnvironmentIDs []uint32
}

func (Select) PacketType() byte { return TypeSelect }

func (m Select) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeSelect, objectID)
	f.putU32(m.NewID)
	if len(m.EnvironmentIDs) > 255 {
		return nil, errTooMany("Select.EnvironmentIDs", len(m.EnvironmentIDs))
	}
	f.putU8(uint8(len(m.EnvironmentIDs)))
	for _, id := range m.EnvironmentIDs {
		f.putU32(id)
	}
	return f.finish()
}

func DecodeSelect(h Header, payload []byte) (Select, error) {
	d := newDecoder(payload)
	var m Select
	var err error
	if m.NewID, err = d.u32(); err != nil {
		return m, err
	}
	n, err := d.u8()
	if err != nil {
		return m, err
	}
	for i := 0; i < int(n); i++ {
		id, err := d.u32()
		if err != nil {
			return m, err
		}
		m.EnvironmentIDs = append(m.EnvironmentIDs, id)
	}
	return m, nil
}

// SelectionDone reports the chosen environment/mascot and pointer
// position at selection time.
type SelectionDone struct {
	EnvironmentID uint32
	MascotID      uint32
	X, Y          uint32
	ScreenX       uint32
	ScreenY       uint32
}

func (SelectionDone) PacketType() byte { return TypeSelectionDone }

func (m SelectionDone) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeSelectionDone, objectID)
	f.putU32(m.EnvironmentID)
	f.putU32(m.MascotID)
	f.putU32(m.X)
	f.putU32(m.Y)
	f.putU32(m.ScreenX)
	f.putU32(m.ScreenY)
	return f.finish()
}

func DecodeSelectionDone(h Header, payload []byte) (SelectionDone, error) {
	d := newDecoder(payload)
	var m SelectionDone
	var err error
	if m.EnvironmentID, err = d.u32(); err != nil {
		return m, err
	}
	if m.MascotID, err = d.u32(); err != nil {
		return m, err
	}
	if m.X, err = d.u32(); err != nil {
		return m, err
	}
	if m.Y, err = d.u32(); err != nil {
		return m, err
	}
	if m.ScreenX, err = d.u32(); err != nil {
		return m, err
	}
	m.ScreenY, err = d.u32()
	return m, err
}

// SelectionCancelled targets the ObjectID; no payload.
type SelectionCancelled struct{}

func (SelectionCancelled) PacketType() byte { return TypeSelectionCancelled }
func (m SelectionCancelled) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypeSelectionCancelled, objectID).finish()
}

// SelectionCancel is outbound, targeting a live Selection's ObjectID.
type SelectionCancel struct{}

func (SelectionCancel) PacketType() byte { return TypeSelectionCancel }
func (m SelectionCancel) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypeSelectionCancel, objectID).finish()
}

// ReloadPrototype is outbound, naming a filesystem path to reload.
type ReloadPrototype struct {
	Path string
}

func (ReloadPrototype) PacketType() byte { return TypeReloadPrototype }
func (m ReloadPrototype) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeReloadPrototype, objectID)
	if err := f.putStr(m.Path); err != nil {
		return nil, err
	}
	return f.finish()
}

// ImportPrototype is outbound; the package FD travels in ancillary data,
// Force maps to the frame's flags byte.
type ImportPrototype struct {
	NewID uint32
	Force bool
}

func (ImportPrototype) PacketType() byte { return TypeImportPrototype }

func (m ImportPrototype) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeImportPrototype, objectID)
	f.putU32(m.NewID)
	buf, err := f.finish()
	if err != nil {
		return nil, err
	}
	if m.Force {
		buf[1] |= FlagHasFD
	}
	return buf, nil
}

// ImportFailed carries a daemon-defined failure code (0-7, see §7 of the
// governing spec).
type ImportFailed struct {
	Code uint8
}

func (ImportFailed) PacketType() byte { return TypeImportFailed }
func (m ImportFailed) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeImportFailed, objectID)
	f.putU8(m.Code)
	return f.finish()
}

func DecodeImportFailed(h Header, payload []byte) (ImportFailed, error) {
	d := newDecoder(payload)
	code, err := d.u8()
	return ImportFailed{Code: code}, err
}

// ImportStarted, ImportFinished target the ObjectID with no payload.
type ImportStarted struct{}

func (ImportStarted) PacketType() byte { return TypeImportStarted }
func (m ImportStarted) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypeImportStarted, objectID).finish()
}

type ImportFinished struct {
	PrototypeID uint32
}

func (ImportFinished) PacketType() byte { return TypeImportFinished }
func (m ImportFinished) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeImportFinished, objectID)
	f.putU32(m.PrototypeID)
	return f.finish()
}

func DecodeImportFinished(h Header, payload []byte) (ImportFinished, error) {
	d := newDecoder(payload)
	id, err := d.u32()
	return ImportFinished{PrototypeID: id}, err
}

// ImportProgress reports a 0-100 percentage.
type ImportProgress struct {
	Percent uint8
}

func (ImportProgress) PacketType() byte { return TypeImportProgress }
func (m ImportProgress) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeImportProgress, objectID)
	f.putU8(m.Percent)
	return f.finish()
}

func DecodeImportProgress(h Header, payload []byte) (ImportProgress, error) {
	d := newDecoder(payload)
	p, err := d.u8()
	return ImportProgress{Percent: p}, err
}

// ExportPrototype is outbound; the destination FD travels in ancillary
// data.
type ExportPrototype struct {
	NewID       uint32
	PrototypeID uint32
}

func (ExportPrototype) PacketType() byte { return TypeExportPrototype }
func (m ExportPrototype) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeExportPrototype, objectID)
	f.putU32(m.NewID)
	f.putU32(m.PrototypeID)
	return f.finish()
}

// ExportFailed carries a daemon-defined failure code.
type ExportFailed struct {
	Code uint8
}

func (ExportFailed) PacketType() byte { return TypeExportFailed }
func (m ExportFailed) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeExportFailed, objectID)
	f.putU8(m.Code)
	return f.finish()
}

func DecodeExportFailed(h Header, payload []byte) (ExportFailed, error) {
	d := newDecoder(payload)
	code, err := d.u8()
	return ExportFailed{Code: code}, err
}

// ExportFinished targets the ObjectID; no payload.
type ExportFinished struct{}

func (ExportFinished) PacketType() byte { return TypeExportFinished }
func (m ExportFinished) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypeExportFinished, objectID).finish()
}

// Spawn is outbound, requesting a new mascot instance.
type Spawn struct {
	PrototypeID   uint32
	EnvironmentID uint32
	X, Y          uint32
	Behavior      string
}

func (Spawn) PacketType() byte { return TypeSpawn }

func (m Spawn) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeSpawn, objectID)
	f.putU32(m.PrototypeID)
	f.putU32(m.EnvironmentID)
	f.putU32(m.X)
	f.putU32(m.Y)
	if err := f.putStr(m.Behavior); err != nil {
		return nil, err
	}
	return f.finish()
}

// Dispose is outbound, targeting the ObjectID to remove.
type Dispose struct{}

func (Dispose) PacketType() byte { return TypeDispose }
func (m Dispose) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypeDispose, objectID).finish()
}

// EnvironmentClose is outbound, targeting the ObjectID to tear down.
type EnvironmentClose struct{}

func (EnvironmentClose) PacketType() byte { return TypeEnvironmentClose }
func (m EnvironmentClose) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypeEnvironmentClose, objectID).finish()
}

// ApplyBehavior is outbound, targeting a mascot's ObjectID.
type ApplyBehavior struct {
	Behavior string
}

func (ApplyBehavior) PacketType() byte { return TypeApplyBehavior }
func (m ApplyBehavior) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeApplyBehavior, objectID)
	if err := f.putStr(m.Behavior); err != nil {
		return nil, err
	}
	return f.finish()
}

// GetConfigKey, SetConfigKey, ListConfigKey are outbound config-protocol
// requests; ConfigKey is the inbound reply.
type GetConfigKey struct {
	Key string
}

func (GetConfigKey) PacketType() byte { return TypeGetConfigKey }
func (m GetConfigKey) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeGetConfigKey, objectID)
	if err := f.putStr(m.Key); err != nil {
		return nil, err
	}
	return f.finish()
}

type SetConfigKey struct {
	Key   string
	Value string
}

func (SetConfigKey) PacketType() byte { return TypeSetConfigKey }
func (m SetConfigKey) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeSetConfigKey, objectID)
	if err := f.putStr(m.Key); err != nil {
		return nil, err
	}
	if err := f.putStr(m.Value); err != nil {
		return nil, err
	}
	return f.finish()
}

type ListConfigKey struct {
	Prefix string
}

func (ListConfigKey) PacketType() byte { return TypeListConfigKey }
func (m ListConfigKey) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeListConfigKey, objectID)
	if err := f.putStr(m.Prefix); err != nil {
		return nil, err
	}
	return f.finish()
}

type ConfigKey struct {
	Key   string
	Value string
}

func (ConfigKey) PacketType() byte { return TypeConfigKey }
func (m ConfigKey) Encode(objectID uint32) ([]byte, error) {
	f := newFrame(TypeConfigKey, objectID)
	if err := f.putStr(m.Key); err != nil {
		return nil, err
	}
	if err := f.putStr(m.Value); err != nil {
		return nil, err
	}
	return f.finish()
}

func DecodeConfigKey(h Header, payload []byte) (ConfigKey, error) {
	d := newDecoder(payload)
	var m ConfigKey
	var err error
	if m.Key, err = d.str(); err != nil {
		return m, err
	}
	m.Value, err = d.str()
	return m, err
}

// ClickEventExpired, Stop, PrototypeWithdraw carry no payload.
type ClickEventExpired struct{}

func (ClickEventExpired) PacketType() byte { return TypeClickExpired }
func (m ClickEventExpired) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypeClickExpired, objectID).finish()
}

type Stop struct{}

func (Stop) PacketType() byte { return TypeStop }
func (m Stop) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypeStop, objectID).finish()
}

type PrototypeWithdraw struct{}

func (PrototypeWithdraw) PacketType() byte { return TypePrototypeWithdraw }
func (m PrototypeWithdraw) Encode(objectID uint32) ([]byte, error) {
	return newFrame(TypePrototypeWithdraw, objectID).finish()
}

func errTooMany(field string, n int) error {
	return &encodeError{field: field, n: n}
}

type encodeError struct {
	field string
	n     int
}

func (e *encodeError) Error() string {
	return "proto: " + e.field + " has too many entries for its length prefix"
}
