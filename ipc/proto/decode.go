package proto

import "fmt"

// Decode parses a complete frame (header + payload) into its typed
// message. An unrecognized type returns ErrUnknownType, which callers
// should treat as a no-op rather than a fatal error.
func Decode(frame []byte) (Header, any, error) {
	h, err := DecodeHeader(frame)
	if err != nil {
		return Header{}, nil, err
	}
	if int(h.Length) > len(frame) {
		return h, nil, fmt.Errorf("proto: short frame: header declares %d bytes, have %d", h.Length, len(frame))
	}
	payload := frame[:h.Length]

	switch h.Type {
	case TypeClientHello:
		m, err := DecodeClientHello(h, payload)
		return h, m, err
	case TypeNotice:
		m, err := DecodeNotice(h, payload)
		return h, m, err
	case TypeEnvironmentAnnouncement:
		m, err := DecodeEnvironmentAnnouncement(h, payload)
		return h, m, err
	case TypeEnvironmentChanged:
		m, err := DecodeEnvironmentChanged(h, payload)
		return h, m, err
	case TypeEnvironmentMascot:
		m, err := DecodeEnvironmentMascot(h, payload)
		return h, m, err
	case TypeEnvironmentWithdrawn:
		return h, EnvironmentWithdrawn{}, nil
	case TypeStartSession:
		return h, StartSession{}, nil
	case TypeServerHello:
		return h, ServerHello{}, nil
	case TypeStartPrototype:
		return h, StartPrototype{}, nil
	case TypePrototypeName:
		m, err := DecodePrototypeName(h, payload)
		return h, m, err
	case TypePrototypeDisplay:
		m, err := DecodePrototypeDisplay(h, payload)
		return h, m, err
	case TypePrototypePath:
		m, err := DecodePrototypePath(h, payload)
		return h, m, err
	case TypePrototypeFD:
		return h, PrototypeFD{}, nil
	case TypePrototypeIconFD:
		return h, PrototypeIconFD{}, nil
	case TypePrototypeActions:
		m, err := DecodePrototypeActions(h, payload)
		return h, m, err
	case TypePrototypeBehavior:
		m, err := DecodePrototypeBehavior(h, payload)
		return h, m, err
	case TypePrototypeAuthor:
		m, err := DecodePrototypeAuthor(h, payload)
		return h, m, err
	case TypePrototypeVersion:
		m, err := DecodePrototypeVersion(h, payload)
		return h, m, err
	case TypeCommitPrototypes:
		return h, CommitPrototypes{}, nil
	case TypeMascotMigrated:
		m, err := DecodeMascotMigrated(h, payload)
		return h, m, err
	case TypeMascotDisposed:
		return h, MascotDisposed{}, nil
	case TypeMascotInfo:
		m, err := DecodeMascotInfo(h, payload)
		return h, m, err
	case TypeMascotClicked:
		m, err := DecodeMascotClicked(h, payload)
		return h, m, err
	case TypeSelectionDone:
		m, err := DecodeSelectionDone(h, payload)
		return h, m, err
	case TypeSelectionCancelled:
		return h, SelectionCancelled{}, nil
	case TypeImportFailed:
		m, err := DecodeImportFailed(h, payload)
		return h, m, err
	case TypeImportStarted:
		return h, ImportStarted{}, nil
	case TypeImportFinished:
		m, err := DecodeImportFinished(h, payload)
		return h, m, err
	case TypeImportProgress:
		m, err := DecodeImportProgress(h, payload)
		return h, m, err
	case TypeExportFailed:
		m, err := DecodeExportFailed(h, payload)
		return h, m, err
	case TypeExportFinished:
		return h, ExportFinished{}, nil
	case TypeConfigKey:
		m, err := DecodeConfigKey(h, payload)
		return h, m, err
	case TypeClickExpired:
		return h, ClickEventExpired{}, nil
	case TypePrototypeWithdraw:
		return h, PrototypeWithdraw{}, nil
	default:
		return h, nil, ErrUnknownType
	}
}
