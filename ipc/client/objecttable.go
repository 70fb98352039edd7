package client

import (
	"os"

	"github.com/wired-desktop/shimejictl/ipc/objects"
	"github.com/wired-desktop/shimejictl/ipc/proto"
)

// applyToObjectTable mutates the local object-table mirror for every
// message that carries object-lifecycle meaning, per the maintenance
// rules: StartPrototype opens a pending entry; its field packets
// populate it; CommitPrototypes flushes every pending prototype into
// the live table. Environments and mascots are inserted/mutated/removed
// directly as their announcement/change/withdrawal packets arrive.
func (c *Client) applyToObjectTable(h proto.Header, msg any, fds []int) {
	switch m := msg.(type) {
	case proto.StartPrototype:
		c.pendingPrototypes[h.ObjectID] = &objects.Prototype{ID: h.ObjectID}

	case proto.PrototypeName:
		if p, ok := c.pendingPrototypes[h.ObjectID]; ok {
			p.Name = m.Name
		}
	case proto.PrototypeDisplay:
		if p, ok := c.pendingPrototypes[h.ObjectID]; ok {
			p.DisplayName = m.DisplayName
		}
	case proto.PrototypePath:
		if p, ok := c.pendingPrototypes[h.ObjectID]; ok {
			p.Path = m.Path
		}
	case proto.PrototypeFD:
		if p, ok := c.pendingPrototypes[h.ObjectID]; ok && len(fds) > 0 {
			p.FD = adoptFD(fds[0])
			fds = fds[1:]
		}
	case proto.PrototypeIconFD:
		if p, ok := c.pendingPrototypes[h.ObjectID]; ok && len(fds) > 0 {
			p.IconFD = adoptFD(fds[0])
			fds = fds[1:]
		}
	case proto.PrototypeActions:
		if p, ok := c.pendingPrototypes[h.ObjectID]; ok {
			p.Actions = m.Names
		}
	case proto.PrototypeBehavior:
		if p, ok := c.pendingPrototypes[h.ObjectID]; ok {
			p.Behaviors = m.Names
		}
	case proto.PrototypeAuthor:
		if p, ok := c.pendingPrototypes[h.ObjectID]; ok {
			p.Author = m.Author
		}
	case proto.PrototypeVersion:
		if p, ok := c.pendingPrototypes[h.ObjectID]; ok {
			p.Version = m.Version
		}
	case proto.CommitPrototypes:
		for id, p := range c.pendingPrototypes {
			c.objects.Put(p)
			delete(c.pendingPrototypes, id)
		}
	case proto.PrototypeWithdraw:
		c.objects.Remove(h.ObjectID)

	case proto.EnvironmentAnnouncement:
		c.objects.Put(&objects.Environment{
			ID: m.NewID, Name: m.Name, Description: m.Desc,
			X: m.X, Y: m.Y, W: m.W, H: m.H, Scale: m.Scale,
			Mascots: make(map[uint32]*objects.Mascot),
		})
	case proto.EnvironmentChanged:
		if obj, ok := c.objects.Get(h.ObjectID); ok {
			if env, ok := obj.(*objects.Environment); ok {
				env.Name, env.Description = m.Name, m.Desc
				env.X, env.Y, env.W, env.H, env.Scale = m.X, m.Y, m.W, m.H, m.Scale
			}
		}
	case proto.EnvironmentWithdrawn:
		c.objects.Remove(h.ObjectID)

	case proto.EnvironmentMascot:
		mascot := &objects.Mascot{ID: m.NewMascotID, PrototypeID: m.PrototypeID, EnvironmentID: h.ObjectID}
		c.objects.Put(mascot)
		if obj, ok := c.objects.Get(h.ObjectID); ok {
			if env, ok := obj.(*objects.Environment); ok {
				env.Mascots[mascot.ID] = mascot
			}
		}
	case proto.MascotMigrated:
		if obj, ok := c.objects.Get(h.ObjectID); ok {
			if mascot, ok := obj.(*objects.Mascot); ok {
				if old, ok := c.objects.Get(mascot.EnvironmentID); ok {
					if env, ok := old.(*objects.Environment); ok {
						delete(env.Mascots, mascot.ID)
					}
				}
				mascot.EnvironmentID = m.EnvironmentID
				if next, ok := c.objects.Get(m.EnvironmentID); ok {
					if env, ok := next.(*objects.Environment); ok {
						env.Mascots[mascot.ID] = mascot
					}
				}
			}
		}
	case proto.MascotDisposed:
		if obj, ok := c.objects.Get(h.ObjectID); ok {
			if mascot, ok := obj.(*objects.Mascot); ok {
				if env, ok := c.objects.Get(mascot.EnvironmentID); ok {
					if env, ok := env.(*objects.Environment); ok {
						delete(env.Mascots, mascot.ID)
					}
				}
			}
		}
		c.objects.Remove(h.ObjectID)
	case proto.MascotInfo:
		if obj, ok := c.objects.Get(h.ObjectID); ok {
			if mascot, ok := obj.(*objects.Mascot); ok {
				applyMascotInfo(mascot, m)
			}
		}
	case proto.SelectionDone, proto.SelectionCancelled:
		c.endSelection(h.ObjectID)
	}
}

func applyMascotInfo(mascot *objects.Mascot, m proto.MascotInfo) {
	mascot.PrototypeID = m.PrototypeID
	mascot.EnvironmentID = m.EnvironmentID
	mascot.State = m.State
	mascot.CurrentAction = m.ActionName
	mascot.ActionIndex = m.ActionIndex
	mascot.CurrentBehavior = m.BehaviorName
	mascot.Affordance = m.AffordanceName

	mascot.ActionPool = mascot.ActionPool[:0]
	for _, a := range m.ActionPool {
		mascot.ActionPool = append(mascot.ActionPool, objects.ActionPoolEntry{Name: a.Name, Index: a.Index})
	}
	mascot.BehaviorPool = mascot.BehaviorPool[:0]
	for _, b := range m.BehaviorPool {
		mascot.BehaviorPool = append(mascot.BehaviorPool, objects.BehaviorPoolEntry{Name: b.Name, Frequency: b.Frequency})
	}
	mascot.Variables = mascot.Variables[:0]
	for _, v := range m.Variables {
		mascot.Variables = append(mascot.Variables, objects.Variable{
			IsFloat: v.Kind == proto.VariableFloat, IntValue: v.IntValue, FloatValue: v.FloatValue,
			Used: v.Used, EvaluateOnce: v.EvaluateOnce, ScriptID: v.ScriptID,
		})
	}
}

// adoptFD wraps a raw ancillary-data fd as an owned *os.File; the
// kernel-delivered fd is already this process's own copy (recvmsg dup's
// it), so no extra dup is needed here — only closing it on object
// teardown matters.
func adoptFD(fd int) *os.File {
	return os.NewFile(uintptr(fd), "shimejictl-fd")
}
