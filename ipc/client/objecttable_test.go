package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wired-desktop/shimejictl/ipc/objects"
	"github.com/wired-desktop/shimejictl/ipc/proto"
)

func newTestClient() *Client {
	return &Client{
		objects:           objects.New(),
		handlers:          make(map[byte]Handler),
		pendingPrototypes: make(map[uint32]*objects.Prototype),
	}
}

func TestApplyToObjectTablePrototypeLifecycle(t *testing.T) {
	c := newTestClient()

	c.applyToObjectTable(proto.Header{ObjectID: 1}, proto.StartPrototype{}, nil)
	c.applyToObjectTable(proto.Header{ObjectID: 1}, proto.PrototypeName{Name: "tux"}, nil)
	c.applyToObjectTable(proto.Header{ObjectID: 1}, proto.PrototypeActions{Names: []string{"Stand"}}, nil)
	c.applyToObjectTable(proto.Header{ObjectID: 1}, proto.CommitPrototypes{}, nil)

	obj, ok := c.objects.Get(1)
	require.True(t, ok)
	protoObj, ok := obj.(*objects.Prototype)
	require.True(t, ok)
	assert.Equal(t, "tux", protoObj.Name)
	assert.Equal(t, []string{"Stand"}, protoObj.Actions)

	c.applyToObjectTable(proto_h(0x57, 1), proto.PrototypeWithdraw{}, nil)
	_, ok = c.objects.Get(1)
	assert.False(t, ok)
}

func TestApplyToObjectTableEnvironmentAndMascotLifecycle(t *testing.T) {
	c := newTestClient()

	c.applyToObjectTable(proto.Header{}, proto.EnvironmentAnnouncement{NewID: 10, Name: "desk"}, nil)
	env, ok := c.objects.Get(10)
	require.True(t, ok)
	assert.Equal(t, "desk", env.(*objects.Environment).Name)

	c.applyToObjectTable(proto.Header{ObjectID: 10}, proto.EnvironmentMascot{NewMascotID: 20, PrototypeID: 1}, nil)
	mascotObj, ok := c.objects.Get(20)
	require.True(t, ok)
	mascot := mascotObj.(*objects.Mascot)
	assert.Equal(t, uint32(10), mascot.EnvironmentID)
	assert.Contains(t, env.(*objects.Environment).Mascots, uint32(20))

	c.applyToObjectTable(proto.Header{ObjectID: 20}, proto.MascotDisposed{}, nil)
	_, ok = c.objects.Get(20)
	assert.False(t, ok)
	assert.NotContains(t, env.(*objects.Environment).Mascots, uint32(20))

	c.applyToObjectTable(proto.Header{ObjectID: 10}, proto.EnvironmentWithdrawn{}, nil)
	_, ok = c.objects.Get(10)
	assert.False(t, ok)
}

func TestApplyToObjectTableMascotInfoPopulatesPools(t *testing.T) {
	c := newTestClient()
	c.objects.Put(&objects.Mascot{ID: 5})

	info := proto.MascotInfo{
		ActionName:   "Stand",
		BehaviorName: "StandBehavior",
		ActionPool:   []proto.ActionPoolEntry{{Name: "Stand", Index: 0}},
		BehaviorPool: []proto.BehaviorPoolEntry{{Name: "StandBehavior", Frequency: 10}},
		Variables:    []proto.MascotVariable{{Kind: proto.VariableInt, IntValue: 3}},
	}
	c.applyToObjectTable(proto.Header{ObjectID: 5}, info, nil)

	obj, _ := c.objects.Get(5)
	mascot := obj.(*objects.Mascot)
	assert.Equal(t, "Stand", mascot.CurrentAction)
	require.Len(t, mascot.ActionPool, 1)
	assert.Equal(t, "Stand", mascot.ActionPool[0].Name)
	require.Len(t, mascot.Variables, 1)
	assert.Equal(t, int32(3), mascot.Variables[0].IntValue)
}

func proto_h(typ byte, objectID uint32) proto.Header {
	return proto.Header{Type: typ, ObjectID: objectID}
}
