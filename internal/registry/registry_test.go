package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeMember struct {
	notified int
}

func (f *fakeMember) NotifyEngineFailure() { f.notified++ }

func TestNotifyAllReachesEveryMember(t *testing.T) {
	r := New()
	a, b := &fakeMember{}, &fakeMember{}
	r.Add(a)
	r.Add(b)

	r.NotifyAll()

	assert.Equal(t, 1, a.notified)
	assert.Equal(t, 1, b.notified)
}

func TestRemoveDropsOnlyThatMember(t *testing.T) {
	r := New()
	a, b := &fakeMember{}, &fakeMember{}
	r.Add(a)
	r.Add(b)

	r.Remove(a)
	r.NotifyAll()

	assert.Equal(t, 0, a.notified)
	assert.Equal(t, 1, b.notified)
	assert.Equal(t, 1, r.Len())
}

func TestNotifyAllSnapshotsBeforeCalling(t *testing.T) {
	r := New()
	a := &fakeMember{}
	r.Add(a)

	// A member removing itself mid-notification must not affect delivery
	// to already-snapshotted members, nor deadlock on the registry lock.
	self := &selfRemoving{registry: r}
	r.Add(self)

	r.NotifyAll()

	assert.Equal(t, 1, a.notified)
	assert.True(t, self.notified)
}

type selfRemoving struct {
	registry *Registry
	notified bool
}

func (s *selfRemoving) NotifyEngineFailure() {
	s.notified = true
	s.registry.Remove(s)
}
