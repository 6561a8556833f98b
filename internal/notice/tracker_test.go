package notice

import "testing"

func TestTracker_Observe(t *testing.T) {
	tr := NewTracker()

	steps := []struct {
		class Class
		cond  Condition
		want  bool
	}{
		{ClassPlayer, Failing, true},
		{ClassPlayer, Failing, false},
		{ClassPlayer, Failing, false},
		{ClassBus, Failing, true}, // classes are independent
		{ClassPlayer, OK, true},
		{ClassPlayer, OK, false},
		{ClassPlayer, Failing, true},
	}

	for i, s := range steps {
		if got := tr.Observe(s.class, s.cond); got != s.want {
			t.Errorf("step %d: Observe(%v, %v) = %v, want %v", i, s.class, s.cond, got, s.want)
		}
	}
}

func TestTracker_Recover(t *testing.T) {
	var tr Tracker // zero value must work

	if tr.Recover(ClassPeer) {
		t.Error("Recover on a fresh class should not report a recovery")
	}
	tr.Fail(ClassPeer)
	if !tr.Recover(ClassPeer) {
		t.Error("Recover after Fail should report a recovery")
	}
	if tr.Last(ClassPeer) != OK {
		t.Errorf("Last() = %v, want ok", tr.Last(ClassPeer))
	}
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker()
	tr.Fail(ClassPeer)
	tr.Reset(ClassPeer)

	if tr.Last(ClassPeer) != Unknown {
		t.Errorf("Last() after Reset = %v, want unknown", tr.Last(ClassPeer))
	}
	if !tr.Fail(ClassPeer) {
		t.Error("first Fail after Reset should be a transition")
	}
}
