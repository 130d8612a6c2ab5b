package cache

import "testing"

func TestGetSet(t *testing.T) {
	c := New[string]()

	if _, ok := c.Get("programs/acme"); ok {
		t.Error("Get on empty cache should miss")
	}

	c.Set("programs/acme", "cached")
	v, ok := c.Get("programs/acme")
	if !ok || v != "cached" {
		t.Errorf("Get() = %q, %v after Set", v, ok)
	}
}

func TestInvalidate_RemovesEntry(t *testing.T) {
	c := New[int]()
	c.Set("programs/acme", 42)

	c.Invalidate("programs/acme")

	if _, ok := c.Get("programs/acme"); ok {
		t.Error("entry should be gone after Invalidate")
	}
}

func TestInvalidate_NotifiesSubscribers(t *testing.T) {
	c := New[int]()

	ch, cancel := c.Subscribe("programs/acme")
	defer cancel()

	other, cancelOther := c.Subscribe("programs/globex")
	defer cancelOther()

	c.Invalidate("programs/acme")

	select {
	case key := <-ch:
		if key != "programs/acme" {
			t.Errorf("notified key = %q", key)
		}
	default:
		t.Fatal("subscriber should be notified")
	}

	select {
	case key := <-other:
		t.Errorf("unrelated subscriber notified with %q", key)
	default:
	}
}

func TestInvalidate_AbsentKeyStillBroadcasts(t *testing.T) {
	c := New[int]()

	ch, cancel := c.Subscribe("programs/acme")
	defer cancel()

	c.Invalidate("programs/acme")

	select {
	case <-ch:
	default:
		t.Fatal("invalidation of an uncached key should still notify")
	}
}

func TestSubscribe_CancelStopsNotifications(t *testing.T) {
	c := New[int]()

	ch, cancel := c.Subscribe("programs/acme")
	cancel()

	c.Invalidate("programs/acme")

	select {
	case <-ch:
		t.Fatal("cancelled subscriber should not be notified")
	default:
	}
}

func TestProgramKey(t *testing.T) {
	if got := ProgramKey("acme"); got != "programs/acme" {
		t.Errorf("ProgramKey() = %q", got)
	}
}
