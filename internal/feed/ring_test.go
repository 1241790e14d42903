package feed

import (
	"sync"
	"testing"
	"time"
)

func TestDropRing_BasicPushReceive(t *testing.T) {
	ring := NewDropRing[int](10)

	for i := 0; i < 5; i++ {
		if !ring.Push(i) {
			t.Fatalf("Push(%d) returned false", i)
		}
	}

	if ring.Len() != 5 {
		t.Errorf("Len() = %d, want 5", ring.Len())
	}

	for i := 0; i < 5; i++ {
		val, ok := ring.TryReceive()
		if !ok {
			t.Fatalf("TryReceive() returned false for item %d", i)
		}
		if val != i {
			t.Errorf("received %d, want %d", val, i)
		}
	}

	if ring.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ring.Len())
	}
}

func TestDropRing_OverflowDropsOldest(t *testing.T) {
	const capacity = 5
	ring := NewDropRing[int](capacity)

	// Push capacity+1 items before any receive.
	for i := 0; i < capacity+1; i++ {
		if !ring.Push(i) {
			t.Fatalf("Push(%d) returned false", i)
		}
	}

	if ring.Len() != capacity {
		t.Fatalf("Len() = %d, want %d", ring.Len(), capacity)
	}

	// The single oldest item (0) was dropped; 1..5 remain in order.
	for want := 1; want <= capacity; want++ {
		got, ok := ring.TryReceive()
		if !ok {
			t.Fatalf("TryReceive failed, expected %d", want)
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}

	stats := ring.Stats()
	if stats.TotalDropped != 1 {
		t.Errorf("TotalDropped = %d, want 1", stats.TotalDropped)
	}
}

func TestDropRing_OverflowManyTimes(t *testing.T) {
	ring := NewDropRing[int](3)

	for i := 0; i < 100; i++ {
		ring.Push(i)
	}

	// Only the newest 3 survive.
	expected := []int{97, 98, 99}
	for _, want := range expected {
		got, ok := ring.TryReceive()
		if !ok {
			t.Fatalf("TryReceive failed, expected %d", want)
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}

	stats := ring.Stats()
	if stats.TotalDropped != 97 {
		t.Errorf("TotalDropped = %d, want 97", stats.TotalDropped)
	}
}

func TestDropRing_BlockingReceive(t *testing.T) {
	ring := NewDropRing[int](10)

	received := make(chan int, 1)

	go func() {
		val, ok := ring.Receive()
		if ok {
			received <- val
		}
	}()

	// Give the receiver time to start waiting.
	time.Sleep(10 * time.Millisecond)

	ring.Push(42)

	select {
	case val := <-received:
		if val != 42 {
			t.Errorf("received %d, want 42", val)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for blocked receive")
	}
}

func TestDropRing_Close(t *testing.T) {
	ring := NewDropRing[int](10)

	ring.Push(1)
	ring.Push(2)

	ring.Close()

	if ring.Push(3) {
		t.Error("Push should return false after Close")
	}

	// Remaining items drain first.
	val, ok := ring.TryReceive()
	if !ok || val != 1 {
		t.Errorf("TryReceive() = %d, %v; want 1, true", val, ok)
	}

	val, ok = ring.TryReceive()
	if !ok || val != 2 {
		t.Errorf("TryReceive() = %d, %v; want 2, true", val, ok)
	}

	_, ok = ring.Receive()
	if ok {
		t.Error("Receive should return false when closed and empty")
	}
}

func TestDropRing_CloseUnblocksReceive(t *testing.T) {
	ring := NewDropRing[int](10)

	done := make(chan bool, 1)

	go func() {
		_, ok := ring.Receive()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)

	ring.Close()

	select {
	case ok := <-done:
		if ok {
			t.Error("Receive should return false when closed and empty")
		}
	case <-time.After(time.Second):
		t.Fatal("Close did not unblock Receive")
	}
}

func TestDropRing_CloseIdempotent(t *testing.T) {
	ring := NewDropRing[int](4)

	ring.Close()
	ring.Close()

	if !ring.Closed() {
		t.Error("Closed() = false after Close")
	}
}

func TestDropRing_ConcurrentPushReceive(t *testing.T) {
	// Capacity covers all items so nothing is dropped.
	const numItems = 1000
	ring := NewDropRing[int](numItems)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < numItems; i++ {
			ring.Push(i)
		}
	}()

	received := make([]int, 0, numItems)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < numItems; i++ {
			val, ok := ring.Receive()
			if ok {
				received = append(received, val)
			}
		}
	}()

	wg.Wait()

	if len(received) != numItems {
		t.Fatalf("received %d items, want %d", len(received), numItems)
	}
	for i, val := range received {
		if val != i {
			t.Fatalf("received[%d] = %d, want %d", i, val, i)
		}
	}
}

func TestDropRing_WrapAround(t *testing.T) {
	ring := NewDropRing[int](5)

	ring.Push(1)
	ring.Push(2)
	ring.Push(3)

	ring.TryReceive() // removes 1
	ring.TryReceive() // removes 2

	// These writes wrap around the backing array.
	ring.Push(4)
	ring.Push(5)
	ring.Push(6)
	ring.Push(7)

	expected := []int{3, 4, 5, 6, 7}
	for _, want := range expected {
		got, ok := ring.TryReceive()
		if !ok {
			t.Fatalf("TryReceive failed, expected %d", want)
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}
}

func TestDropRing_Stats(t *testing.T) {
	ring := NewDropRing[int](10)

	stats := ring.Stats()
	if stats.Count != 0 || stats.Capacity != 10 || stats.TotalPushed != 0 || stats.TotalDelivered != 0 {
		t.Errorf("initial stats incorrect: %+v", stats)
	}

	ring.Push(1)
	ring.Push(2)
	ring.Push(3)

	stats = ring.Stats()
	if stats.Count != 3 || stats.TotalPushed != 3 {
		t.Errorf("stats after pushes: %+v", stats)
	}

	ring.TryReceive()
	ring.TryReceive()

	stats = ring.Stats()
	if stats.Count != 1 || stats.TotalDelivered != 2 {
		t.Errorf("stats after receives: %+v", stats)
	}
}

func TestNewDropRing_MinCapacity(t *testing.T) {
	ring := NewDropRing[int](0)
	if ring.Cap() != 1 {
		t.Errorf("Cap() = %d, want 1 for capacity 0", ring.Cap())
	}

	ring = NewDropRing[int](-5)
	if ring.Cap() != 1 {
		t.Errorf("Cap() = %d, want 1 for negative capacity", ring.Cap())
	}
}
