package conversation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestChatLockerSerializesChat(t *testing.T) {
	l := NewChatLocker()
	var active, maxActive int32
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), 1)
			if err != nil {
				t.Error(err)
				return
			}
			defer unlock()

			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Fatalf("%d dispatches of one chat ran at once", maxActive)
	}
	if len(l.chats) != 0 {
		t.Fatalf("%d chat locks leaked", len(l.chats))
	}
}

func TestChatLockerIndependentChats(t *testing.T) {
	l := NewChatLocker()
	unlock1, err := l.Lock(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	defer unlock1()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlock2, err := l.Lock(ctx, 2)
	if err != nil {
		t.Fatalf("other chat blocked: %v", err)
	}
	unlock2()
}

func TestChatLockerHonoursContext(t *testing.T) {
	l := NewChatLocker()
	unlock, err := l.Lock(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err = l.Lock(ctx, 1); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Lock error = %v, want deadline exceeded", err)
	}

	unlock()
	unlock()
	if len(l.chats) != 0 {
		t.Fatalf("%d chat locks leaked", len(l.chats))
	}
}
