package conversation

import (
	"context"
	"sync"
)

// ChatLocker serializes dispatch cycles per chat within one process.
type ChatLocker struct {
	mu    sync.Mutex
	chats map[int64]*chatLock
}

type chatLock struct {
	sem  chan struct{}
	refs int
}

func NewChatLocker() *ChatLocker {
	return &ChatLocker{chats: make(map[int64]*chatLock)}
}

// Lock blocks until the chat is free or ctx is done.
func (l *ChatLocker) Lock(ctx context.Context, chatID int64) (func(), error) {
	l.mu.Lock()
	cl, ok := l.chats[chatID]
	if !ok {
		cl = &chatLock{sem: make(chan struct{}, 1)}
		l.chats[chatID] = cl
	}
	cl.refs++
	l.mu.Unlock()

	select {
	case cl.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(chatID, cl)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-cl.sem
			l.release(chatID, cl)
		})
	}, nil
}

func (l *ChatLocker) release(chatID int64, cl *chatLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cl.refs--
	if cl.refs == 0 {
		delete(l.chats, chatID)
	}
}
