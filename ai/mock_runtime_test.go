package ai

import (
	"context"
	"sync"
)

// mockRuntime is a scripted Runtime. listResults is consumed one entry per
// ListModels call; the last entry repeats once the script runs out.
type mockRuntime struct {
	mu          sync.Mutex
	listResults []listResult
	reply       string
	chatErr     error
	panicOnChat bool

	listCalls    int
	chatCalls    int
	lastModel    string
	lastMessages []Message
}

type listResult struct {
	models []string
	err    error
	panics bool
}

func (m *mockRuntime) ListModels(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listCalls++
	if len(m.listResults) == 0 {
		return []string{DefaultModel}, nil
	}
	idx := m.listCalls - 1
	if idx >= len(m.listResults) {
		idx = len(m.listResults) - 1
	}
	r := m.listResults[idx]
	if r.panics {
		panic("list exploded")
	}
	return r.models, r.err
}

func (m *mockRuntime) Chat(ctx context.Context, model string, messages []Message) (string, error) {
	m.mu.Lock()
	m.chatCalls++
	m.lastModel = model
	m.lastMessages = append([]Message(nil), messages...)
	reply, err, shouldPanic := m.reply, m.chatErr, m.panicOnChat
	m.mu.Unlock()

	if shouldPanic {
		panic("runtime exploded")
	}
	return reply, err
}

func (m *mockRuntime) calls() (list, chat int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls, m.chatCalls
}
