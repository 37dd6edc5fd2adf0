package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/alexanderramin/proposal/internal/llm"
)

// ScriptedLLM is an llm.LLMClient that replies from per-task queues and
// records every request. When a task's queue is empty the task's fallback
// reply is used; with no fallback the call fails.
type ScriptedLLM struct {
	mu        sync.Mutex
	queues    map[llm.TaskType][]scriptedReply
	fallbacks map[llm.TaskType]scriptedReply
	requests  []llm.GenerateRequest
}

type scriptedReply struct {
	text string
	err  error
}

// NewScriptedLLM returns an empty script.
func NewScriptedLLM() *ScriptedLLM {
	return &ScriptedLLM{
		queues:    make(map[llm.TaskType][]scriptedReply),
		fallbacks: make(map[llm.TaskType]scriptedReply),
	}
}

// Reply queues a raw text reply for task.
func (s *ScriptedLLM) Reply(task llm.TaskType, text string) *ScriptedLLM {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queues[task] = append(s.queues[task], scriptedReply{text: text})
	return s
}

// ReplyJSON queues v, marshaled as JSON, as a reply for task.
func (s *ScriptedLLM) ReplyJSON(task llm.TaskType, v any) *ScriptedLLM {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("scripted llm: marshaling reply: %v", err))
	}
	return s.Reply(task, string(data))
}

// Fail queues an error for task.
func (s *ScriptedLLM) Fail(task llm.TaskType, err error) *ScriptedLLM {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queues[task] = append(s.queues[task], scriptedReply{err: err})
	return s
}

// Always sets the reply used for task once its queue is drained.
func (s *ScriptedLLM) Always(task llm.TaskType, text string) *ScriptedLLM {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallbacks[task] = scriptedReply{text: text}
	return s
}

func (s *ScriptedLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)

	reply, ok := s.fallbacks[req.Task]
	if q := s.queues[req.Task]; len(q) > 0 {
		reply, ok = q[0], true
		s.queues[req.Task] = q[1:]
	}
	if !ok {
		return nil, fmt.Errorf("scripted llm: no reply for task %s: %w", req.Task, llm.ErrProviderUnavailable)
	}
	if reply.err != nil {
		return nil, reply.err
	}
	return &llm.GenerateResponse{Text: reply.text, Model: "scripted"}, nil
}

func (s *ScriptedLLM) Available(context.Context) bool { return true }

// Requests returns a copy of all recorded requests.
func (s *ScriptedLLM) Requests() []llm.GenerateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.GenerateRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Calls counts recorded requests for task.
func (s *ScriptedLLM) Calls(task llm.TaskType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r.Task == task {
			n++
		}
	}
	return n
}

// LastRequest returns the most recent request for task.
func (s *ScriptedLLM) LastRequest(task llm.TaskType) (llm.GenerateRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Task == task {
			return s.requests[i], true
		}
	}
	return llm.GenerateRequest{}, false
}
