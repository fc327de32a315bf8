// Copyright 2025 Orebase Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package statemachine

import (
	"errors"
	"testing"
)

type requestStatus string

const (
	requestDraft     requestStatus = "DRAFT"
	requestSubmitted requestStatus = "SUBMITTED"
	requestApproved  requestStatus = "APPROVED"
	requestDenied    requestStatus = "DENIED"
)

func TestStateMachine_Basic(t *testing.T) {
	sm := NewWithState(requestDraft)

	sm.Allow(requestDraft, requestSubmitted).
		Allow(requestSubmitted, requestApproved, requestDenied)

	if sm.Current() != requestDraft {
		t.Errorf("expected current state to be %v, got %v", requestDraft, sm.Current())
	}

	if err := sm.TransitionTo(requestSubmitted); err != nil {
		t.Errorf("expected transition to succeed, got error: %v", err)
	}

	if sm.Current() != requestSubmitted {
		t.Errorf("expected current state to be %v, got %v", requestSubmitted, sm.Current())
	}

	if err := sm.TransitionTo(requestDraft); err == nil {
		t.Error("expected transition to fail, but it succeeded")
	}
}

func TestStateMachine_CanTransition(t *testing.T) {
	sm := NewWithState(requestDraft)
	sm.Allow(requestDraft, requestSubmitted)

	if !sm.CanTransition(requestDraft, requestSubmitted) {
		t.Error("expected to be able to transition to SUBMITTED")
	}

	if sm.CanTransition(requestDraft, requestApproved) {
		t.Error("expected NOT to be able to transition to APPROVED")
	}
}

func TestStateMachine_Hooks(t *testing.T) {
	sm := NewWithState(requestDraft)
	sm.Allow(requestDraft, requestSubmitted)

	var executionOrder []string

	sm.OnExit(requestDraft, func(state requestStatus) error {
		executionOrder = append(executionOrder, "exit:draft")
		return nil
	})
	sm.OnTransition(func(from, to requestStatus, event Event) error {
		executionOrder = append(executionOrder, "transition")
		return nil
	})
	sm.OnEnter(requestSubmitted, func(state requestStatus) error {
		executionOrder = append(executionOrder, "enter:submitted")
		return nil
	})

	if err := sm.TransitionTo(requestSubmitted); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	want := []string{"exit:draft", "transition", "enter:submitted"}
	if len(executionOrder) != len(want) {
		t.Fatalf("expected %d hook calls, got %d", len(want), len(executionOrder))
	}
	for i, step := range want {
		if executionOrder[i] != step {
			t.Errorf("hook order[%d] = %s, want %s", i, executionOrder[i], step)
		}
	}
}

func TestStateMachine_Validator(t *testing.T) {
	sm := NewWithState(requestDraft)
	sm.Allow(requestDraft, requestSubmitted)

	sm.AddValidator(func(from, to requestStatus, event Event) error {
		return errors.New("not allowed")
	})

	if err := sm.TransitionTo(requestSubmitted); err == nil {
		t.Error("expected validator to reject the transition")
	}
	if sm.Current() != requestDraft {
		t.Errorf("state moved despite failed validation: %v", sm.Current())
	}
}

func TestStateMachine_Fire(t *testing.T) {
	sm := NewWithState(requestDraft)
	sm.AllowEvent(requestDraft, "submit", requestSubmitted).
		AllowEvent(requestSubmitted, "approve", requestApproved)

	if err := sm.Fire("submit"); err != nil {
		t.Fatalf("fire submit: %v", err)
	}
	if sm.Current() != requestSubmitted {
		t.Errorf("expected SUBMITTED, got %v", sm.Current())
	}

	if err := sm.Fire("submit"); err == nil {
		t.Error("expected unknown event for state to fail")
	}
}

func TestStateMachine_History(t *testing.T) {
	sm := NewWithState(requestDraft)
	sm.Allow(requestDraft, requestSubmitted).
		Allow(requestSubmitted, requestApproved)

	_ = sm.TransitionTo(requestSubmitted)
	_ = sm.TransitionTo(requestApproved)
	_ = sm.TransitionTo(requestDraft) // invalid, still recorded

	history := sm.History()
	if len(history) != 3 {
		t.Fatalf("expected 3 history records, got %d", len(history))
	}
	if history[2].Error == nil {
		t.Error("expected the invalid transition to carry an error")
	}

	sm.Reset()
	if len(sm.History()) != 0 {
		t.Error("expected history to be cleared on reset")
	}
	if sm.Current() != requestDraft {
		t.Errorf("expected reset to initial state, got %v", sm.Current())
	}
}
