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

// InvitationStatus is the lifecycle state of an organization invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
	InvitationCanceled InvitationStatus = "canceled"
	InvitationExpired  InvitationStatus = "expired"
)

// Invitation lifecycle events.
const (
	EventAccept Event = "accept"
	EventReject Event = "reject"
	EventCancel Event = "cancel"
	EventExpire Event = "expire"
)

// IsTerminal reports whether the status admits no further transitions.
func (s InvitationStatus) IsTerminal() bool {
	return s != InvitationPending
}

// NewInvitationStateMachine builds the FSM for invitation processing.
// Only pending invitations move; every other state is terminal.
func NewInvitationStateMachine() *StateMachine[InvitationStatus] {
	sm := NewWithState(InvitationPending)

	sm.AllowEvent(InvitationPending, EventAccept, InvitationAccepted).
		AllowEvent(InvitationPending, EventReject, InvitationRejected).
		AllowEvent(InvitationPending, EventCancel, InvitationCanceled).
		AllowEvent(InvitationPending, EventExpire, InvitationExpired)

	return sm
}
