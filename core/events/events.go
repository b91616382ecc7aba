// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package events

import (
	"context"

	vgrand "code.vegaprotocol.io/loopvault/libs/rand"
)

// Type is the type of an engine event.
type Type int

const (
	// All event type, used by subscribers to receive all events, has no
	// corresponding event payload.
	All Type = iota
	VaultDepositEvent
	VaultRedeemEvent
	LeverageIncreasedEvent
	LeverageDecreasedEvent
	ParametersUpdatedEvent
	LeveragedDepositEvent
	LeveragedRedeemEvent
)

var eventStrings = map[Type]string{
	All:                    "ALL",
	VaultDepositEvent:      "VaultDeposit",
	VaultRedeemEvent:       "VaultRedeem",
	LeverageIncreasedEvent: "LeverageIncreased",
	LeverageDecreasedEvent: "LeverageDecreased",
	ParametersUpdatedEvent: "ParametersUpdated",
	LeveragedDepositEvent:  "LeveragedDeposit",
	LeveragedRedeemEvent:   "LeveragedRedeem",
}

func (t Type) String() string {
	s, ok := eventStrings[t]
	if !ok {
		return "UNKNOWN EVENT"
	}
	return s
}

// Event is the base event interface type. The sequence ID is set by the
// broker when the event is sent, and only once.
type Event interface {
	Type() Type
	Context() context.Context
	TraceID() string
	Sequence() uint64
	SetSequenceID(s uint64)
}

// Base common denominator all event-bus events share.
type Base struct {
	ctx     context.Context
	traceID string
	seq     uint64
	et      Type
}

type traceIDKey int

var traceKey traceIDKey

// WithTraceID returns a derived context carrying the given trace ID, events
// created from it will share the ID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceKey, traceID)
}

func traceIDFromContext(ctx context.Context) (context.Context, string) {
	if tID, ok := ctx.Value(traceKey).(string); ok {
		return ctx, tID
	}
	tID := vgrand.RandomStr(64)
	return WithTraceID(ctx, tID), tID
}

func newBase(ctx context.Context, t Type) *Base {
	ctx, tID := traceIDFromContext(ctx)
	return &Base{
		ctx:     ctx,
		traceID: tID,
		et:      t,
	}
}

// TraceID returns the... trace ID.
func (b Base) TraceID() string {
	return b.traceID
}

// Type returns the event type.
func (b Base) Type() Type {
	return b.et
}

// Context returns the context the event was created from.
func (b Base) Context() context.Context {
	return b.ctx
}

// Sequence returns the event sequence number.
func (b Base) Sequence() uint64 {
	return b.seq
}

// SetSequenceID sets the event sequence number, the broker is the only
// caller, and only sets it once.
func (b *Base) SetSequenceID(s uint64) {
	if b.seq != 0 {
		return
	}
	b.seq = s
}
