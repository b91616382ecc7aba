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

package broker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"code.vegaprotocol.io/loopvault/core/events"
	"code.vegaprotocol.io/loopvault/logging"
)

// Subscriber interface allows pushing values to subscribers, can be set to
// a Skip state (temporarily not receiving any events), or closed. Otherwise events are pushed
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/subscriber_mock.go -package mocks code.vegaprotocol.io/loopvault/core/broker Subscriber
type Subscriber interface {
	Push(val ...events.Event)
	Skip() <-chan struct{}
	Closed() <-chan struct{}
	C() chan<- []events.Event
	Types() []events.Type
	SetID(id int)
	ID() int
	Ack() bool
}

// Interface is the event bus broker as the engines see it. The mock doubles
// as a drop-in replacement throughout the tests so they can check the actual
// events an operation produces.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/broker_mock.go -mock_names Interface=MockBroker -package mocks code.vegaprotocol.io/loopvault/core/broker Interface
type Interface interface {
	Send(event events.Event)
	SendBatch(events []events.Event)
	Subscribe(s Subscriber) int
	SubscribeBatch(subs ...Subscriber)
	Unsubscribe(k int)
}

type subscription struct {
	Subscriber
	required bool
}

// Broker - the base broker type. Events originate in the engines and are
// fanned out to subscribers by type, sequence IDs are assigned on the way
// in so subscribers observe a total order.
type Broker struct {
	ctx context.Context
	log *logging.Logger

	mu    sync.Mutex
	tSubs map[events.Type]map[int]*subscription
	// these fields ensure a unique ID for all subscribers, regardless of what event types
	// they subscribe to. Once the broker context is cancelled, subscribers can close their
	// internal channels and shut down cleanly
	subs   map[int]subscription
	keys   []int
	eChans map[events.Type]chan []events.Event

	seq uint64
}

// New creates a new base broker.
func New(ctx context.Context, log *logging.Logger, config Config) *Broker {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Broker{
		ctx:    ctx,
		log:    log,
		tSubs:  map[events.Type]map[int]*subscription{},
		subs:   map[int]subscription{},
		keys:   []int{},
		eChans: map[events.Type]chan []events.Event{},
	}
}

func (b *Broker) sendChannel(sub Subscriber, evts []events.Event) {
	// wait for a max of 1 second
	timeout := time.NewTimer(time.Second)
	defer func() {
		// drain the channel if we managed to leave the function before the timer expired
		if !timeout.Stop() {
			<-timeout.C
		}
	}()
	select {
	case <-b.ctx.Done():
		return
	case <-sub.Closed():
		return
	case sub.C() <- evts:
		return
	case <-timeout.C:
		return
	}
}

func (b *Broker) sendChannelSync(sub Subscriber, evts []events.Event) bool {
	select {
	case <-b.ctx.Done():
		return false
	case <-sub.Skip():
		return false
	case <-sub.Closed():
		return true
	case sub.C() <- evts:
		return false
	default:
		go b.sendChannel(sub, evts)
		return false
	}
}

func (b *Broker) startSending(t events.Type, evts []events.Event) {
	b.mu.Lock()
	ch, ok := b.eChans[t]
	if !ok {
		subs := b.getSubsByType(t)
		ln := len(subs) + 1                      // at least buffer 1
		ch = make(chan []events.Event, ln*20+20) // create a channel with buffer, min 40
		b.eChans[t] = ch                         // assign the newly created channel
	}
	b.mu.Unlock()
	ch <- evts
	if ok {
		// we already started the routine to consume the channel
		// we can return here
		return
	}
	go func(ch chan []events.Event, t events.Type) {
		defer func() {
			b.mu.Lock()
			delete(b.eChans, t)
			close(ch)
			b.mu.Unlock()
		}()
		for {
			select {
			case <-b.ctx.Done():
				return
			case evts := <-ch:
				b.mu.Lock()
				subs := b.getSubsByType(t)
				b.mu.Unlock()
				unsub := make([]int, 0, len(subs))
				for k, sub := range subs {
					select {
					case <-b.ctx.Done():
						return
					case <-sub.Skip():
						continue
					case <-sub.Closed():
						unsub = append(unsub, k)
					default:
						if sub.required {
							sub.Push(evts...)
						} else if rm := b.sendChannelSync(sub, evts); rm {
							unsub = append(unsub, k)
						}
					}
				}
				if len(unsub) != 0 {
					b.mu.Lock()
					b.rmSubs(unsub...)
					b.mu.Unlock()
				}
			}
		}
	}(ch, t)
}

// Send sends an event to all subscribers.
func (b *Broker) Send(event events.Event) {
	event.SetSequenceID(atomic.AddUint64(&b.seq, 1))
	b.startSending(event.Type(), []events.Event{event})
}

// SendBatch sends a slice of events to all subscribers. Batches are
// expected to hold events of a single type, the first event decides which
// fan-out channel the whole batch goes on.
func (b *Broker) SendBatch(evts []events.Event) {
	if len(evts) == 0 {
		return
	}
	for _, evt := range evts {
		evt.SetSequenceID(atomic.AddUint64(&b.seq, 1))
	}
	b.startSending(evts[0].Type(), evts)
}

// simplified version for better performance - unfortunately, we'll still need to copy the map
func (b *Broker) getSubsByType(t events.Type) map[int]*subscription {
	// we add the entire ALL map to type-specific maps, so if set, we can return this map directly
	subs, ok := b.tSubs[t]
	if !ok {
		// if a typed map isn't set (yet), return the ALL subscribers directly instead
		subs = b.tSubs[events.All]
	}
	// we still need to create a copy to keep the race detector happy
	cpy := make(map[int]*subscription, len(subs))
	for k, v := range subs {
		cpy[k] = v
	}
	return cpy
}

// Subscribe registers a new subscriber, returning the key.
func (b *Broker) Subscribe(s Subscriber) int {
	b.mu.Lock()
	k := b.subscribe(s)
	s.SetID(k)
	b.mu.Unlock()
	return k
}

// SubscribeBatch registers a set of subscribers in one go.
func (b *Broker) SubscribeBatch(subs ...Subscriber) {
	b.mu.Lock()
	for _, s := range subs {
		k := b.subscribe(s)
		s.SetID(k)
	}
	b.mu.Unlock()
}

func (b *Broker) subscribe(s Subscriber) int {
	k := b.getKey()
	sub := subscription{
		Subscriber: s,
		required:   s.Ack(),
	}
	b.subs[k] = sub
	types := sub.Types()
	// a subscriber listing the All type alongside specific ones subscribes
	// to everything no matter what, treat it accordingly
	isAll := false
	if len(types) == 0 {
		isAll = true
		types = []events.Type{events.All}
	} else {
		for _, t := range types {
			if t == events.All {
				types = []events.Type{events.All}
				isAll = true
				break
			}
		}
	}
	for _, t := range types {
		if _, ok := b.tSubs[t]; !ok {
			b.tSubs[t] = map[int]*subscription{}
			if !isAll {
				// not the ALL event, so the "all" subscribers should be added to this new map
				for ak, as := range b.tSubs[events.All] {
					b.tSubs[t][ak] = as
				}
			}
		}
		b.tSubs[t][k] = &sub
	}
	if isAll {
		for t := range b.tSubs {
			// don't add ALL subs to the map they're already in
			if t != events.All {
				b.tSubs[t][k] = &sub
			}
		}
	}
	return k
}

// Unsubscribe removes subscriber from broker
// this does not change the state of the subscriber.
func (b *Broker) Unsubscribe(k int) {
	b.mu.Lock()
	b.rmSubs(k)
	b.mu.Unlock()
}

func (b *Broker) getKey() int {
	if len(b.keys) > 0 {
		k := b.keys[0]
		b.keys = b.keys[1:] // pop first element
		return k
	}
	return len(b.subs) + 1 // add 1 to avoid zero value
}

func (b *Broker) rmSubs(keys ...int) {
	for _, k := range keys {
		// if the sub doesn't exist, this could be a duplicate call
		// we do not want the keys slice to contain duplicate values
		// and so we have to check this first
		s, ok := b.subs[k]
		if !ok {
			return
		}
		types := s.Types()
		for _, t := range types {
			if t == events.All {
				types = nil
				break
			}
		}
		if len(types) == 0 {
			// remove in all maps
			for t := range b.tSubs {
				delete(b.tSubs[t], k)
			}
		} else {
			for _, t := range types {
				delete(b.tSubs[t], k)
			}
		}
		delete(b.subs, k)
		b.keys = append(b.keys, k)
	}
}
