// Copyright (c) Huawei Technologies Co., Ltd. 2026. All rights reserved.
// qosguard licensed under the Mulan PSL v2.
// You can use this software according to the terms and conditions of the Mulan PSL v2.
// You may obtain a copy of Mulan PSL v2 at:
//     http://license.coscl.org.cn/MulanPSL2
// THIS SOFTWARE IS PROVIDED ON AN "AS IS" BASIS, WITHOUT WARRANTIES OF ANY KIND, EITHER EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO NON-INFRINGEMENT, MERCHANTABILITY OR FIT FOR A PARTICULAR
// PURPOSE.
// See the Mulan PSL v2 for more details.
// Author: qosguard team
// Create: 2026-03-05
// Description: This file implements typed producers and consumers

// Package pipeline propagates typed values from producers to consumers within one tick.
//
// A Producer delivers every emitted value to its consumers in subscription order.
// A consumer subscribed to N producers completes a batch once it has received one
// value from each of them; the optional OnBatchComplete and OnCleanup hooks run at
// that point. The pipeline holds no business state and is not safe for concurrent use.
package pipeline

import (
	"github.com/pkg/errors"
)

// ConsumerBase holds the bookkeeping of a consumer. Embed it in every Consumer.
type ConsumerBase struct {
	expected int
	received int
}

func (b *ConsumerBase) counters() *ConsumerBase {
	return b
}

// ExpectedProducers returns the number of producers the consumer is subscribed to
func (b *ConsumerBase) ExpectedProducers() int {
	return b.expected
}

// Received returns the number of values received in the current iteration
func (b *ConsumerBase) Received() int {
	return b.received
}

// Consumer receives values of type T
type Consumer[T any] interface {
	Consume(T) error
	counters() *ConsumerBase
}

// BatchCompleter is implemented by consumers that act once all producers delivered
type BatchCompleter interface {
	OnBatchComplete() error
}

// Cleaner is implemented by consumers that drop per-iteration state after a batch
type Cleaner interface {
	OnCleanup()
}

// Producer fans values out to its consumers
type Producer[T any] struct {
	consumers []Consumer[T]
}

// Subscribe appends c to the consumers of p
func (p *Producer[T]) Subscribe(c Consumer[T]) {
	p.consumers = append(p.consumers, c)
	c.counters().expected++
}

// Consumers returns the number of subscribed consumers
func (p *Producer[T]) Consumers() int {
	return len(p.consumers)
}

// Emit delivers v to every consumer in subscription order.
// The first failure stops the delivery and is returned, consumers already served keep the value.
func (p *Producer[T]) Emit(v T) error {
	for i, c := range p.consumers {
		if err := deliver(c, v); err != nil {
			return errors.Wrapf(err, "consumer %d", i)
		}
	}
	return nil
}

func deliver[T any](c Consumer[T], v T) error {
	b := c.counters()
	if err := c.Consume(v); err != nil {
		b.received = 0
		cleanup(c)
		return err
	}
	b.received++
	if b.received < b.expected {
		return nil
	}
	var err error
	if completer, ok := c.(BatchCompleter); ok {
		err = completer.OnBatchComplete()
	}
	b.received = 0
	cleanup(c)
	return err
}

func cleanup(c interface{}) {
	if cleaner, ok := c.(Cleaner); ok {
		cleaner.OnCleanup()
	}
}

// ConsumerFunc adapts a function to a Consumer
type ConsumerFunc[T any] struct {
	ConsumerBase
	fn func(T) error
}

// NewConsumerFunc returns a Consumer calling fn for every value
func NewConsumerFunc[T any](fn func(T) error) *ConsumerFunc[T] {
	return &ConsumerFunc[T]{fn: fn}
}

// Consume calls the wrapped function
func (f *ConsumerFunc[T]) Consume(v T) error {
	return f.fn(v)
}
