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
// Description: This file implements the join barrier of the pipeline

package pipeline

// SyncConsumer joins the values of exactly n producers.
// Each producer subscribes one of Inputs(); combine runs once all inputs delivered,
// with the values in arrival order.
type SyncConsumer[T any] struct {
	inputs  []*syncInput[T]
	filled  []bool
	values  []T
	order   []int
	combine func([]T) error
}

type syncInput[T any] struct {
	ConsumerBase
	owner *SyncConsumer[T]
	index int
}

// NewSyncConsumer returns a SyncConsumer joining n producers
func NewSyncConsumer[T any](n int, combine func([]T) error) *SyncConsumer[T] {
	s := &SyncConsumer[T]{
		inputs:  make([]*syncInput[T], n),
		filled:  make([]bool, n),
		values:  make([]T, n),
		combine: combine,
	}
	for i := range s.inputs {
		s.inputs[i] = &syncInput[T]{owner: s, index: i}
	}
	return s
}

// Inputs returns one consumer per joined producer
func (s *SyncConsumer[T]) Inputs() []Consumer[T] {
	res := make([]Consumer[T], len(s.inputs))
	for i, in := range s.inputs {
		res[i] = in
	}
	return res
}

// Input returns the i-th input
func (s *SyncConsumer[T]) Input(i int) Consumer[T] {
	return s.inputs[i]
}

// Pending returns the number of inputs that delivered in the current iteration
func (s *SyncConsumer[T]) Pending() int {
	return len(s.order)
}

// Consume stores v for the input, a second value from the same input replaces the first
func (in *syncInput[T]) Consume(v T) error {
	s := in.owner
	s.values[in.index] = v
	if !s.filled[in.index] {
		s.filled[in.index] = true
		s.order = append(s.order, in.index)
	}
	if len(s.order) < len(s.inputs) {
		return nil
	}
	return s.flush()
}

// ForceFlush combines the values delivered so far, if any
func (s *SyncConsumer[T]) ForceFlush() error {
	if len(s.order) == 0 {
		return nil
	}
	return s.flush()
}

// Reset discards a partially filled iteration
func (s *SyncConsumer[T]) Reset() {
	var zero T
	for i := range s.values {
		s.values[i] = zero
		s.filled[i] = false
	}
	s.order = s.order[:0]
}

func (s *SyncConsumer[T]) flush() error {
	batch := make([]T, 0, len(s.order))
	for _, i := range s.order {
		batch = append(batch, s.values[i])
	}
	s.Reset()
	return s.combine(batch)
}
