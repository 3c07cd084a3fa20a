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
// Create: 2026-03-21
// Description: This file counts hardware events of cgroups with perf_event_open

// Package perf provide perf functions
package perf

import (
	"encoding/binary"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"isula.org/qosguard/pkg/common/log"
)

// counted hardware events
const (
	eventInstructions = "instructions"
	eventCycles       = "cycles"
)

const (
	counterSize = 8
	probeTime   = time.Millisecond
)

type eventConfig struct {
	name   string
	config uint64
	reader func(*Stat, uint64)
}

var eventConfigs = []eventConfig{
	{
		name:   eventInstructions,
		config: unix.PERF_COUNT_HW_INSTRUCTIONS,
		reader: func(s *Stat, v uint64) { s.Instructions += v },
	},
	{
		name:   eventCycles,
		config: unix.PERF_COUNT_HW_CPU_CYCLES,
		reader: func(s *Stat, v uint64) { s.CPUCycles += v },
	},
}

var (
	probeOnce sync.Once
	hwSupport bool
)

// Stat is perf stat info
type Stat struct {
	Instructions uint64
	CPUCycles    uint64
}

// Add accumulates o into s
func (s *Stat) Add(o *Stat) {
	s.Instructions += o.Instructions
	s.CPUCycles += o.CPUCycles
}

// Support tells if the host supports hardware pmu events, cgpath is probed on the first call
func Support(cgpath string) bool {
	probeOnce.Do(func() {
		if _, err := CgroupStat(cgpath, probeTime); err != nil {
			log.Infof("hardware perf events are not supported: %v", err)
			return
		}
		hwSupport = true
	})
	return hwSupport
}

// cgEvent is the event group of one cgroup on one cpu
type cgEvent struct {
	cpu    int
	fds    map[string]int
	leader int
}

func newEvent(cgfd, cpu int) (*cgEvent, error) {
	e := &cgEvent{cpu: cpu, fds: make(map[string]int, len(eventConfigs)), leader: -1}
	for _, ec := range eventConfigs {
		attr := unix.PerfEventAttr{Type: unix.PERF_TYPE_HARDWARE, Config: ec.config}
		fd, err := unix.PerfEventOpen(&attr, cgfd, cpu, e.leader, unix.PERF_FLAG_PID_CGROUP|unix.PERF_FLAG_FD_CLOEXEC)
		if err != nil {
			e.destroy()
			return nil, errors.Errorf("perf open for event:%s cpu:%d failed: %v", ec.name, cpu, err)
		}
		if e.leader == -1 {
			e.leader = fd
		}
		e.fds[ec.name] = fd
	}
	return e, nil
}

func (e *cgEvent) start() error {
	if err := unix.IoctlSetInt(e.leader, unix.PERF_EVENT_IOC_RESET, 0); err != nil {
		return err
	}
	return unix.IoctlSetInt(e.leader, unix.PERF_EVENT_IOC_ENABLE, 0)
}

func (e *cgEvent) stop() error {
	return unix.IoctlSetInt(e.leader, unix.PERF_EVENT_IOC_DISABLE, 0)
}

func (e *cgEvent) read(name string) uint64 {
	p := make([]byte, counterSize)
	num, err := unix.Read(e.fds[name], p)
	if err != nil {
		log.Errorf("read perf data of %s failed: %v", name, err)
		return 0
	}
	if num != counterSize {
		log.Errorf("invalid perf data length %d", num)
		return 0
	}
	return binary.LittleEndian.Uint64(p)
}

func (e *cgEvent) destroy() {
	for _, fd := range e.fds {
		log.DropError(unix.Close(fd))
	}
}

// perf holds the event groups of one cgroup on every cpu
type perf struct {
	events []*cgEvent
	cgfd   int
}

func newPerf(cgpath string) (*perf, error) {
	cgfd, err := unix.Open(cgpath, unix.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	p := &perf{cgfd: cgfd}
	for cpu := 0; cpu < runtime.NumCPU(); cpu++ {
		e, err := newEvent(cgfd, cpu)
		if err != nil {
			continue
		}
		p.events = append(p.events, e)
	}
	if len(p.events) == 0 {
		p.destroy()
		return nil, errors.New("new perf event for all cpus failed")
	}
	if len(p.events) != runtime.NumCPU() {
		log.Warnf("new perf event for part of cpus failed")
	}
	return p, nil
}

func (p *perf) start() error {
	for _, e := range p.events {
		if err := e.start(); err != nil {
			return err
		}
	}
	return nil
}

func (p *perf) stop() error {
	for _, e := range p.events {
		if err := e.stop(); err != nil {
			return err
		}
	}
	return nil
}

func (p *perf) read() *Stat {
	stat := &Stat{}
	for _, e := range p.events {
		for _, ec := range eventConfigs {
			ec.reader(stat, e.read(ec.name))
		}
	}
	return stat
}

func (p *perf) destroy() {
	for _, e := range p.events {
		e.destroy()
	}
	log.DropError(unix.Close(p.cgfd))
}

// CgroupStat counts the instructions and cycles of the cgroup at cgpath during dur
func CgroupStat(cgpath string, dur time.Duration) (*Stat, error) {
	p, err := newPerf(cgpath)
	if err != nil {
		return nil, errors.Errorf("perf init failed: %v", err)
	}
	defer p.destroy()

	if err := p.start(); err != nil {
		return nil, errors.Errorf("perf start failed: %v", err)
	}
	time.Sleep(dur)
	if err := p.stop(); err != nil {
		return nil, errors.Errorf("perf stop failed: %v", err)
	}
	return p.read(), nil
}
