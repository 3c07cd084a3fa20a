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
// Create: 2026-03-18
// Description: This file parses tick schedules

// Package schedule computes tick times from cron expressions
package schedule

import (
	"strings"
	"time"

	cron "github.com/netresearch/go-cron"
	"github.com/pkg/errors"
)

var parser = cron.MustNewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Schedule yields the tick times of a cron expression
type Schedule struct {
	spec     string
	schedule cron.Schedule
}

// Parse parses spec, which is a cron expression with an optional seconds field or a descriptor such as @every 10s.
// Expressions without a CRON_TZ= or TZ= prefix are evaluated in UTC.
func Parse(spec string) (*Schedule, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, errors.New("empty schedule")
	}
	s, err := parser.Parse(withTZ(spec))
	if err != nil {
		return nil, errors.Wrapf(err, "parse schedule %q", spec)
	}
	return &Schedule{spec: spec, schedule: s}, nil
}

func withTZ(spec string) string {
	if strings.HasPrefix(spec, "@") || strings.HasPrefix(spec, "CRON_TZ=") || strings.HasPrefix(spec, "TZ=") {
		return spec
	}
	return "CRON_TZ=UTC " + spec
}

// Next returns the first tick strictly after t
func (s *Schedule) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

// String returns the expression the schedule was parsed from
func (s *Schedule) String() string {
	return s.spec
}
