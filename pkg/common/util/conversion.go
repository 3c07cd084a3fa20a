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
// Create: 2026-03-03
// Description: This file is used for type conversion

package util

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseInt64 convert the string type to Int64
func ParseInt64(str string) (int64, error) {
	const (
		base    = 10
		bitSize = 64
	)
	return strconv.ParseInt(strings.TrimSpace(str), base, bitSize)
}

// ParseFloat64 convert the string type to Float64
func ParseFloat64(str string) (float64, error) {
	const bitSize = 64
	return strconv.ParseFloat(strings.TrimSpace(str), bitSize)
}

// FormatFloat64 convert the Float64 type to string
func FormatFloat64(f float64) string {
	const (
		precision = -1
		bitSize   = 64
		format    = 'f'
	)
	return strconv.FormatFloat(f, format, precision, bitSize)
}

// ParseKeyValue parses "key value" lines such as cgroup cpu.stat into a map
func ParseKeyValue(content string) (map[string]int64, error) {
	const fieldsPerLine = 2
	res := make(map[string]int64)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != fieldsPerLine {
			return nil, errors.Errorf("invalid line %q", line)
		}
		v, err := ParseInt64(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "parse value of %s", fields[0])
		}
		res[fields[0]] = v
	}
	return res, nil
}
