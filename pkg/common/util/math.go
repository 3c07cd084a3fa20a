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
// Description: This file is used for math

// Package util provide some util help functions.
package util

import "math"

// defaultAccuracy is the divisor magnitude treated as zero by Div
const defaultAccuracy = 1e-9

// Div returns dividend/divisor, or fallback when the divisor is zero within 1e-9.
// The fallback defaults to math.MaxFloat64.
func Div(dividend, divisor float64, fallback ...float64) float64 {
	if math.Abs(divisor) <= defaultAccuracy {
		if len(fallback) > 0 {
			return fallback[0]
		}
		return math.MaxFloat64
	}
	return dividend / divisor
}

// Clamp bounds v into [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Mean returns the arithmetic mean of values, 0 for an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
