// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "strconv"

// IntToString converts an int to string.
func IntToString(i int) string {
	return strconv.Itoa(i)
}

// Int64ToString converts an int64 to string.
func Int64ToString(i int64) string {
	return strconv.FormatInt(i, 10)
}

// ScoreToString formats a 0-100 score without a fractional part.
func ScoreToString(f float64) string {
	return strconv.FormatFloat(f, 'f', 0, 64)
}

// SimilarityToString formats a 0.0-1.0 similarity as a percentage.
func SimilarityToString(f float64) string {
	return strconv.FormatFloat(f*100, 'f', 0, 64) + "%"
}
