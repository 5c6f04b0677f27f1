// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package sais implements a linear time suffix array algorithm.
package sais

// ComputeSA computes the suffix array of T and places the result in SA.
// Both T and SA must be the same length.
func ComputeSA(T []byte, SA []int) {
	if len(SA) != len(T) {
		panic("mismatching sizes")
	}
	widenAndCompute(T, SA, 0, len(T), 256)
}

// widenAndCompute widens T into an int alphabet and delegates to the
// vendored induced-sorting kernel in sais_int.go. The byte alphabet never
// exceeds 256 symbols, so no renumbering is required.
func widenAndCompute(T []byte, SA []int, fs, n, k int) {
	Ti := make([]int, n)
	for i, c := range T {
		Ti[i] = int(c)
	}
	computeSA_int(Ti, SA, fs, n, k)
}
