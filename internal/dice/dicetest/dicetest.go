// Package dicetest provides scripted random sources for tests.
package dicetest

import "sync"

// Script is a dice.Source that replays fixed values. Ints and Floats are
// consumed independently and wrap around when exhausted. Int values are
// reduced modulo n so a script can be reused across die sizes.
type Script struct {
	mu     sync.Mutex
	Ints   []int
	Floats []float64
	ni, nf int
}

// Ints returns a Script that replays the given Intn results.
func Ints(values ...int) *Script {
	return &Script{Ints: values}
}

// Floats returns a Script that replays the given Float64 results.
func Floats(values ...float64) *Script {
	return &Script{Floats: values}
}

// Percents returns a Script whose Float64 results are the given values
// divided by 100, so a roll scaled to [0,100) reproduces them.
func Percents(values ...float64) *Script {
	floats := make([]float64, len(values))
	for i, v := range values {
		floats[i] = v / 100
	}
	return &Script{Floats: floats}
}

func (s *Script) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[s.ni%len(s.Ints)]
	s.ni++
	if v >= n {
		v %= n
	}
	return v
}

func (s *Script) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.nf%len(s.Floats)]
	s.nf++
	return v
}

// Max is a dice.Source that always rolls the highest value.
type Max struct{}

func (Max) Intn(n int) int { return n - 1 }

func (Max) Float64() float64 { return 0.999999 }
