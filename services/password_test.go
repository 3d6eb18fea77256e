package services

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPasswordsMatch(t *testing.T) {
	testCases := []struct {
		name     string
		provided string
		expected string
		match    bool
	}{
		{name: "Equal", provided: "hunter2", expected: "hunter2", match: true},
		{name: "EqualUnicode", provided: "pässwörd🔑", expected: "pässwörd🔑", match: true},
		{name: "DifferentLastByte", provided: "hunter3", expected: "hunter2"},
		{name: "DifferentFirstByte", provided: "Hunter2", expected: "hunter2"},
		{name: "Shorter", provided: "hunter", expected: "hunter2"},
		{name: "Longer", provided: "hunter22", expected: "hunter2"},
		{name: "Empty", provided: "", expected: "hunter2"},
		{name: "CaseSensitive", provided: "HUNTER2", expected: "hunter2"},
		// same rune count, different byte length once encoded
		{name: "SameRunesDifferentBytes", provided: "passwort", expected: "pässwort"},
		{name: "TrailingWhitespace", provided: "hunter2 ", expected: "hunter2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.match, PasswordsMatch(tc.provided, tc.expected))
		})
	}
}

func TestPasswordsMatch_FixedTime(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test skipped in short mode")
	}

	secret := strings.Repeat("s", 8192)
	firstByteWrong := "x" + secret[1:]
	lastByteWrong := secret[:len(secret)-1] + "x"

	const (
		samples = 501
		rounds  = 20
	)
	firstDurations := make([]time.Duration, samples)
	lastDurations := make([]time.Duration, samples)
	measure := func(guess string) time.Duration {
		start := time.Now()
		for i := 0; i < rounds; i++ {
			if PasswordsMatch(guess, secret) {
				t.Fatal("wrong guess matched")
			}
		}
		return time.Since(start)
	}
	for i := 0; i < samples; i++ {
		firstDurations[i] = measure(firstByteWrong)
		lastDurations[i] = measure(lastByteWrong)
	}

	median := func(d []time.Duration) time.Duration {
		sort.Slice(d, func(i, j int) bool { return d[i] < d[j] })
		return d[len(d)/2]
	}
	ratio := float64(median(firstDurations)) / float64(median(lastDurations))
	assert.Greater(t, ratio, 0.5, "first-byte mismatch much faster than last-byte mismatch")
	assert.Less(t, ratio, 2.0, "first-byte mismatch much slower than last-byte mismatch")
}
