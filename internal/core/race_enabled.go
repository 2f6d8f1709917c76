//go:build race

package core

// raceScale is the extra timeout factor applied under the race detector.
const raceScale = 4.0
