package game

import "time"

// Mood is the mascot's expression, driven by the time left in the round.
type Mood int

const (
	MoodHappy Mood = iota
	MoodNormal
	MoodSad
	MoodNervous
)

var moodNames = [...]string{"happy", "normal", "sad", "nervous"}

func (m Mood) String() string {
	if m < MoodHappy || m > MoodNervous {
		return "unknown"
	}
	return moodNames[m]
}

func (m Mood) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// MoodFor maps time left to a mood. Each threshold belongs to the calmer side
// only when strictly exceeded.
func MoodFor(timeLeft time.Duration) Mood {
	switch {
	case timeLeft > 40*time.Second:
		return MoodHappy
	case timeLeft > 20*time.Second:
		return MoodNormal
	case timeLeft > 10*time.Second:
		return MoodSad
	}
	return MoodNervous
}
