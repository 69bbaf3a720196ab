package models

import "time"

type Gender string

const (
	GenderFemale         Gender = "female"
	GenderMale           Gender = "male"
	GenderNonBinary      Gender = "non-binary"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
	GenderOther          Gender = "other"
)

type ActorType string

const (
	ActorTypeHuman ActorType = "human"
	ActorTypeAI    ActorType = "ai"
)

// Actor is a piece of UGC talent, either a human creator or an AI persona.
type Actor struct {
	ID                string    `db:"id"`
	Name              string    `db:"name"`
	Nationality       string    `db:"nationality"`
	Gender            Gender    `db:"gender"`
	ActorType         ActorType `db:"actor_type"`
	ProfileImageURL   string    `db:"profile_image_url"`
	VisualDescription string    `db:"visual_description"`
	ElevenLabsVoiceID string    `db:"elevenlabs_voice_id"`
	CreatedAt         time.Time `db:"created_at"`
}
