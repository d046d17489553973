// Package alphabet holds the seed data for the ASL fingerspelling reference
// table. The table is written to storage once, at startup, if it is empty.
package alphabet

import (
	"strings"

	"github.com/sign-vn/slsign/internal/domains/entities"
)

type letter struct {
	letter      string
	handshape   string
	exampleWord string
}

var letters = []letter{
	{"A", "Closed fist, thumb beside index finger", "Apple"},
	{"B", "Palm facing out, fingers straight together", "Book"},
	{"C", "Curved hand like the letter C", "Cat"},
	{"D", "Index finger up, other fingers touch thumb", "Dog"},
	{"E", "Fingertips folded down onto thumb", "Egg"},
	{"F", "Index finger and thumb form a circle, other fingers up", "Fish"},
	{"G", "Index finger and thumb point sideways", "Game"},
	{"H", "Index and middle finger point sideways together", "House"},
	{"I", "Pinky finger up, fist closed", "Ice"},
	{"J", "Pinky finger draws the letter J", "Juice"},
	{"K", "Index and middle finger up, thumb between them", "Key"},
	{"L", "Index finger up and thumb out form an L", "Lamp"},
	{"M", "Thumb tucked under first three fingers", "Milk"},
	{"N", "Thumb tucked under first two fingers", "Name"},
	{"O", "Fingertips and thumb form a circle", "Orange"},
	{"P", "Like K, pointed downward", "Pen"},
	{"Q", "Like G, pointed downward", "Queen"},
	{"R", "Index and middle finger crossed", "Rain"},
	{"S", "Closed fist, thumb across the fingers", "Sun"},
	{"T", "Thumb between index and middle finger", "Tree"},
	{"U", "Index and middle finger up together", "Umbrella"},
	{"V", "Index and middle finger up in a V", "Van"},
	{"W", "Index, middle and ring finger up", "Water"},
	{"X", "Index finger bent into a hook", "Box"},
	{"Y", "Thumb and pinky out, other fingers closed", "Yellow"},
	{"Z", "Index finger draws the letter Z", "Zebra"},
}

func SeedEntries() []entities.AlphabetEntry {
	entries := make([]entities.AlphabetEntry, 0, len(letters))
	for _, l := range letters {
		lower := strings.ToLower(l.letter)
		entries = append(entries, entities.AlphabetEntry{
			Letter:               l.letter,
			ImageUrl:             "/assets/alphabet/" + lower + ".jpg",
			VideoUrl:             "/assets/alphabet/" + lower + ".mp4",
			HandshapeDescription: l.handshape,
			ExampleWord:          l.exampleWord,
			WordVideoUrl:         "/assets/words/" + strings.ToLower(l.exampleWord) + ".mp4",
		})
	}
	return entries
}
