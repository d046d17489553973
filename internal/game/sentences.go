package game

import (
	"math/rand"
	"strings"
	"sync"
)

const DefaultDifficulty = "easy"

var sentenceTiers = map[string][]string{
	"easy": {
		"Hello world",
		"Good morning",
		"How are you",
		"Nice to meet you",
		"Thank you very much",
		"Have a nice day",
		"See you later",
		"My name is",
		"Welcome back",
		"Good job",
	},
	"medium": {
		"The quick brown fox jumps over the lazy dog",
		"I would like to learn American Sign Language",
		"Please repeat that sentence one more time",
		"Can you teach me how to sign that phrase",
		"Practice makes perfect when learning new skills",
		"Thank you for helping me improve my signing",
		"Let me know if my hand position is correct",
		"Communication is essential for understanding each other",
		"Sign language is a beautiful form of expression",
		"I am excited to practice with you today",
	},
	"hard": {
		"American Sign Language has its own grammar and syntax different from English",
		"The linguistics of visual languages involve spatial grammar and simultaneous expression of concepts",
		"Sign language interpreters must process information rapidly while maintaining accuracy and cultural context",
		"Facial expressions are grammatical markers that can completely change the meaning of identical hand movements",
		"The National Association of the Deaf advocates for accessibility and linguistic rights for the Deaf community",
		"Fingerspelling is used for proper nouns and words that don't have established signs in the language",
		"Deaf culture emphasizes visual storytelling traditions and maintains unique cultural perspectives",
		"ASL is not a universal language, as different countries have developed their own sign languages independently",
		"The development of video technology has revolutionized remote communication for sign language users",
		"Learning a visual language requires developing strong spatial awareness and visual processing skills",
	},
}

// SentenceProvider picks a random phrase for a difficulty tier. Unrecognized
// tiers silently fall back to the easy tier.
type SentenceProvider struct {
	tiers map[string][]string
	rng   *rand.Rand
	mu    sync.Mutex
}

// NewSentenceProvider builds a provider around the given random source so
// tests can seed it. Panics if any tier is empty; the table is static, so
// this can only trip at startup.
func NewSentenceProvider(src rand.Source) *SentenceProvider {
	for tier, sentences := range sentenceTiers {
		if len(sentences) == 0 {
			panic("empty sentence tier: " + tier)
		}
	}
	return &SentenceProvider{
		tiers: sentenceTiers,
		rng:   rand.New(src),
	}
}

// NormalizeDifficulty lowercases the tier name and substitutes the default
// tier for anything the table does not know.
func (p *SentenceProvider) NormalizeDifficulty(difficulty string) string {
	difficulty = strings.ToLower(difficulty)
	if _, ok := p.tiers[difficulty]; !ok {
		return DefaultDifficulty
	}
	return difficulty
}

func (p *SentenceProvider) GetRandomSentence(difficulty string) string {
	sentences := p.tiers[p.NormalizeDifficulty(difficulty)]
	p.mu.Lock()
	defer p.mu.Unlock()
	return sentences[p.rng.Intn(len(sentences))]
}
