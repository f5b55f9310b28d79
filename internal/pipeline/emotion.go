package pipeline

import (
	"math/rand"
	"regexp"
)

// Emotion is a keyword-detected sentiment category.
type Emotion string

// Emotion categories, checked in this fixed order: the first category whose
// keyword set matches wins.
const (
	EmotionHappy    Emotion = "happy"
	EmotionSad      Emotion = "sad"
	EmotionAngry    Emotion = "angry"
	EmotionLove     Emotion = "love"
	EmotionFunny    Emotion = "funny"
	EmotionSurprise Emotion = "surprise"
	EmotionThinking Emotion = "thinking"
	EmotionCool     Emotion = "cool"
)

var emotionOrder = []Emotion{
	EmotionHappy, EmotionSad, EmotionAngry, EmotionLove,
	EmotionFunny, EmotionSurprise, EmotionThinking, EmotionCool,
}

var emotionPatterns = map[Emotion]*regexp.Regexp{
	EmotionHappy:    regexp.MustCompile(`(?i)happy|joy|great|awesome|amazing|wonderful|fantastic|excellent|love|good|nice|cool|best`),
	EmotionSad:      regexp.MustCompile(`(?i)sad|cry|tears|hurt|pain|sorry|miss|lonely|depressed|upset`),
	EmotionAngry:    regexp.MustCompile(`(?i)angry|mad|hate|stupid|idiot|damn|hell|wtf|annoying|frustrated`),
	EmotionLove:     regexp.MustCompile(`(?i)love|heart|kiss|baby|honey|darling|sweetheart|beautiful|gorgeous`),
	EmotionFunny:    regexp.MustCompile(`(?i)lol|haha|funny|joke|laugh|comedy|hilarious|rofl|lmao`),
	EmotionSurprise: regexp.MustCompile(`(?i)wow|omg|amazing|incredible|unbelievable|shocking|surprise`),
	EmotionThinking: regexp.MustCompile(`(?i)think|maybe|probably|perhaps|wonder|question|confused|hmm`),
	EmotionCool:     regexp.MustCompile(`(?i)cool|awesome|epic|fire|lit|dope|sick|beast|boss|king|queen`),
}

var emotionEmojis = map[Emotion][]string{
	EmotionHappy:    {"😊", "😄", "😃", "🥰", "😍", "🤗", "🎉", "✨"},
	EmotionSad:      {"😢", "😭", "💔", "😞", "😔", "🤧", "💙"},
	EmotionAngry:    {"😠", "😡", "🤬", "💢", "🔥", "😤"},
	EmotionLove:     {"❤️", "💕", "💖", "💗", "💘", "💝", "😍", "🥰"},
	EmotionFunny:    {"😂", "🤣", "😆", "😹", "🤪", "😜", "🙃"},
	EmotionSurprise: {"😱", "🤯", "😲", "😮", "🤩", "✨", "💫"},
	EmotionThinking: {"🤔", "🧐", "💭", "🤨", "🔍"},
	EmotionCool:     {"😎", "🔥", "💪", "👑", "⚡", "🚀", "💎"},
}

var ownerEmojis = []string{"🖤", "👑", "⚡", "🔥", "💎", "✨"}

var decentEmojis = []string{
	"😊", "❤️", "👍", "🔥", "✨", "💎", "🌟",
	"🎉", "👏", "🙌", "💪", "🚀", "⚡", "🌈", "🎯",
	"🎨", "🎵", "📚", "🏆", "💫", "🌸", "🌺", "🦋",
}

// ClassifyEmotion returns the first matching emotion category for the text,
// or false when no category matches.
func ClassifyEmotion(text string) (Emotion, bool) {
	if text == "" {
		return "", false
	}
	for _, e := range emotionOrder {
		if emotionPatterns[e].MatchString(text) {
			return e, true
		}
	}
	return "", false
}

// EmotionEmoji picks a random emoji from the category's set.
func EmotionEmoji(e Emotion) string {
	set := emotionEmojis[e]
	if len(set) == 0 {
		return decentEmojis[rand.Intn(len(decentEmojis))]
	}
	return set[rand.Intn(len(set))]
}

// OwnerEmoji picks a random emoji from the owner reaction set.
func OwnerEmoji() string {
	return ownerEmojis[rand.Intn(len(ownerEmojis))]
}

// DecentEmoji picks a random emoji from the generic fallback set.
func DecentEmoji() string {
	return decentEmojis[rand.Intn(len(decentEmojis))]
}
