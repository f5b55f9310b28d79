package pipeline

import "testing"

func TestClassifyEmotion(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  Emotion
		found bool
	}{
		{name: "happy keyword", text: "I am so happy today", want: EmotionHappy, found: true},
		{name: "sad keyword", text: "i miss you", want: EmotionSad, found: true},
		{name: "angry keyword", text: "this is so annoying", want: EmotionAngry, found: true},
		{name: "funny keyword", text: "lmao that was wild", want: EmotionFunny, found: true},
		{name: "surprise keyword", text: "omg really", want: EmotionSurprise, found: true},
		{name: "thinking keyword", text: "hmm not sure", want: EmotionThinking, found: true},
		{name: "cool keyword", text: "that beat is fire", want: EmotionCool, found: true},
		{name: "case insensitive", text: "HAPPY BIRTHDAY", want: EmotionHappy, found: true},
		{name: "earlier category wins", text: "love you", want: EmotionHappy, found: true},
		{name: "cool vs happy order", text: "cool stuff", want: EmotionHappy, found: true},
		{name: "no match", text: "meeting at 5"},
		{name: "empty text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ClassifyEmotion(tt.text)
			if found != tt.found {
				t.Fatalf("ClassifyEmotion(%q) found = %v, want %v", tt.text, found, tt.found)
			}
			if got != tt.want {
				t.Errorf("ClassifyEmotion(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestEmotionEmojiStaysInCategory(t *testing.T) {
	set := make(map[string]bool)
	for _, e := range emotionEmojis[EmotionSad] {
		set[e] = true
	}
	for i := 0; i < 50; i++ {
		if got := EmotionEmoji(EmotionSad); !set[got] {
			t.Fatalf("EmotionEmoji returned %q, not in the sad set", got)
		}
	}
}

func TestOwnerEmojiFromOwnerSet(t *testing.T) {
	set := make(map[string]bool)
	for _, e := range ownerEmojis {
		set[e] = true
	}
	for i := 0; i < 50; i++ {
		if got := OwnerEmoji(); !set[got] {
			t.Fatalf("OwnerEmoji returned %q, not in the owner set", got)
		}
	}
}
