package script

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BuildPrompt renders the text-generation prompt for a topic and target
// length. It is a pure function of its inputs.
func BuildPrompt(topic string, lengthSeconds int) string {
	topic = strings.TrimSpace(topic)
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a concise, engaging, viral YouTube Shorts script (max %d seconds) on the topic: '%s'.\n", lengthSeconds, topic)
	fmt.Fprintf(&b, "Working title: %q.\n", Headline(topic))
	b.WriteString("Make it faceless (no human faces). Include a strong hook, 2-3 clear points, ")
	b.WriteString("short visual cues for each line (e.g., 'close-up of object', 'text overlay', 'stock nature b-roll'), ")
	b.WriteString("and a call to action. Format for vertical 9:16 short.")
	return b.String()
}

// Headline title-cases the topic for use as a working title.
func Headline(topic string) string {
	return cases.Title(language.English).String(strings.TrimSpace(topic))
}
