package videogen

import (
	"fmt"
	"strings"
)

// BuildInstruction renders the text-to-video instruction from the generated
// script, the aspect ratio, and the target length. It is a pure function of
// its inputs.
func BuildInstruction(script, aspectRatio string, lengthSeconds int) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(script))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Video instructions: vertical %s, no faces, fast cuts, text overlays, length ~%ds. ", aspectRatio, lengthSeconds)
	b.WriteString("Keep visuals high-energy and suitable for a YouTube Short.")
	return b.String()
}
