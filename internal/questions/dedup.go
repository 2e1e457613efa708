package questions

import (
	"fmt"
	"strings"
)

// formatPrior lists the most recent max prompts as a numbered list, or
// "None".
func formatPrior(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	lines := make([]string, len(prior))
	for i, p := range prior {
		lines[i] = fmt.Sprintf("%d. %s", i+1, p)
	}
	return strings.Join(lines, "\n")
}
