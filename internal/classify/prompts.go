package classify

import "fmt"

func labelPrompt(repText string) string {
	return fmt.Sprintf(`Give a short theme label (3 words maximum) for the following text excerpt.
Answer with the label only, no punctuation and no explanation.

--- EXCERPT ---
%s
--- LABEL ---`, repText)
}
