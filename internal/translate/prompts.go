package translate

import "fmt"

func detectPrompt(sample string) string {
	return fmt.Sprintf(`Analyze the following text and determine if it is primarily in French or English.
Answer ONLY with 'French' or 'English', nothing else.

Text: "%s"`, sample)
}

func translatePrompt(text string) string {
	return fmt.Sprintf(`Your task is to translate French text to professional English.

CRITICAL INSTRUCTIONS:
- Respond ONLY with the translated English text
- Do NOT add explanations, introductions, or concluding remarks
- Preserve the original meaning, tone, and formatting (line breaks, punctuation)
- Keep @mentions, URLs, and special formatting intact

Translate the following text:
---
%s
---`, text)
}
