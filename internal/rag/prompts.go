package rag

import "fmt"

// answerPrompt embeds the retrieved context and instructs the model to
// answer from it alone, in at most two sentences
func answerPrompt(context, question string) string {
	return fmt.Sprintf(`You are a helpful assistant.
Read the following context and answer only the question.
Fix visible typos and give a clear answer in 1 to 2 sentences at most.
Use only information present in the context.

--- CONTEXT ---
%s

--- QUESTION ---
%s

--- ANSWER ---
`, context, question)
}

// correctionPrompt asks for a fluency rewrite without a grounding context;
// the meaning must not change
func correctionPrompt(answer string) string {
	return fmt.Sprintf(`Rewrite the following answer in correct, fluent prose without changing its meaning:
"%s"
`, answer)
}
