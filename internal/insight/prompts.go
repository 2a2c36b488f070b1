package insight

import "fmt"

func summarizePrompt(text string) string {
	return fmt.Sprintf(`Act as an expert email summarizer. Read the following email and create a concise summary along with key points.

IMPORTANT: The output JSON must be fully in English.

Strictly adhere to this JSON structure:
{
  "summary": "A 1-2 sentence concise summary of the entire email.",
  "key_points": ["List of 3-5 key points or action items from the email"]
}

Rules:
- The summary should be brief but capture the main purpose of the email
- Key points should be specific and actionable where applicable
- Return empty list [] if no key points are found
- Only return the JSON object, no explanations

Email text to summarize:
---
%s
---`, text)
}

func detectTasksPrompt(text string) string {
	return fmt.Sprintf(`Act as an expert task analyzer. Read the following email and extract all actionable tasks, action items, or requests.

IMPORTANT: The output JSON must be fully in English.

Strictly adhere to this JSON structure:
{
  "tasks": [
    {
      "task_description": "Clear description of what needs to be done",
      "assignee": "Name of person assigned (or 'you', 'team', 'everyone', or null if not specified)",
      "deadline": "Deadline or due date if mentioned (or null if not specified)",
      "priority": "High, Medium, or Low based on urgency and importance"
    }
  ]
}

Rules for task detection:
- Identify explicit action items (e.g., "please review", "submit by", "schedule a meeting")
- Identify implicit tasks (e.g., "we need to finalize", "looking forward to your feedback")
- Extract assignee and deadline from context
- Determine priority: High for urgent deadlines, Medium for regular tasks with deadlines, Low for optional or FYI items
- Return empty list [] if no tasks are found
- Only return the JSON object, no explanations

Email text to analyze:
---
%s
---`, text)
}

func autoReplyPrompt(text string) string {
	return fmt.Sprintf(`Act as an expert professional email writer. Read the following email and generate an appropriate reply.

IMPORTANT: The output JSON must be fully in English.

Strictly adhere to this JSON structure:
{
  "reply": "The complete email reply text, including greeting, body, and closing",
  "tone": "Professional, Casual, or Formal - based on the original email's tone"
}

Guidelines for the reply:
- Match the formality level of the original email
- Address all questions or requests mentioned
- Be concise but complete
- Use appropriate greetings and closings
- Only return the JSON object, no explanations

Email to reply to:
---
%s
---`, text)
}

func analyzePrompt(text, possibleSender string) string {
	return fmt.Sprintf(`Act as an expert in professional communication analysis. Analyze the following email and extract key information into a JSON object.

IMPORTANT: The output JSON must be fully in English.

Rules for participants:
- Include all people explicitly mentioned in the email body.
- Do NOT include the sender (usually the last line: '%s').
- If no other names are mentioned, include 'you' as the participant by default.

Strictly adhere to this JSON structure:
{
  "main_subject": "The main subject in a few words.",
  "short_summary": "A one-sentence summary.",
  "email_type": "Classify as: 'Action Request', 'Information', 'Meeting Planning', 'Reply', 'Report', 'Social', 'Event', 'Other'.",
  "participants": ["List of all names of people mentioned, or 'you' if none."],
  "sentiment": "Overall sentiment: 'Positive', 'Negative', or 'Neutral'.",
  "urgency": {
    "is_urgent": true_or_false,
    "justification": "Brief explanation of why it is urgent or not."
  }
}

Rules:
- Return empty lists [] only if absolutely no participant or information is found.
- Only return the JSON object, no explanations.

Email text to analyze:
---
%s
---`, possibleSender, text)
}
