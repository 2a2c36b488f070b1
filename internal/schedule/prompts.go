package schedule

import "fmt"

func extractPrompt(text, today, availability string) string {
	return fmt.Sprintf(`Your task is to act as an intelligent scheduling assistant. Analyze the following email text to identify any meeting proposals.
In addition to detecting the proposed date, start time, and duration (in minutes), please:
- Provide a concise "summary" that captures what the meeting is about based on the email content.
- Calculate the correct "duree_minutes" if mentioned explicitly (e.g. from start to end times) or deduce it from context.

CONTEXT:
- Today's date is %s.
- My available slots for the next week are: %s.

RULES:
1. FIRST, if a meeting proposal exists (with dates/times), output a JSON list with objects in the following format:
     [ {
         "date": "YYYY-MM-DD",
         "heure": "HH:MM",
         "duree_minutes": (calculated duration in minutes),
         "summary": "A concise description of the meeting topic",
         "type": "visio"
     } ]

2. SECOND, if there is no specific date provided, propose three suitable one-hour slots based on my availability:
     {
       "suggestion_requise": true,
       "creneaux_proposes": [
         { "date": "YYYY-MM-DD", "heure": "HH:MM" },
         { "date": "YYYY-MM-DD", "heure": "HH:MM" },
         { "date": "YYYY-MM-DD", "heure": "HH:MM" }
       ]
     }

3. THIRD, if the email text has no meeting mention, return an empty list [].

CRITICAL:
- Return ONLY the valid JSON as specified.

Analyze the following text:
---
%s
---`, today, availability, text)
}
