package content

import "fmt"

const lessonSystemPrompt = `You are a world-class business educator and startup mentor, in the style of a Y Combinator partner.`

// MentorPersona is the system instruction for every mentor conversation.
const MentorPersona = `You are "FounderBot", a wise, experienced, and empathetic Silicon Valley mentor.
You have experience in product management, venture capital, and leadership.
Keep answers concise (under 150 words) unless asked for details.
Be direct but supportive. Use markdown for formatting.`

const toolSystemPrompt = `You are a specialized business analyst AI. Generate high-quality, actionable business documents.`

const bookSystemPrompt = `You are an expert book synthesizer creating high-value summaries for busy executives.`

const dailyTipPrompt = `Give me one short, high-impact tip for a startup founder today. Max 2 sentences.`

func buildLessonUserMessage(topic string) string {
	return fmt.Sprintf(`Create a comprehensive, engaging micro-learning lesson about %q for a startup founder.
The tone should be professional yet encouraging.
Include 3 distinct sections and 2 quiz questions at the end.
Each quiz question has 3-4 options; correctIndex is the zero-based index of the right option.`, topic)
}

func buildBookUserMessage(title, author string) string {
	return fmt.Sprintf(`Provide a detailed "Founder's Edition" summary of the book %q by %s.
Structure the response using Markdown.
Include:
1. A bold "Core Thesis" statement.
2. "Top 5 Takeaways" for entrepreneurs.
3. A "Chapter-by-Chapter" breakdown (summarize key chapters).
4. "Actionable Tactics" that a founder can apply today.

Make it feel like a high-quality reading experience (approx 1000 words).`, title, author)
}
