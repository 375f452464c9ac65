package generation

import "fmt"

const ideasPromptTemplate = `You are a creative content strategist. Generate exactly 10 unique and specific content ideas.

Persona: %s
Industry: %s

Generate 10 content ideas that would resonate with this persona in this industry. Each idea should be:
- Specific and actionable
- Relevant to the persona and industry
- Engaging and valuable

Format your response as a JSON array of 10 strings, each containing one idea. Example:
["Idea 1 text here", "Idea 2 text here", "Idea 3 text here", ...]

Return ONLY the JSON array, no additional text.`

const briefPromptTemplate = `You are a professional content strategist. Create a detailed content brief based on the following:

Persona: %s
Industry: %s
Content Idea: %s

Generate a comprehensive content brief that includes:
1. Title/Headline
2. Target Audience
3. Key Message
4. Content Structure (outline with main points)
5. Tone and Style
6. Call to Action
7. SEO Keywords (3-5 keywords)
8. Estimated Word Count

Format your response as a well-structured brief document. Be specific and actionable.`

// IdeasPrompt builds the idea generation prompt
func IdeasPrompt(persona, industry string) string {
	return fmt.Sprintf(ideasPromptTemplate, persona, industry)
}

// BriefPrompt builds the brief generation prompt
func BriefPrompt(persona, industry, idea string) string {
	return fmt.Sprintf(briefPromptTemplate, persona, industry, idea)
}
