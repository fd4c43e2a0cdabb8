package usecases

import "fmt"

// promptTemplate asks the agent for a single tweet about the topic.
const promptTemplate = "Generate a viral, engaging tweet about: %s. \n" +
	"Make it concise, impactful, and optimized for maximum engagement on Twitter/X. \n" +
	"Keep it under 280 characters. Do not use hashtags unless absolutely necessary.\n" +
	"Just return the tweet text, nothing else."

// BuildPrompt embeds topic into the generation prompt.
func BuildPrompt(topic string) string {
	return fmt.Sprintf(promptTemplate, topic)
}
