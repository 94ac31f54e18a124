package quiz

import "fmt"

// QuestionCount is how many questions the model is asked for.
const QuestionCount = 5

const promptTemplate = `Create a %d-question multiple-choice quiz about %s.
Format each question EXACTLY like this:

Question 1: [question text]
A) [option A]
B) [option B]
C) [option C]
D) [option D]
Correct Answer: [A/B/C/D]

Repeat this format for all %d questions.`

// BuildPrompt returns the quiz request sent to the model for topic.
func BuildPrompt(topic string) string {
	return fmt.Sprintf(promptTemplate, QuestionCount, topic, QuestionCount)
}
