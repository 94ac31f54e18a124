package report

import (
	"time"

	"github.com/abhisek/aitutor/internal/quiz"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleData() quiz.Data {
	return quiz.Data{
		Questions: []quiz.Question{
			{Question: "Which organelle carries out photosynthesis?", Options: []string{"A) Mitochondria", "B) Chloroplast", "C) Nucleus", "D) Ribosome"}},
			{Question: "Which gas do plants absorb?", Options: []string{"A) Oxygen", "B) Nitrogen", "C) Carbon dioxide", "D) Helium"}},
			{Question: "What pigment makes leaves green?", Options: []string{"A) Chlorophyll", "B) Carotene", "C) Melanin", "D) Hemoglobin"}},
			{Question: "What is a product of photosynthesis?", Options: []string{"A) Carbon dioxide", "B) Glucose", "C) Methane", "D) Salt"}},
			{Question: "Where does the light reaction occur?", Options: []string{"A) Stroma", "B) Cytoplasm", "C) Thylakoid membrane", "D) Cell wall"}},
		},
		CorrectAnswers: []string{"B", "C", "A", "B", "C"},
	}
}

// sampleRecord scores 40%: two of five correct, one unanswered.
func sampleRecord(topic string) quiz.Record {
	answers := []string{"B) Chloroplast", "A) Oxygen", "A) Chlorophyll", "C) Methane", ""}
	return quiz.NewRecord("Ada", "Grade 7", topic, sampleData(), answers, testNow)
}

func perfectRecord(topic string) quiz.Record {
	answers := []string{"B) Chloroplast", "C) Carbon dioxide", "A) Chlorophyll", "B) Glucose", "C) Thylakoid membrane"}
	return quiz.NewRecord("Ada", "Grade 7", topic, sampleData(), answers, testNow.Add(time.Hour))
}
