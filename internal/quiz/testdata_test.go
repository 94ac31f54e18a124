package quiz

// photosynthesisQuiz is model output in the requested layout, with a
// preamble line the parser must ignore.
const photosynthesisQuiz = `Here is your quiz on Photosynthesis:

Question 1: Which organelle carries out photosynthesis?
A) Mitochondria
B) Chloroplast
C) Nucleus
D) Ribosome
Correct Answer: B

Question 2: Which gas do plants absorb during photosynthesis?
A) Oxygen
B) Nitrogen
C) Carbon dioxide
D) Helium
Correct Answer: C

Question 3: What pigment gives leaves their green color?
A) Chlorophyll
B) Carotene
C) Melanin
D) Hemoglobin
Correct Answer: A

Question 4: What is a product of photosynthesis?
A) Carbon dioxide
B) Glucose
C) Methane
D) Salt
Correct Answer: B

Question 5: Where does the light-dependent reaction occur?
A) Stroma
B) Cytoplasm
C) Thylakoid membrane
D) Cell wall
Correct Answer: c
`
