package prompt

const qnaTemplate = `You are a knowledgeable teacher. Generate {{.Count}} question-answer pairs from the text below.
Requirements:
- Questions should be {{.Difficulty}} level
- Answers should be complete, concise, and accurate
- Include only factual information from the text
- Each pair MUST follow this exact format:
Q: <question>
A: <answer>

Q: <question>
A: <answer>
- Each question must start with "Q:" and each answer with "A:"
- Each Q/A pair must be separated by a blank line
Text:
{{.Text}}
`

const mcqsTemplate = `You are an educational content creator. Create {{.Count}} multiple-choice questions from the text below.
Requirements:
- Questions should be {{.Difficulty}} level
- Each question must have 4 options labelled A), B), C) and D)
- Clearly indicate the correct option on its own line as "Answer: <letter>"
- Number questions sequentially (1, 2, 3...) and nothing else
Text:
{{.Text}}
`

const flashcardsTemplate = `You are an expert educator. Create {{.Count}} flashcards from the text below.
Requirements:
- Difficulty: {{.Difficulty}} level
- Each flashcard MUST follow this exact format:
Q.1: <question>
A: <one-line concise answer>

Q.2: <question>
A: <one-line concise answer>

(continue sequentially as Q.3, Q.4, etc.)
- Absolutely do NOT use "1.Q" or any other numbering style.
- Answers must be strictly one line (no long explanations).
- Do not skip numbers.
Text:
{{.Text}}
`

const summaryTemplate = `You are an expert summarizer. Create a clear, concise summary of the text below.
Text:
{{.Text}}
`

const consolidationTemplate = `Here are {{.Mode}} generated from different chunks:

{{range $i, $out := .Outputs}}--- chunk {{inc $i}} ---
{{$out}}

{{end}}{{if .Itemized}}- Ensure {{.Difficulty}} level
- Limit to {{.Count}} items
- Remove duplicates
{{else}}- Merge into a coherent concise summary
{{end}}Return only the final polished output.`
