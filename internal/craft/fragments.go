package craft

import (
	"fmt"
	"sort"
	"strings"
)

const (
	defaultAudience = "The content should be appropriate for the intended recipients."
	defaultTone     = "Use a clear, professional tone that's appropriate for the context."
	quote           = `"""`
)

// opt returns prefix+v, or "" when v is blank.
func opt(prefix, v string) string {
	if v == "" {
		return ""
	}
	return prefix + v
}

// optWrap returns prefix+v+suffix, or "" when v is blank.
func optWrap(prefix, v, suffix string) string {
	if v == "" {
		return ""
	}
	return prefix + v + suffix
}

func either(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// block appends a labelled paragraph to s when v is non-blank.
func block(s, label, v string) string {
	if v == "" {
		return s
	}
	return s + "\n\n" + label + v
}

// textContext describes the transformation and quotes the user's text so
// it can be told apart from generated prose later on.
func textContext(name string, a Answers) string {
	text := a.Get(QText)
	if text == "" {
		return "I need to " + strings.ToLower(name) + "."
	}
	return "I need to " + strings.ToLower(name) + " below:\n\n" + quote + text + quote
}

func professional(name string, a Answers) Record {
	return Record{
		Context:  textContext(name, a),
		Role:     "You are a professional editor with expertise in business communication.",
		Audience: either(optWrap("The content is intended for ", a.Get(QIntendedAudience), "."), defaultAudience),
		Format:   "Rewrite the text using professional language, proper grammar, and a formal structure.",
		Tone:     "Use a formal, professional tone that conveys competence and authority.",
		Task: block(
			"Rewrite the provided text to sound more professional"+optWrap(" for the ", a.Get(QIndustry), " industry")+".",
			"Follow these specific guidelines:\n\n", a.Get(QStyleGuidelines)),
	}
}

func simplify(name string, a Answers) Record {
	return Record{
		Context:  block(textContext(name, a), "Technical terms that need special attention: ", a.Get(QTechnicalTerms)),
		Role:     "You are an expert in clear communication and simplifying complex information.",
		Audience: either(optWrap("The target audience has a ", a.Get(QReadingLevel), " reading level."), "The text should be understandable to a general audience with basic comprehension."),
		Format:   "Maintain the original meaning while using simpler language and structure. Preserve important information.",
		Tone:     "Use a clear, straightforward tone that is easy to understand.",
		Task: "Simplify the provided text" +
			optWrap(" for a ", a.Get(QReadingLevel), " reading level") +
			opt(" with the goal of ", a.Get(QSimplifyGoal)) + ".",
	}
}

func soften(name string, a Answers) Record {
	return Record{
		Context:  textContext(name, a),
		Role:     "You are an expert in diplomatic and tactful communication.",
		Audience: "The message needs to maintain a positive relationship with the recipient.",
		Format:   "Rewrite the text using more diplomatic, positive, and tactful language while preserving the core message.",
		Tone:     "Use a warm, empathetic, and positive tone.",
		Task:     "Rewrite the provided text to sound more diplomatic and constructive while conveying the same information.",
	}
}

func analyze(name string, a Answers) Record {
	return Record{
		Context:  block(textContext(name, a), "Industry or context: ", a.Get(QIndustry)),
		Role:     "You are an expert analyst with strong critical thinking and evaluation skills.",
		Audience: "The analysis should be appropriate for someone seeking objective insights.",
		Format:   "Provide a structured analysis with key points, themes, strengths, weaknesses, and recommendations.",
		Tone:     "Use an objective, analytical tone that is balanced and evidence-based.",
		Task: "Analyze the provided text" + opt(" with the goal of ", a.Get(QAnalysisPurpose)) +
			", identifying its key elements, strengths, weaknesses, and implications.",
	}
}

func email(_ string, a Answers) Record {
	recipient, purpose := a.Get(QEmailRecipient), a.Get(QEmailPurpose)
	return Record{
		Context:  "I need to write a professional email" + opt(" to ", recipient) + opt(" regarding ", purpose) + ".",
		Role:     "You are an expert communication specialist with experience in professional email writing.",
		Audience: either(optWrap("The email is intended for ", recipient, "."), defaultAudience),
		Format:   "Include a subject line, greeting, body paragraphs, and a professional closing.",
		Tone:     either(optWrap("Use a ", a.Get(QEmailTone), " tone throughout the email."), defaultTone),
		Task: block("Write a complete email"+opt(" about ", purpose)+".",
			"Include these specific points:\n\n", a.Get(QSpecificPoints)),
	}
}

func memo(_ string, a Answers) Record {
	recipient := a.Get(QMemoRecipient)
	task := "Create a complete memo that effectively communicates the necessary information."
	if info := a.Get(QMemoInfo); info != "" {
		task = "Create a complete memo that effectively communicates:\n\n" + info
	}
	return Record{
		Context:  "I need to create a formal memo" + opt(" for ", recipient) + opt(" about ", a.Get(QMemoTopic)) + ".",
		Role:     "You are a professional business writer with expertise in creating effective memos.",
		Audience: either(optWrap("The memo is addressed to ", recipient, "."), defaultAudience),
		Format:   "Structure the memo with a header (TO, FROM, DATE, SUBJECT), summary, body with key points, and conclusion.",
		Tone:     either(optWrap("Maintain a ", a.Get(QMemoTone), " tone appropriate for business communication."), defaultTone),
		Task:     block(task, "Include these specific points:\n\n", a.Get(QSpecificPoints)),
	}
}

func letter(_ string, a Answers) Record {
	recipient, purpose := a.Get(QLetterRecipient), a.Get(QLetterPurpose)
	return Record{
		Context: "I need to write a " + optWrap("", a.Get(QLetterKind), " ") + "letter" +
			opt(" to ", recipient) + opt(" regarding ", purpose) + ".",
		Role:     "You are a skilled writer with experience in personal and professional correspondence.",
		Audience: either(optWrap("The letter is addressed to ", recipient, "."), defaultAudience),
		Format:   "Format as a proper letter with date, address, salutation, body paragraphs, closing, and signature line.",
		Tone:     either(optWrap("Use a ", a.Get(QLetterTone), " tone in the letter."), defaultTone),
		Task: block("Write a complete letter"+opt(" regarding ", purpose)+".",
			"Include these specific points:\n\n", a.Get(QSpecificPoints)),
	}
}

func workout(_ string, a Answers) Record {
	return Record{
		Context: block(
			"I need to develop a workout plan"+opt(" to achieve the following goals: ", a.Get(QFitnessGoals))+".",
			"Physical limitations: ", a.Get(QLimitations)),
		Role:     "You are a certified personal trainer and fitness expert.",
		Audience: defaultAudience,
		Format:   "Include workout schedule, specific exercises, sets/reps, rest periods, and progression guidelines.",
		Tone:     defaultTone,
		Task: "Develop a detailed workout plan" +
			optWrap(" for ", a.Get(QDaysPerWeek), " days per week") +
			opt(" using the following equipment: ", a.Get(QEquipment)) + ".",
	}
}

func investment(_ string, a Answers) Record {
	return Record{
		Context: block(
			"I need help with my "+either(a.Get(QAccountType), "investment")+" portfolio.",
			"Investment guidelines: ", a.Get(QGuidelines)),
		Role:     "You are a financial advisor with expertise in investment management.",
		Audience: defaultAudience,
		Format:   "Provide specific investment recommendations, asset allocation, risk assessment, and rationale.",
		Tone:     defaultTone,
		Task:     "Provide investment portfolio advice" + optWrap(" for a ", a.Get(QRiskTolerance), " risk tolerance") + ".",
	}
}

// other wraps a free-form prompt. An empty prompt leaves Context blank so
// the generic fragment takes over.
func other(_ string, a Answers) Record {
	return Record{
		Context:  a.Get(QPrompt),
		Role:     "You are an expert assistant with deep knowledge in the relevant domains needed to address this request.",
		Audience: "The content should be appropriate for the intended audience implied in the request.",
		Format:   "Provide a clear, well-structured response with appropriate formatting for the content.",
		Tone:     "Use a clear, appropriate tone that matches the purpose and audience of the content.",
		Task:     "Respond to the request thoroughly and effectively, addressing all aspects mentioned.",
	}
}

// Generic builds the fallback record used for templates that are not built in.
// Every section names the lower-cased template; answers are listed as details
// in Context, sorted by question.
func Generic(name string, answers Answers) Record {
	subject := strings.ToLower(strings.TrimSpace(name))
	if subject == "" {
		subject = "this request"
	}

	context := fmt.Sprintf("I need assistance with %s.", subject)
	present := answers.Present()
	if len(present) > 0 {
		questions := make([]string, 0, len(present))
		for q := range present {
			questions = append(questions, q)
		}
		sort.Strings(questions)

		var b strings.Builder
		b.WriteString(context)
		b.WriteString("\n\nDetails:")
		for _, q := range questions {
			fmt.Fprintf(&b, "\n- %s: %s", q, present[q])
		}
		context = b.String()
	}

	return Record{
		Context:  context,
		Role:     fmt.Sprintf("You are an expert in %s.", subject),
		Audience: fmt.Sprintf("The content should be appropriate for the intended audience of %s.", subject),
		Format:   fmt.Sprintf("Provide a clear, well-structured response for %s with appropriate formatting.", subject),
		Tone:     fmt.Sprintf("Use a clear, professional tone that's appropriate for %s.", subject),
		Task:     fmt.Sprintf("Please help me with %s based on the information provided.", subject),
	}
}
