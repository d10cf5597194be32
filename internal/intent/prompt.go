package intent

// fallbackQuestion is asked when a query needs follow-up but no specific
// question applies.
const fallbackQuestion = "Can you share more details about what you need?"

// formatQuestions maps a format to the question asked for each missing field.
var formatQuestions = map[string]map[string]string{
	"email": {
		"audience": "Who is the recipient of this email? (e.g., 'client', 'team member', 'hiring manager')",
		"purpose":  "What is the main purpose of this email? (e.g., 'follow up on meeting', 'project proposal', 'job application')",
		"tone":     "What tone should the email have? (e.g., 'professional and formal', 'friendly but professional', 'direct and concise')",
	},
	"cover letter": {
		"audience": "Who will read this cover letter? (e.g., 'law firm hiring team', 'tech recruiter')",
		"purpose":  "Which role are you applying for, and what should the letter emphasize?",
		"tone":     "What tone should the letter have? (e.g., 'formal', 'enthusiastic', 'confident')",
	},
	"blog post": {
		"audience": "Who is the target audience for this blog post? (e.g., 'tech professionals', 'beginners', 'business leaders')",
		"tone":     "What tone should the content have? (e.g., 'conversational', 'technical', 'educational')",
		"purpose":  "What is the main goal of this blog post? (e.g., 'educate', 'inform', 'persuade')",
	},
	"report": {
		"audience": "Who will be reading this report? (e.g., 'executive team', 'stakeholders', 'technical team')",
		"purpose":  "What is the main objective of this report? (e.g., 'status update', 'analysis findings', 'recommendations')",
		"domain":   "What is the specific domain or context? (e.g., 'project performance', 'market analysis', 'technical evaluation')",
	},
}

// followUpQuestions returns one question per missing field. Formats with a
// required field set use their own wording; otherwise the intent decides.
func followUpQuestions(a *Analysis) []string {
	var questions []string

	if catalog, ok := formatQuestions[a.Format]; ok {
		for _, f := range a.Missing() {
			questions = append(questions, catalog[f])
		}
	} else {
		switch a.Intent {
		case KindCreative:
			if a.Audience == "" {
				questions = append(questions, "Who is the target audience for this content?")
			}
			if a.Tone == "" {
				questions = append(questions, "What tone or style would you prefer? (e.g., 'professional', 'casual', 'technical')")
			}
			if a.Purpose == "" {
				questions = append(questions, "What is the main purpose or goal of this content?")
			}
		case KindAnalysis:
			if a.Purpose == "" {
				questions = append(questions, "What specific aspects need to be analyzed?")
			}
			if a.Domain == "" {
				questions = append(questions, "What is the context or domain for this analysis?")
			}
		case KindCode:
			if a.Domain == "" || a.Domain == "software development" {
				questions = append(questions, "What programming language or framework should be used?")
			}
			questions = append(questions, "Are there any specific requirements or constraints?")
		default:
			if a.Purpose == "" {
				questions = append(questions, "What is the main goal or purpose?")
			}
			if a.Audience == "" {
				questions = append(questions, "Who is the intended audience?")
			}
			if a.Tone == "" {
				questions = append(questions, "What tone would you like? (e.g., 'formal', 'casual', 'technical')")
			}
		}
	}

	if len(questions) == 0 {
		questions = append(questions, fallbackQuestion)
	}
	return questions
}
