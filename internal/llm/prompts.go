package llm

import "fmt"

// Prompt wording is part of the contract with the providers: the schemas
// below are what the schema validator expects back. Required keys for both
// modes: skills, codingTask, questions. Dev mode adds skillGaps and
// learningPath. Everything else is optional enrichment.

const hrSystemPrompt = `You are an expert HR recruiter. Analyze the provided job description for hiring purposes and return a JSON object in this exact structure:

{
  "skills": ["skill1", "skill2", ...],
  "salaryEstimation": "string (e.g. $100k - $130k)",
  "softSkills": ["softSkill1", "softSkill2", ...],
  "evaluationCriteria": ["criteria1", "criteria2", ...],
  "codingTask": {
    "title": "Task title",
    "description": "Detailed description",
    "difficulty": "beginner|intermediate|advanced",
    "requirements": ["req1", "req2", ...]
  },
  "questions": {
    "technical": ["question1", "question2", ...],
    "behavioral": ["question1", "question2", ...]
  }
}

Focus on assessment and hiring perspective. Extract technical skills and create relevant coding challenges and interview questions.

IMPORTANT: Return ONLY valid JSON. No additional text, no markdown, no code blocks.`

const devSystemPrompt = `You are a career coach for developers. Analyze the provided job description for skill development and return a JSON object in this exact structure:

{
  "skills": ["skill1", "skill2", ...],
  "salaryEstimation": "string (e.g. $100k - $130k)",
  "softSkills": ["softSkill1", "softSkill2", ...],
  "resumeKeywords": ["keyword1", "keyword2", ...],
  "projectSuggestion": "string (brief description of a portfolio project)",
  "codingTask": {
    "title": "Practice project title",
    "description": "Detailed project description for learning",
    "difficulty": "beginner|intermediate|advanced",
    "requirements": ["req1", "req2", ...],
    "learningResources": ["resource1", "resource2", ...]
  },
  "questions": {
    "technical": ["question1", "question2", ...],
    "behavioral": ["question1", "question2", ...],
    "selfAssessment": ["question1", "question2", ...]
  },
  "skillGaps": ["gap1", "gap2", ...],
  "learningPath": ["step1", "step2", ...]
}

Focus on skill development and interview preparation. Identify skill gaps and provide learning guidance.

IMPORTANT: Return ONLY valid JSON. No additional text, no markdown, no code blocks.`

// SystemPrompt returns the chat system message for the given mode. Callers
// validate the mode first; anything that is not "dev" gets the HR prompt.
func SystemPrompt(mode string) string {
	if mode == "dev" {
		return devSystemPrompt
	}
	return hrSystemPrompt
}

// UserPrompt embeds the job description verbatim as the chat user message.
func UserPrompt(jdText string) string {
	return fmt.Sprintf("Analyze this job description text exactly as given:\n%s", jdText)
}

// Prompt builds the single-string prompt variant for providers without a
// system/user message split.
func Prompt(mode, jdText string) string {
	return fmt.Sprintf("%s\n\nJOB DESCRIPTION:\n%s", SystemPrompt(mode), jdText)
}
