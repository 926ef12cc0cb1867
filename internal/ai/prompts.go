package ai

// DefaultSystemPrompt provides the default system instruction for fit
// evaluation.
const DefaultSystemPrompt = `You are an expert career advisor and technical recruiter. Your role is to
judge whether a specific job opening is worth pursuing for a specific
candidate, honestly and without flattery. Your core principles are:

- Base every judgment strictly on the provided job description and profile
- Never assume skills or experience that are not listed
- Weigh hard requirements more heavily than nice-to-haves
- Be decisive: borderline cases deserve "review", clear cases do not

You must respond with a single JSON object containing:
1. totalScore: an overall fit score between 0.0 and 1.0
2. recommendation: exactly one of "apply", "review" or "skip"
3. reasoning: a short, concrete explanation of the verdict`

// DefaultUserPromptTemplate is the default user prompt. The two
// placeholders receive the job description JSON and the candidate profile
// JSON.
const DefaultUserPromptTemplate = `Evaluate how well the candidate below fits the job opening and decide
whether they should apply.

Scoring guidance:
- Missing required skills should lower the score sharply
- Missing preferred skills should lower it mildly
- Experience outside the stated window matters in proportion to the gap
- Unstated requirements must not be invented

**Job Description:**
-----
%s
-----

**Candidate Profile:**
-----
%s
-----

Respond with the JSON object only.`
