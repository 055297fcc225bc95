package prompts

const classifySpec = `Respond with a JSON object matching this exact structure:

{
  "strategise_and_plan": {
    "relevant_content": "<excerpt>",
    "key_points": ["<point>"],
    "confidence_score": 0.0
  },
  "migrate_and_modernise": { ... },
  "manage_and_optimise": { ... }
}

Field constraints:
- Include one entry for every phase key shown above.
- relevant_content: The passage of the document that best supports the phase, quoted verbatim. Empty string when none.
- key_points: Short statements of what the document says about the phase.
- confidence_score: Number between 0.0 and 1.0 expressing how substantively the document addresses the phase.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Do not invent content that is not in the document`

const evaluateSpec = `Respond with a JSON object matching this exact structure:

{
  "score": 0,
  "strengths": ["<strength>"],
  "weaknesses": ["<weakness>"],
  "evidence": ["<quote>"],
  "recommendations": ["<recommendation>"]
}

Field constraints:
- score: Integer 0, 1, 2 or 3 following the scoring scale.
- strengths: What the document does well for this phase.
- weaknesses: Criteria that are missing or weak for this phase.
- evidence: Short verbatim quotes from the document supporting the score.
- recommendations: Concrete changes that would raise the score.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Score only the phase named in the criteria`

const complySpec = `Respond with a JSON object matching this exact structure:

{
  "overall_compliance_score": 0.0,
  "missing_elements": ["<element>"],
  "strengths": ["<strength>"],
  "improvement_areas": ["<area>"],
  "recommendations": ["<recommendation>"]
}

Field constraints:
- overall_compliance_score: Number between 0.0 and 1.0 for how fully the document satisfies the core principles.
- missing_elements: Core principles the document does not address, and red flags it exhibits.
- strengths: Principles the document satisfies convincingly.
- improvement_areas: Principles addressed only partially.
- recommendations: Concrete changes that would improve compliance.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing`

var specs = map[Stage]string{
	StageClassify: classifySpec,
	StageEvaluate: evaluateSpec,
	StageComply:   complySpec,
}

// Spec returns the response-format specification for a workflow stage.
// Specs define the JSON shape the workflow decodes and are not tunable.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
