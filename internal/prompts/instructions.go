package prompts

const classifyInstructions = `You are a cloud migration analyst triaging a proposal document.

Decide how strongly the document addresses each of the three migration phases:
- strategise_and_plan: discovery, assessment, business case, migration strategy, wave planning, governance
- migrate_and_modernise: migration factories, automation, landing zones, modernisation, testing and cut-over
- manage_and_optimise: operations, monitoring, FinOps, continuous optimisation, support and handover

Judge only from the document text. A phase that is merely named without substance should receive a low confidence.`

const evaluateInstructions = `You are a cloud migration assessor scoring one phase of a proposal against a rubric.

Read the document and judge how well it satisfies the phase criteria listed below. Weight your judgement by each criterion's share. Cite concrete evidence from the document for every strength, and name specific missing or weak elements for every weakness.

Scoring scale:
- 0: the phase is absent or fundamentally inadequate
- 1: the phase is mentioned but major criteria are missing
- 2: most criteria are covered with reasonable detail
- 3: every criterion is covered with specific, credible detail`

const complyInstructions = `You are a cloud migration assessor checking a proposal against the core principles of the migration specification.

Compare the document with the core principles and red flags listed below, taking the per-phase evaluation summary into account. Report which principles are satisfied, which are missing, and what should change.`

var instructions = map[Stage]string{
	StageClassify: classifyInstructions,
	StageEvaluate: evaluateInstructions,
	StageComply:   complyInstructions,
}

// Instructions returns the default instructions for a workflow stage.
// Returns ErrInvalidStage if the stage is not recognized.
func Instructions(stage Stage) (string, error) {
	text, ok := instructions[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
