package services

import (
	"fmt"
	"strings"
)

// Mode is an output format. The zero value is ModeDefault.
type Mode int

const (
	ModeDefault Mode = iota
	ModeTweetSingle
	ModeThreadShort
	ModeThreadMedium
	ModeThreadLong
	ModeThreadMega
	ModeSummaryBullets
	ModeSummaryProse
	ModeDeepDive
	ModeTimeline
	ModeClaimsEvidence
)

var modeNames = map[string]Mode{
	"tweet_single":    ModeTweetSingle,
	"thread_short":    ModeThreadShort,
	"thread_medium":   ModeThreadMedium,
	"thread_long":     ModeThreadLong,
	"thread_mega":     ModeThreadMega,
	"summary_bullets": ModeSummaryBullets,
	"summary_prose":   ModeSummaryProse,
	"deep_dive":       ModeDeepDive,
	"timeline":        ModeTimeline,
	"claims_evidence": ModeClaimsEvidence,

	// Legacy names from the first version of the mode picker.
	"tweet":        ModeTweetSingle,
	"thread":       ModeThreadMedium,
	"summary":      ModeSummaryProse,
	"long_summary": ModeDeepDive,
	"claims":       ModeClaimsEvidence,
}

// ParseMode maps a mode name (modern or legacy) to a Mode. Unknown names
// map to ModeDefault.
func ParseMode(name string) Mode {
	if m, ok := modeNames[strings.TrimSpace(name)]; ok {
		return m
	}
	return ModeDefault
}

func (m Mode) String() string {
	switch m {
	case ModeTweetSingle:
		return "tweet_single"
	case ModeThreadShort:
		return "thread_short"
	case ModeThreadMedium:
		return "thread_medium"
	case ModeThreadLong:
		return "thread_long"
	case ModeThreadMega:
		return "thread_mega"
	case ModeSummaryBullets:
		return "summary_bullets"
	case ModeSummaryProse:
		return "summary_prose"
	case ModeDeepDive:
		return "deep_dive"
	case ModeTimeline:
		return "timeline"
	case ModeClaimsEvidence:
		return "claims_evidence"
	default:
		return "default"
	}
}

// Instruction is the format instruction sent to the model.
func (m Mode) Instruction() string {
	switch m {
	case ModeTweetSingle:
		return "Write exactly ONE tweet, approximately 280 characters. Include a strong hook and one key insight. Make every word count."
	case ModeThreadShort:
		return "Write exactly 5 numbered tweets forming a cohesive thread. Tweet 1: Hook that grabs attention. Tweets 2-4: Core insights or main points. Tweet 5: Strong conclusion or call-to-action. Each tweet should stand alone but connect to the overall narrative."
	case ModeThreadMedium:
		return "Write exactly 10 numbered tweets. Tweet 1: Compelling hook. Tweets 2-9: Detailed breakdown of key points with examples or insights. Tweet 10: Memorable conclusion or clear call-to-action. This is the standard thread format."
	case ModeThreadLong:
		return "Write exactly 15 numbered tweets. Tweet 1: Strong hook. Tweets 2-14: In-depth analysis with multiple angles, examples, and insights. Tweet 15: Powerful conclusion or call-to-action. Go deep on the topic."
	case ModeThreadMega:
		return "Write 20-25 numbered tweets. Tweet 1: Compelling hook. Tweets 2-23: Comprehensive breakdown with sub-sections, multiple examples, case studies, and detailed insights. Final tweet: Strong conclusion. This should be an ultimate guide-style thread."
	case ModeSummaryBullets:
		return "Write a 200-300 word summary in bullet point format. Create 5-7 bullet points, each 30-50 words (1-2 sentences). Make each bullet scannable and actionable. Use • bullet format. Focus on key takeaways."
	case ModeSummaryProse:
		return "Write a 300-500 word summary in flowing paragraph format. Create 3-5 connected paragraphs with natural transitions between ideas. Write in a readable, engaging narrative style that flows naturally."
	case ModeDeepDive:
		return "Write an 800-1200 word comprehensive analysis. Structure it with 5-7 sections, each with a clear header (use ## markdown). Include examples, context, and implications. This should be article-quality depth with multiple perspectives."
	case ModeTimeline:
		return "Create a 300-600 word chronological timeline. Format each entry as: • [Date/Time]: [Event] - [Brief description]. Use specific dates when available, or relative dates (Day 1, Day 30, Week 1). Show clear progression and momentum. Good for case studies and transformation stories."
	case ModeClaimsEvidence:
		return "Write a 500-700 word analysis in claims + evidence format. Identify 4-6 main claims from the content. For each claim, list 3-5 supporting evidence points. Format as: **Claim 1:** [Statement], Evidence: • Point A, • Point B, etc. Be analytical and show your reasoning."
	default:
		return "Write a clear, concise summary of the key ideas in 300-500 words."
	}
}

// Tone is the stylistic register. The zero value is ToneBalanced.
type Tone int

const (
	ToneBalanced Tone = iota
	TonePersonal
	ToneAnalytical
)

// ParseTone maps a tone name to a Tone. Unknown names map to ToneBalanced.
func ParseTone(name string) Tone {
	switch strings.TrimSpace(name) {
	case "personal":
		return TonePersonal
	case "analytical":
		return ToneAnalytical
	default:
		return ToneBalanced
	}
}

func (t Tone) String() string {
	switch t {
	case TonePersonal:
		return "personal"
	case ToneAnalytical:
		return "analytical"
	default:
		return "balanced"
	}
}

func (t Tone) Instruction() string {
	switch t {
	case TonePersonal:
		return personalTone
	case ToneAnalytical:
		return analyticalTone
	default:
		return balancedTone
	}
}

const personalTone = `TONE: Personal and Conversational

Write like you're explaining this to a friend. Be warm, relatable, and human.

COMMENT USAGE - PRIMARY SOURCE:
- Comments are your MAIN content source. Extract the sentiment, insights, and reactions from them.
- If a comment says "this changed how I think" → Emphasize the transformative insight in your writing
- If a comment says "why doesn't everyone do this" → Frame as novel/overlooked approach
- If a comment shares results ("got 500 signups") → Include outcome-focused language
- Express the SAME sentiments from comments, just in conversational style

WRITING STYLE:
- Use "you" and "I/we" liberally
- Short, punchy sentences mixed with longer explanations
- Conversational phrases: "Here's the thing...", "I know what you're thinking..."
- Show energy and enthusiasm when comments show it
- Make it feel like advice from a knowledgeable friend

Remember: You're expressing THEIR insights (from comments), just in a friendly conversational way. Never quote directly, but convey the exact meaning.`

const analyticalTone = `TONE: Analytical and Methodical

Write objectively and precisely. Focus on logic, structure, and clear reasoning.

COMMENT USAGE - PRIMARY SOURCE:
- Comments are your MAIN data source. Extract specific insights, results, and patterns.
- If a comment mentions results ("got 500 signups") → Present as quantifiable data
- If a comment asks a question → Identify it as a recurring consideration
- If multiple comments mention same thing → Note it as a pattern
- Express the SAME information from comments, just in analytical language

WRITING STYLE:
- Precise, factual language
- Quantify when possible ("increased by factor of X")
- Clinical assessment style
- Minimal emotional language
- Logical structure and reasoning

Remember: Same data from comments, just expressed analytically and objectively. Never quote, but present the information precisely.`

const balancedTone = `TONE: Professional but Accessible

Write clearly and credibly, but keep it approachable. Balance structure with readability.

COMMENT USAGE - PRIMARY SOURCE:
- Comments are your MAIN source. Extract key insights, questions, and experiences people shared.
- If a comment shares an insight → Present it as a key finding
- If a comment asks a question → Address it as a common consideration
- If a comment shares results → Include as evidence of effectiveness
- Express the SAME points from comments, just in professional language

WRITING STYLE:
- Clear, structured sentences
- Professional vocabulary without being stuffy
- Use frameworks and logical flow
- Present information credibly
- Balance accessibility with authority

Remember: Same insights from comments, just expressed professionally. Never quote, but convey the meaning clearly and credibly.`

// OutputRules is the fixed policy appended to every prompt.
const OutputRules = `OUTPUT RULES (must follow):
- Do NOT mention YouTube, "comments", "commenters", "users", or "channel" in the final answer.
- Do NOT quote any comment text (no direct quotes, no "Top comment says...").
- Do NOT attribute any idea to a person (no @handles, no "someone said", no "a user mentioned").
- You MAY use ideas found in comments, but rewrite them as neutral observations with no source callouts.
- If the user asks for quotes, refuse and instead summarize the underlying ideas without attribution.`

// ComposeInstruction returns the format instruction for a mode name.
func ComposeInstruction(mode string) string {
	return ParseMode(mode).Instruction()
}

// ComposePrompt assembles the full model prompt: tone, output rules, the
// selected mode instruction and the content bank, in that order.
func ComposePrompt(contentBank, mode, tone string) string {
	modeLabel := strings.TrimSpace(mode)
	if modeLabel == "" {
		modeLabel = ModeSummaryProse.String()
	}
	toneLabel := strings.TrimSpace(tone)
	if toneLabel == "" {
		toneLabel = ToneBalanced.String()
	}

	var b strings.Builder

	b.WriteString("You are a careful analyst. You are given a CONTENT BANK compiled from screenshots, transcripts, comments, articles, and raw text.\n\n")

	b.WriteString(ParseTone(tone).Instruction())
	b.WriteString("\n\n")

	b.WriteString(OutputRules)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("User-selected mode: %s\n", modeLabel))
	b.WriteString(fmt.Sprintf("User-selected tone: %s\n\n", toneLabel))

	b.WriteString("Instruction:\n")
	b.WriteString(ComposeInstruction(mode))
	b.WriteString("\n\n")

	b.WriteString("CONTENT BANK:\n")
	b.WriteString(contentBank)
	b.WriteString("\n\nNow produce the output in plain text.\n")

	return b.String()
}
