package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"tweet_single", ModeTweetSingle},
		{"thread_short", ModeThreadShort},
		{"thread_medium", ModeThreadMedium},
		{"thread_long", ModeThreadLong},
		{"thread_mega", ModeThreadMega},
		{"summary_bullets", ModeSummaryBullets},
		{"summary_prose", ModeSummaryProse},
		{"deep_dive", ModeDeepDive},
		{"timeline", ModeTimeline},
		{"claims_evidence", ModeClaimsEvidence},
		{"tweet", ModeTweetSingle},
		{"thread", ModeThreadMedium},
		{"summary", ModeSummaryProse},
		{"long_summary", ModeDeepDive},
		{"claims", ModeClaimsEvidence},
		{"", ModeDefault},
		{"haiku", ModeDefault},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseMode(tc.in))
		})
	}
}

func TestComposeInstruction_LegacyAliasesMatchModernModes(t *testing.T) {
	assert.Equal(t, ComposeInstruction("thread_medium"), ComposeInstruction("thread"))
	assert.Equal(t, ComposeInstruction("tweet_single"), ComposeInstruction("tweet"))
	assert.Equal(t, ComposeInstruction("summary_prose"), ComposeInstruction("summary"))
	assert.Equal(t, ComposeInstruction("deep_dive"), ComposeInstruction("long_summary"))
	assert.Equal(t, ComposeInstruction("claims_evidence"), ComposeInstruction("claims"))
}

func TestComposeInstruction_UnknownModeUsesDefault(t *testing.T) {
	want := "Write a clear, concise summary of the key ideas in 300-500 words."
	assert.Equal(t, want, ComposeInstruction("nonsense"))
	assert.Equal(t, want, ComposeInstruction(""))
}

func TestModeString_RoundTrips(t *testing.T) {
	names := []string{
		"tweet_single", "thread_short", "thread_medium", "thread_long", "thread_mega",
		"summary_bullets", "summary_prose", "deep_dive", "timeline", "claims_evidence",
	}
	for _, name := range names {
		assert.Equal(t, name, ParseMode(name).String())
	}
	assert.Equal(t, "default", ModeDefault.String())
}

func TestParseTone(t *testing.T) {
	assert.Equal(t, TonePersonal, ParseTone("personal"))
	assert.Equal(t, ToneAnalytical, ParseTone("analytical"))
	assert.Equal(t, ToneBalanced, ParseTone("balanced"))
	assert.Equal(t, ToneBalanced, ParseTone(""))
	assert.Equal(t, ToneBalanced, ParseTone("sarcastic"))
}

func TestComposePrompt(t *testing.T) {
	prompt := ComposePrompt("BANK CONTENTS", "thread", "analytical")

	assert.True(t, strings.HasPrefix(prompt, "You are a careful analyst."))
	assert.Contains(t, prompt, "TONE: Analytical and Methodical")
	assert.Contains(t, prompt, OutputRules)
	assert.Contains(t, prompt, "User-selected mode: thread\n")
	assert.Contains(t, prompt, "User-selected tone: analytical\n")
	assert.Contains(t, prompt, "Instruction:\n"+ModeThreadMedium.Instruction())
	assert.Contains(t, prompt, "CONTENT BANK:\nBANK CONTENTS")
	assert.True(t, strings.HasSuffix(prompt, "Now produce the output in plain text.\n"))

	// tone, rules, instruction and bank appear in that order
	order := []string{"TONE:", "OUTPUT RULES", "Instruction:", "CONTENT BANK:"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(prompt, marker)
		assert.Greater(t, idx, last, "%s out of order", marker)
		last = idx
	}
}

func TestComposePrompt_Defaults(t *testing.T) {
	prompt := ComposePrompt("bank", "", "")

	assert.Contains(t, prompt, "TONE: Professional but Accessible")
	assert.Contains(t, prompt, "User-selected mode: summary_prose\n")
	assert.Contains(t, prompt, "User-selected tone: balanced\n")
	assert.Contains(t, prompt, "Instruction:\n"+ModeDefault.Instruction())
}
