package analysis

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/sentry-coach/pkg/chat"
	"github.com/jwebster45206/sentry-coach/pkg/emotion"
	"github.com/jwebster45206/sentry-coach/pkg/lang"
	"github.com/jwebster45206/sentry-coach/pkg/state"
)

func finishedSession(l lang.Language) *state.Session {
	s := state.NewSession(l)
	s.Game = state.GameState{Round: 4, Stars: 3, Ended: true, EndType: state.OutcomeSuccess}
	s.Interventions = []state.InterventionRecord{
		{Round: 1, AdultMessage: "Let's check it together.", ChildReply: "Okay.", Emotion: emotion.Happy, WasPositive: true},
		{Round: 2, AdultMessage: "Stop it now.", ChildReply: "No!", Emotion: emotion.Defensive, WasNegative: true},
	}
	return s
}

func TestBuild_FromInterventions(t *testing.T) {
	r := Build(finishedSession(lang.English))

	assert.True(t, r.Ended)
	assert.Equal(t, state.OutcomeSuccess, r.Outcome)
	assert.Contains(t, r.Summary, "Final score: 3 stars, 0 strikes.")
	require.Len(t, r.Interventions, 2)

	assert.Equal(t, EvaluationPositive, r.Interventions[0].Evaluation)
	assert.Contains(t, r.Interventions[0].Reason, "This intervention was effective.")
	assert.Equal(t, emotion.Happy, r.Interventions[0].Emotion)
	assert.Equal(t, EvaluationNegative, r.Interventions[1].Evaluation)
	assert.Contains(t, r.Interventions[1].Reason, "was not effective")
}

func TestBuild_Summaries(t *testing.T) {
	s := state.NewSession(lang.TraditionalChinese)
	s.Game = state.GameState{Round: 6, Stars: 1, Strikes: 1, Ended: true, EndType: state.OutcomeFailure}
	assert.Equal(t, "孩子點擊了連結。最終分數：1 顆星，1 個叉。介入策略需要改進。", Build(s).Summary)

	s.Game = state.GameState{Round: 2, Strikes: 1}
	r := Build(s)
	assert.False(t, r.Ended)
	assert.Contains(t, r.Summary, "進行中")
}

func TestBuild_FromHistory(t *testing.T) {
	s := state.NewSession(lang.English)
	s.AddUtterance(chat.RoleKid, "I got a message with a link. Should I click it?")
	s.AddUtterance(chat.RoleAdult, "Let's ask a parent together because it could be fake.")
	s.AddUtterance(chat.RoleKid, "Okay.")
	s.AddUtterance(chat.RoleAdult, "You must close it.")
	s.AddUtterance(chat.RoleKid, "Why?")
	s.AddUtterance(chat.RoleAdult, "Ask a grown-up.")
	s.AddUtterance(chat.RoleKid, "Fine.")
	s.AddUtterance(chat.RoleAdult, "Hmm.")
	s.AddUtterance(chat.RoleKid, "What?")

	r := Build(s)
	require.Len(t, r.Interventions, 4)

	assert.Equal(t, 1, r.Interventions[0].Round)
	assert.Equal(t, "Okay.", r.Interventions[0].ChildReply)
	assert.Equal(t, EvaluationPositive, r.Interventions[0].Evaluation)
	assert.Contains(t, r.Interventions[0].Reason, "supportive explanation")

	assert.Equal(t, EvaluationNegative, r.Interventions[1].Evaluation)
	assert.Contains(t, r.Interventions[1].Reason, "commanding language")

	assert.Equal(t, EvaluationPositive, r.Interventions[2].Evaluation)
	assert.Contains(t, r.Interventions[2].Reason, "could explain the reasons")

	assert.Equal(t, EvaluationNeutral, r.Interventions[3].Evaluation)
}

func TestJudge_WordBoundaries(t *testing.T) {
	// "know" must not count as the command word "no"
	ev, _ := judge("I know it looks fun.", false, false)
	assert.Equal(t, EvaluationNeutral, ev)

	ev, _ = judge("不可以點！", false, false)
	assert.Equal(t, EvaluationNegative, ev)

	ev, _ = judge("我們一起問大人，因為可能是假的。", false, false)
	assert.Equal(t, EvaluationPositive, ev)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, Build(finishedSession(lang.English)), PDFOptions{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWritePDF_UnicodeFont(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, Build(finishedSession(lang.TraditionalChinese)), PDFOptions{})
	assert.ErrorIs(t, err, ErrUnicodeFontRequired)

	s := finishedSession(lang.English)
	s.Interventions[0].AdultMessage = "我們一起看看"
	err = WritePDF(&buf, Build(s), PDFOptions{})
	assert.ErrorIs(t, err, ErrUnicodeFontRequired)

	missing := filepath.Join(t.TempDir(), "missing.ttf")
	err = WritePDF(&buf, Build(s), PDFOptions{FontPath: missing})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnicodeFontRequired)
	assert.Zero(t, buf.Len())
}
