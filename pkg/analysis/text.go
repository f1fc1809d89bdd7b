package analysis

import "github.com/jwebster45206/sentry-coach/pkg/lang"

// Labels are the fixed headings used when rendering a report.
type Labels struct {
	Title             string
	OverallOutcome    string
	Success           string
	Failure           string
	InProgress        string
	InterventionTitle string
	RoundFormat       string
	AdultMessage      string
	ChildReply        string
	Thought           string
	Reason            string
	Evaluations       map[Evaluation]string
}

type catalog struct {
	labels          Labels
	successSummary  string
	failureSummary  string
	progressSummary string
	reasons         map[reasonKey]string
}

type reasonKey int

const (
	reasonEffective reasonKey = iota
	reasonIneffective
	reasonSupportive
	reasonCommand
	reasonBasic
	reasonNeutral
)

var english = catalog{
	labels: Labels{
		Title:             "Intervention Analysis Report",
		OverallOutcome:    "Overall Outcome",
		Success:           "Success",
		Failure:           "Failure",
		InProgress:        "In progress",
		InterventionTitle: "Intervention Analysis",
		RoundFormat:       "Round %d",
		AdultMessage:      "Your Response",
		ChildReply:        "Child's Reaction",
		Thought:           "Child's Thought",
		Reason:            "Analysis",
		Evaluations: map[Evaluation]string{
			EvaluationPositive: "Effective",
			EvaluationNegative: "Ineffective",
			EvaluationNeutral:  "Neutral",
		},
	},
	successSummary:  "You successfully helped the child make safe choices. Final score: %d stars, %d strikes.",
	failureSummary:  "The child clicked the link. Final score: %d stars, %d strikes. Intervention strategies need improvement.",
	progressSummary: "The session is still in progress. Current score: %d stars, %d strikes.",
	reasons: map[reasonKey]string{
		reasonEffective:   "This intervention was effective. You used a supportive approach that helped the child understand the importance of safety. By explaining and guiding rather than commanding, the child was more receptive to your advice.",
		reasonIneffective: "This intervention was not effective. Possible reasons: using commanding language made the child feel controlled, or you did not adequately explain why caution was needed. A better approach would be to explain the reasons and guide the child to make their own decision.",
		reasonSupportive:  "You used supportive explanation and guidance rather than commanding instructions. This helps the child understand why caution is needed, rather than simply being told \"don't do it.\" Through explanation and collaborative discussion, the child is more likely to accept your advice.",
		reasonCommand:     "You used commanding language, which may make the child feel controlled and increase emotional load. A better approach would be to explain the reasons and guide the child to make their own decision, rather than directly commanding them.",
		reasonBasic:       "You provided safety advice, but could explain the reasons in more detail to help the child better understand.",
		reasonNeutral:     "Your response was relatively neutral. You could provide more explicit safety guidance or explain potential risks.",
	},
}

var chinese = catalog{
	labels: Labels{
		Title:             "介入分析報告",
		OverallOutcome:    "整體結果",
		Success:           "成功",
		Failure:           "失敗",
		InProgress:        "進行中",
		InterventionTitle: "介入分析",
		RoundFormat:       "第 %d 回合",
		AdultMessage:      "你的回應",
		ChildReply:        "孩子的反應",
		Thought:           "孩子的想法",
		Reason:            "分析",
		Evaluations: map[Evaluation]string{
			EvaluationPositive: "有效",
			EvaluationNegative: "無效",
			EvaluationNeutral:  "中性",
		},
	},
	successSummary:  "你成功幫助孩子做出安全選擇。最終分數：%d 顆星，%d 個叉。",
	failureSummary:  "孩子點擊了連結。最終分數：%d 顆星，%d 個叉。介入策略需要改進。",
	progressSummary: "練習仍在進行中。目前分數：%d 顆星，%d 個叉。",
	reasons: map[reasonKey]string{
		reasonEffective:   "這次介入是有效的。你用了支持性的方式，幫助孩子理解安全的重要性。透過解釋與引導而非命令，孩子更容易接受你的建議。",
		reasonIneffective: "這次介入效果不佳。可能原因：命令式語言讓孩子感到被控制，或是沒有清楚說明為何需要小心。更好的方式是說明原因並引導孩子做出自己的判斷。",
		reasonSupportive:  "你使用了支持性的解釋與引導，而不是命令式指示。這有助於孩子理解為何需要小心，而不只是被要求「不要做」。透過解釋與協作討論，孩子更可能接受你的建議。",
		reasonCommand:     "你使用了命令式語言，可能讓孩子感到被控制並增加情緒負擔。更好的方式是說明原因並引導孩子自行判斷，而不是直接命令。",
		reasonBasic:       "你提供了安全建議，但可以更清楚地說明理由，幫助孩子更理解。",
		reasonNeutral:     "你的回應相對中性。你可以提供更明確的安全指引或解釋潛在風險。",
	},
}

func catalogFor(l lang.Language) *catalog {
	if l.IsChinese() {
		return &chinese
	}
	return &english
}

// LabelsFor returns the rendering headings for l.
func LabelsFor(l lang.Language) Labels {
	return catalogFor(l).labels
}

// Phrase lists for the per-message heuristics. Both languages are checked.
var (
	safetyPhrases = []string{
		"don't", "do not", "shouldn't", "should not", "danger", "dangerous", "safe",
		"ask", "adult", "parent", "explain", "help", "let's", "why", "because",
		"understand", "together",
		"不要", "危險", "安全", "問", "大人", "爸媽", "解釋", "幫", "為什麼", "因為", "了解", "一起",
	}
	commandPhrases = []string{
		"must", "have to", "need to", "required", "do this", "do that", "stop", "no", "can't",
		"必須", "一定要", "不准", "不可以", "不行", "停",
	}
	supportPhrases = []string{
		"let's", "together", "we can", "help", "understand", "explain", "why", "because",
		"我們", "一起", "幫", "了解", "解釋", "為什麼", "因為",
	}
)
