package suggest

import "github.com/jwebster45206/sentry-coach/pkg/lang"

const topicPlaceholder = "{topic}"

type topicRule struct {
	topic    Topic
	keywords []string
}

type catalog struct {
	pools  map[Tone][]string
	nouns  map[Topic]string
	topics []topicRule
	drafts []string
}

var englishCatalog = catalog{
	pools: map[Tone][]string{
		Positive: {
			"Let's look at the {topic} together before we do anything.",
			"Good job telling me. Who sent this {topic}?",
			"Some {topic} messages are tricks. Let's check it together.",
			"You're not in trouble. Let's ask an adult about the {topic}.",
			"What do you think could happen if the {topic} is fake?",
			"Let's close the {topic} together and check safely.",
			"Thank you for asking me. We can find out together.",
			"I know you really want the prize. Let's make a safe plan together.",
			"Let's pause and read the {topic} slowly together.",
			"We can keep you safe together. Should we ask mom or dad?",
		},
		Neutral: {
			"Can you show me the {topic} first?",
			"What does the {topic} say?",
			"Where did the {topic} come from?",
			"Let me see the {topic} for a second.",
			"Did a friend send you the {topic}?",
			"Tell me more about the {topic}.",
			"What made you want the prize?",
			"Has this {topic} shown up before?",
			"Which app was open when you saw it?",
			"Read me the words on the {topic}.",
		},
		Negative: {
			"Because I said so. Forget the {topic}.",
			"Stop asking about the {topic}.",
			"You never listen. Give me the tablet.",
			"No more screen time if you touch the {topic} again.",
			"I don't want to hear about prizes.",
			"That's a silly question. Close it now.",
			"Just do what I tell you.",
			"Why would you even look at a {topic}?",
			"I'm too busy for this right now.",
			"Put it down and go to your room.",
		},
	},
	nouns: map[Topic]string{
		TopicPopup: "pop-up",
		TopicPrize: "prize link",
		TopicLink:  "link",
	},
	topics: []topicRule{
		{TopicPopup, []string{"pop-up", "popup", "pop up", "window", "flashing", "banner"}},
		{TopicPrize, []string{"prize", "won", "win", "winner", "free", "gift", "reward", "coins", "robux"}},
	},
	drafts: []string{
		"{draft}.",
		"Let's try this: {draft}.",
		"I'm here with you. {draft}.",
		"We can do it together: {draft}.",
	},
}

var chineseCatalog = catalog{
	pools: map[Tone][]string{
		Positive: {
			"我們先一起看看這個{topic}，再決定要怎麼做。",
			"謝謝你告訴我。這個{topic}是誰傳的？",
			"有些{topic}是騙人的，我們一起檢查。",
			"你沒有做錯事。我們去問大人這個{topic}。",
			"你覺得如果這個{topic}是假的，會發生什麼事？",
			"我們一起先關掉這個{topic}，再安全地檢查。",
			"謝謝你問我，我們可以一起找答案。",
			"我知道你很想要獎品，我們一起想個安全的辦法。",
			"我們先停一下，慢慢讀這個{topic}。",
			"我們可以一起保護自己。要不要問爸爸或媽媽？",
		},
		Neutral: {
			"可以先給我看這個{topic}嗎？",
			"這個{topic}上面寫什麼？",
			"這個{topic}是從哪裡來的？",
			"讓我看一下這個{topic}。",
			"是朋友傳給你這個{topic}的嗎？",
			"再跟我多說一點這個{topic}。",
			"你為什麼想要這個獎品？",
			"這個{topic}以前出現過嗎？",
			"你看到的時候開著哪個應用程式？",
			"念給我聽這個{topic}上的字。",
		},
		Negative: {
			"因為我說了算，忘掉這個{topic}。",
			"不要再問這個{topic}了。",
			"你都不聽話，把平板給我。",
			"再碰這個{topic}就沒有螢幕時間。",
			"我不想聽什麼獎品。",
			"這問題很無聊，現在關掉。",
			"照我說的做就對了。",
			"你為什麼要看這種{topic}？",
			"我現在很忙，沒空管這個。",
			"放下平板，回你房間。",
		},
	},
	nouns: map[Topic]string{
		TopicPopup: "彈出視窗",
		TopicPrize: "獎品連結",
		TopicLink:  "連結",
	},
	topics: []topicRule{
		{TopicPopup, []string{"彈出", "視窗", "跳出", "廣告"}},
		{TopicPrize, []string{"獎品", "中獎", "贏", "免費", "禮物", "獎勵", "點數"}},
	},
	drafts: []string{
		"{draft}。",
		"我們試試看：{draft}。",
		"我在這裡陪你。{draft}。",
		"我們可以一起來：{draft}。",
	},
}

func catalogFor(l lang.Language) *catalog {
	if l.IsChinese() {
		return &chineseCatalog
	}
	return &englishCatalog
}
