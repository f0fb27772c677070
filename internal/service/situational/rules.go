package situational

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sandevgo/redwan/internal/core"
	"github.com/sandevgo/redwan/pkg/textnorm"
)

var (
	nameQueries = []string{
		"what is my name", "whats my name", "do you know my name",
		"amar nam ki", "amar name ki", "amar nam ki jano",
		"আমার নাম কি", "আমার নাম কী",
	}
	nameIntro    = regexp.MustCompile(`(?i)(?:my name is|amar nam(?:e)?(?: is)?|আমার নাম)\s+([\p{L}\p{M}\p{N}_]+)`)
	nameStopList = map[string]bool{"ki": true, "kya": true, "what": true, "কি": true, "কী": true, "is": true}

	farewells   = []string{"bye", "goodbye", "good bye", "bye bye", "tata", "alvida", "see you", "বিদায়", "আল্লাহ হাফেজ"}
	vagueAsks   = []string{"how", "why", "কেমনে", "কেন", "kivabe", "keno"}
	howAreYou   = []string{"কেমন আছেন", "কেমন আছো", "কেমন আছ", "how are you", "kemon acho", "kemon achen"}
	positives   = []string{"ভালো", "ভাল", "fine", "good", "great", "bhalo", "valo", "চলে যাচ্ছে", "alhamdulillah", "আলহামদুলিল্লাহ"}
	negations   = []string{"না", "নাই", "নেই", "not", "no", "never", "na", "nai"}
	greetings   = []string{"hi", "hello", "hey", "হাই", "হ্যালো"}
	frustration = []string{"ধুর", "বাদ দেন", "আপনি পারেন না", "তুমি পারো না", "dhur", "bad den", "useless"}
	gratitude   = []string{"thank you so much", "thanks a lot", "অনেক অনেক ধন্যবাদ", "onek onek dhonnobad"}
	continues   = []string{"and", "then", "and then", "আর", "তারপর", "এরপর", "tarpor"}
	identity    = []string{"তুমি কে", "আপনি কে", "আপনার নাম কি", "tumi ke", "who are you"}
	shortAcks   = []string{"ok", "okay", "hmm", "hm", "আচ্ছা", "হুম", "accha"}
	realityAsks = []string{"are you real", "are you human", "tumi ki real", "তুমি কি সত্যি", "তুমি কি মানুষ"}
	boredom     = []string{"i am bored", "im bored", "boring", "আমি বোর হচ্ছি", "bored lagche"}
)

// DefaultRules returns the situational rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "self_reference", Match: selfReference},
		{Name: "early_farewell", Match: earlyFarewell},
		{Name: "vague_follow_up", Match: vagueFollowUp},
		{Name: "affective_ack", Match: affectiveAck},
		{Name: "repeated_greeting", Match: repeatedGreeting},
		{Name: "frustration", Match: frustrated},
		{Name: "gratitude", Match: grateful},
		{Name: "continuation", Match: continuation},
		{Name: "repeated_identity", Match: repeatedIdentity},
		{Name: "exact_repeat", Match: exactRepeat},
		{Name: "non_committal", Match: nonCommittal},
		{Name: "reality_check", Match: realityCheck},
		{Name: "boredom", Match: bored},
	}
}

func selfReference(input string, history []core.Message) (string, bool) {
	if !containsAny(input, nameQueries) {
		return "", false
	}
	if name, ok := introducedName(history); ok {
		return fmt.Sprintf("আপনার নাম তো %s, আমি যতদূর মনে করতে পারছি! 😊", name), true
	}
	return "আমি দুঃখিত, আমি আপনার নাম এখনো জানি না। আপনার নাম কি?", true
}

// introducedName finds the latest self-introduction by the user.
func introducedName(history []core.Message) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if !msg.FromUser() {
			continue
		}
		for _, m := range nameIntro.FindAllStringSubmatch(msg.Text, -1) {
			if !nameStopList[strings.ToLower(m[1])] {
				return m[1], true
			}
		}
	}
	return "", false
}

func earlyFarewell(input string, history []core.Message) (string, bool) {
	if len(history) > 2 || !containsAny(input, farewells) {
		return "", false
	}
	return "আমরা তো এখনো কথাই শুরু করিনি! এখনই বিদায়? 😯", true
}

func vagueFollowUp(input string, history []core.Message) (string, bool) {
	if !equalsAny(input, vagueAsks) {
		return "", false
	}
	if prev, ok := previous(history); ok && strings.TrimSpace(prev.Text) != "" {
		return fmt.Sprintf("আপনি \"%s\"-এর জবাবে এটি জিজ্ঞেস করছেন? আরেকটু বুঝিয়ে বললে আমার উত্তর দিতে সুবিধা হতো। 😊", prev.Text), true
	}
	return "আপনি কি জানতে চাইছেন, তা আরেকটু বিস্তারিত বলতে পারবেন?", true
}

func affectiveAck(input string, history []core.Message) (string, bool) {
	last, ok := lastAssistant(history)
	if !ok || !containsAny(textnorm.Normalize(last.Text), howAreYou) {
		return "", false
	}
	if !containsAny(input, positives) {
		return "", false
	}
	if negated(input) {
		return "", false
	}
	return "শুনে খুব ভালো লাগলো! 😊", true
}

// negated matches standalone negation words and the Bengali "-নি" suffix
// ("যাচ্ছেনি", "হয়নি").
func negated(input string) bool {
	if containsAny(input, negations) {
		return true
	}
	for _, tok := range textnorm.Tokens(input) {
		if strings.HasSuffix(tok, "নি") {
			return true
		}
	}
	return false
}

func repeatedGreeting(input string, history []core.Message) (string, bool) {
	if len(history) <= 3 || !equalsAny(input, greetings) {
		return "", false
	}
	return "আমরা তো কথা বলছিই! বলুন, আর কী জানতে চান? 😄", true
}

func frustrated(input string, _ []core.Message) (string, bool) {
	if !containsAny(input, frustration) {
		return "", false
	}
	return "মনে হচ্ছে আপনি হতাশ। আমি কি আপনাকে সাহায্য করতে কোনো ভুল করেছি? 😕 দয়া করে আমাকে জানান।", true
}

func grateful(input string, history []core.Message) (string, bool) {
	prev, ok := previous(history)
	if !ok || !prev.FromAssistant() || !containsAny(input, gratitude) {
		return "", false
	}
	return "আপনাকে সাহায্য করতে পেরে আমি আনন্দিত! আপনার আর কোনো প্রশ্ন আছে? 😊", true
}

func continuation(input string, _ []core.Message) (string, bool) {
	if !equalsAny(input, continues) {
		return "", false
	}
	return "আপনি কি আমার আগের উত্তরের ধারাবাহিকতায় কিছু জানতে চাইছেন?", true
}

func repeatedIdentity(input string, history []core.Message) (string, bool) {
	if len(history) <= 5 || !containsAny(input, identity) {
		return "", false
	}
	return "আমার পরিচয় তো আগেই দিয়েছি। আমি আপনার বন্ধুসুলভ ভার্চুয়াল অ্যাসিস্ট্যান্ট! 🤖", true
}

func exactRepeat(input string, history []core.Message) (string, bool) {
	prev, ok := previousUser(history)
	if !ok || input == "" || textnorm.Normalize(prev.Text) != input {
		return "", false
	}
	return "আপনি একই প্রশ্ন আবার করেছেন। আমার আগের উত্তরে কি কোনো সমস্যা ছিল?", true
}

func nonCommittal(input string, history []core.Message) (string, bool) {
	if !equalsAny(input, shortAcks) {
		return "", false
	}
	if _, ok := lastAssistant(history); ok {
		return "আপনি কি আমার কথা বুঝতে পেরেছেন? আপনার আর কিছু জানার থাকলে বলুন।", true
	}
	return "হুম।", true
}

func realityCheck(input string, _ []core.Message) (string, bool) {
	if !containsAny(input, realityAsks) {
		return "", false
	}
	return "আমি একটি কম্পিউটার প্রোগ্রাম, তবে আপনার সাথে সত্যিকারের মতোই কথা বলতে চেষ্টা করছি! 💻", true
}

func bored(input string, _ []core.Message) (string, bool) {
	if !containsAny(input, boredom) {
		return "", false
	}
	return "বোর হবেন না! চলুন একটা মজার জোকস শুনি? অথবা কোনো বিষয় নিয়ে আলোচনাও করতে পারি। আপনি কী করতে চান?", true
}

func containsAny(input string, phrases []string) bool {
	for _, p := range phrases {
		if textnorm.HasPhrase(input, p) {
			return true
		}
	}
	return false
}

func equalsAny(input string, terms []string) bool {
	for _, t := range terms {
		if input == t {
			return true
		}
	}
	return false
}
