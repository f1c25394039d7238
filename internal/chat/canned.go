package chat

import "strings"

// cannedReplies maps exact lowered phrases to fixed replies. These answer
// immediately and never touch the cache or the database.
var cannedReplies = map[string]string{
	"hi":    "Hello!👋🏻 How can I assist you with company assets today?🤩",
	"hello": "Hello!👋🏻 How can I assist you with company assets today?🤩",
	"hey":   "Hello!👋🏻 How can I assist you with company assets today?🤩",

	"bye":     "Goodbye! Have a great day!🥰",
	"goodbye": "Goodbye! Have a great day!🥰",
	"tata":    "Goodbye! Have a great day!🥰",

	"thanks":    "You're welcome! If you have any more questions, feel free to ask.🥰",
	"thank you": "You're welcome! If you have any more questions, feel free to ask.🥰",

	"hi, how are you?":    "Hey there! I'm fine, thanks for asking. What can I do for you?🥰",
	"hello, how are you?": "Hey there! I'm fine, thanks for asking. What can I do for you?🥰",
}

func cannedReply(question string) (string, bool) {
	reply, ok := cannedReplies[strings.ToLower(question)]
	return reply, ok
}
