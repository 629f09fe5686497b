package text

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

var positiveWords = wordSet(
	"good", "great", "happy", "well", "better", "calm", "relaxed", "excited",
	"grateful", "thankful", "proud", "confident", "hopeful", "positive",
	"enjoy", "enjoyed", "enjoying", "love", "loved", "fun", "glad", "content",
	"peaceful", "motivated", "productive", "energized", "energised", "rested",
	"awesome", "amazing", "wonderful", "nice", "pleased", "optimistic",
	"supported", "connected", "accomplished", "satisfied", "cheerful", "joy",
	"laugh", "laughed", "smile", "smiled", "progress", "improving", "strong",
	"healthy", "fine", "excellent", "lovely", "refreshed",
)

var negativeWords = wordSet(
	"sad", "bad", "tired", "exhausted", "stressed", "stress", "anxious",
	"anxiety", "worried", "worry", "depressed", "down", "lonely", "alone",
	"angry", "upset", "frustrated", "overwhelmed", "hopeless", "worthless",
	"awful", "terrible", "horrible", "hate", "hard", "difficult", "struggle",
	"struggling", "sick", "pain", "hurt", "scared", "afraid", "fear",
	"nervous", "miserable", "empty", "numb", "cry", "crying", "cried",
	"failed", "failing", "lost", "guilty", "ashamed", "panic", "burnout",
	"drained", "isolated", "unmotivated", "sleepless", "insomnia", "low",
)

var negationWords = wordSet(
	"not", "no", "never", "don't", "can't", "won't", "isn't", "aren't",
	"wasn't", "weren't", "didn't", "doesn't", "couldn't", "shouldn't",
	"wouldn't", "nothing", "nobody", "nowhere", "neither", "nor", "cannot",
	"without", "hardly",
)

var absolutistWords = wordSet(
	"always", "never", "nothing", "completely", "totally", "entirely",
	"everything", "everyone", "nobody", "constantly", "all", "every",
	"absolutely", "definitely", "whole", "forever",
)

var firstPersonWords = wordSet(
	"i", "me", "my", "mine", "myself", "i'm", "i've", "i'd", "i'll",
)

var pastMarkers = wordSet(
	"was", "were", "had", "did", "felt", "went", "said", "got", "made",
	"thought", "knew", "came", "saw", "took", "been", "left", "told",
	"cried", "failed", "enjoyed", "loved", "laughed", "smiled",
)

var presentMarkers = wordSet(
	"am", "is", "are", "do", "does", "have", "has", "feel", "feeling",
	"i'm", "it's", "being", "get", "think", "know", "want", "need",
)

var futureMarkers = wordSet(
	"will", "i'll", "going", "gonna", "shall", "tomorrow", "plan",
	"planning", "hope", "next", "soon",
)

var hedgeWords = wordSet(
	"maybe", "perhaps", "probably", "guess", "might", "possibly", "unsure",
	"kinda", "sorta", "somewhat", "suppose",
)

var stopWords = wordSet(
	"about", "after", "again", "also", "because", "been", "before", "being",
	"could", "doing", "feel", "feeling", "from", "have", "just", "like",
	"really", "some", "that", "them", "then", "there", "these", "they",
	"thing", "things", "this", "today", "very", "want", "were", "what",
	"when", "which", "with", "would", "your", "know", "think", "pretty",
	"much", "still", "into", "over", "only", "quite", "week", "lately",
)

// selfHarmPhrases short-circuit the risk heuristic to high
var selfHarmPhrases = []string{
	"kill myself", "killing myself", "suicide", "suicidal", "end my life",
	"ending my life", "hurt myself", "hurting myself", "self harm",
	"self-harm", "want to die", "better off dead", "no reason to live",
	"don't want to be here anymore", "don't want to live",
}

// topic groups drive themes and positive/negative drivers
type topic struct {
	name     string
	keywords map[string]bool
}

var topics = []topic{
	{"sleep", wordSet("sleep", "slept", "sleeping", "rest", "rested", "nap", "insomnia", "sleepless")},
	{"studies", wordSet("study", "studies", "studying", "exam", "exams", "class", "classes", "course", "lecture", "lectures", "assignment", "assignments", "coursework", "grades", "uni", "university", "school", "essay", "revision")},
	{"work", wordSet("work", "job", "shift", "boss", "deadline", "deadlines", "career", "internship", "placement")},
	{"friends", wordSet("friend", "friends", "social", "party", "flatmate", "flatmates", "housemates")},
	{"family", wordSet("family", "mum", "mom", "dad", "parents", "brother", "sister", "home")},
	{"relationships", wordSet("partner", "boyfriend", "girlfriend", "relationship", "dating", "breakup")},
	{"exercise", wordSet("exercise", "gym", "run", "running", "walk", "walking", "workout", "sport", "football", "yoga", "swim", "swimming")},
	{"health", wordSet("health", "sick", "ill", "pain", "doctor", "headache", "eating", "diet")},
	{"money", wordSet("money", "rent", "bills", "finances", "debt", "afford", "loan")},
	{"loneliness", wordSet("lonely", "alone", "isolated", "loneliness")},
}
