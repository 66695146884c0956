package heuristic

// positiveWords and negativeWords are the full lexicons used by the
// Lightweight variant.
var positiveWords = map[string]struct{}{
	"excellent": {}, "amazing": {}, "wonderful": {}, "fantastic": {}, "great": {},
	"good": {}, "perfect": {}, "outstanding": {}, "brilliant": {}, "superb": {},
	"awesome": {}, "love": {}, "best": {}, "incredible": {}, "marvelous": {},
	"terrific": {}, "delightful": {}, "pleased": {}, "satisfied": {}, "happy": {},
	"spectacular": {}, "phenomenal": {}, "exceptional": {}, "remarkable": {},
	"magnificent": {}, "fabulous": {}, "gorgeous": {}, "beautiful": {},
	"stunning": {}, "impressive": {},
}

var negativeWords = map[string]struct{}{
	"terrible": {}, "awful": {}, "horrible": {}, "disgusting": {}, "hate": {},
	"worst": {}, "bad": {}, "disappointing": {}, "poor": {}, "useless": {},
	"pathetic": {}, "dreadful": {}, "appalling": {}, "atrocious": {},
	"abysmal": {}, "deplorable": {}, "frustrated": {}, "angry": {},
	"annoyed": {}, "furious": {}, "outraged": {}, "disgusted": {},
	"revolting": {}, "repulsive": {}, "offensive": {}, "unacceptable": {},
	"intolerable": {}, "insufferable": {}, "unbearable": {},
}

// Compact lexicons for the Emergency variant, a strict subset of the full
// sets. Same algorithm, cheaper tables.
var positiveWordsCompact = map[string]struct{}{
	"excellent": {}, "amazing": {}, "wonderful": {}, "fantastic": {}, "great": {},
	"good": {}, "perfect": {}, "outstanding": {}, "brilliant": {}, "superb": {},
	"awesome": {}, "love": {}, "best": {}, "incredible": {}, "marvelous": {},
	"terrific": {}, "delightful": {}, "pleased": {}, "satisfied": {}, "happy": {},
}

var negativeWordsCompact = map[string]struct{}{
	"terrible": {}, "awful": {}, "horrible": {}, "disgusting": {}, "hate": {},
	"worst": {}, "bad": {}, "disappointing": {}, "poor": {}, "useless": {},
	"pathetic": {}, "dreadful": {}, "appalling": {}, "atrocious": {},
	"abysmal": {}, "deplorable": {}, "frustrated": {}, "angry": {}, "annoyed": {},
}
