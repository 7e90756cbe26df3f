package cards

import "golang.org/x/text/language"

// DefaultLanguage is the language every card set is guaranteed to carry.
const DefaultLanguage = "english"

// languageKeys pairs the card set language keys with BCP 47 tags. English
// comes first so the matcher falls back to it.
var languageKeys = []struct {
	tag language.Tag
	key string
}{
	{language.English, DefaultLanguage},
	{language.German, "german"},
	{language.French, "french"},
	{language.Italian, "italian"},
	{language.Korean, "koreana"},
	{language.Spanish, "spanish"},
	{language.SimplifiedChinese, "schinese"},
	{language.TraditionalChinese, "tchinese"},
	{language.Russian, "russian"},
	{language.Thai, "thai"},
	{language.Japanese, "japanese"},
	{language.EuropeanPortuguese, "portuguese"},
	{language.Polish, "polish"},
	{language.Danish, "danish"},
	{language.Dutch, "dutch"},
	{language.Finnish, "finnish"},
	{language.Norwegian, "norwegian"},
	{language.Swedish, "swedish"},
	{language.Hungarian, "hungarian"},
	{language.Czech, "czech"},
	{language.Romanian, "romanian"},
	{language.Turkish, "turkish"},
	{language.BrazilianPortuguese, "brazilian"},
	{language.Bulgarian, "bulgarian"},
	{language.Greek, "greek"},
	{language.Ukrainian, "ukrainian"},
	{language.LatinAmericanSpanish, "latam"},
	{language.Vietnamese, "vietnamese"},
}

var languageMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(languageKeys))
	for i, l := range languageKeys {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// MatchLanguage maps an Accept-Language style string, or a card set
// language key, to the closest card set language key.
func MatchLanguage(accept string) string {
	for _, l := range languageKeys {
		if accept == l.key {
			return l.key
		}
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}
	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return DefaultLanguage
	}
	return languageKeys[index].key
}
