package odeglue

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	msgZero      = "y=0 on [%s, %s]"
	msgPositive  = "right branch, x0=%s"
	msgNegative  = "left branch, x0=%s"
	msgPoint     = "initial point (%s, %s)"
	msgListTitle = "Pieces selected so far:"
	msgEmpty     = "Add pieces from the toolbox to build the solution."
)

var messages = newMessages()

func newMessages() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	set := func(tag language.Tag, key, msg string) {
		if err := b.SetString(tag, key, msg); err != nil {
			panic(err)
		}
	}
	for _, key := range []string{msgZero, msgPositive, msgNegative, msgPoint, msgListTitle, msgEmpty} {
		set(language.English, key, key)
	}
	set(language.Hebrew, msgZero, "y=0 בטווח [%s, %s]")
	set(language.Hebrew, msgPositive, "ענף ימני, x₀=%s")
	set(language.Hebrew, msgNegative, "ענף שמאלי, x₀=%s")
	set(language.Hebrew, msgPoint, "נקודת התחלה (%s, %s)")
	set(language.Hebrew, msgListTitle, "המקטעים שנבחרו כרגע:")
	set(language.Hebrew, msgEmpty, "אנא הוסף מקטעים מארגז הכלים בצד כדי לבנות את הפתרון.")
	return b
}

// Languages lists the languages descriptions are available in.
func Languages() []language.Tag {
	return []language.Tag{language.English, language.Hebrew}
}

// MatchLanguage picks the closest supported language for a BCP 47 string
// such as "he-IL". Unparseable input yields English.
func MatchLanguage(s string) language.Tag {
	m := language.NewMatcher(Languages())
	tag, _ := language.MatchStrings(m, s)
	base, _ := tag.Base()
	for _, t := range Languages() {
		if b, _ := t.Base(); b == base {
			return t
		}
	}
	return language.English
}

// Texts holds the fixed phrases of the textual piece listing.
type Texts struct {
	ListTitle   string
	EmptyPrompt string
}

// TextsFor returns the listing phrases in the given language.
func TextsFor(tag language.Tag) Texts {
	p := message.NewPrinter(tag, message.Catalog(messages))
	return Texts{
		ListTitle:   p.Sprintf(msgListTitle),
		EmptyPrompt: p.Sprintf(msgEmpty),
	}
}
