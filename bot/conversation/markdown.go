package conversation

import "strings"

const markdownSpecials = "_[]()~`>#+-=|{}.!"

// EscapeMarkdown escapes MarkdownV2 reserved characters. A character already
// preceded by a backslash is left as is, so the function is safe to apply to
// partially escaped text. Asterisks pass through to keep bold markers.
func EscapeMarkdown(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)

	var prev rune
	for _, ch := range text {
		if strings.ContainsRune(markdownSpecials, ch) && prev != '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(ch)
		prev = ch
	}
	return b.String()
}

// markdownURL escapes a link target, where only ")" and "\" are reserved.
func markdownURL(url string) string {
	return strings.NewReplacer(`\`, `\\`, ")", `\)`).Replace(url)
}

func markdownLink(title, url string) string {
	return "[" + EscapeMarkdown(title) + "](" + markdownURL(url) + ")"
}

func markdownBold(text string) string {
	return "*" + EscapeMarkdown(text) + "*"
}
