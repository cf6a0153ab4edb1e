package engine

import "strings"

// GroupSeparator joins group names in the InserimentoGruppo column.
const GroupSeparator = ";"

// brokenO365Prefix is how "O365 ..." group names look when the leading
// letter is lost during data entry.
const brokenO365Prefix = "365 "

// GroupTokens flattens the sources into an ordered token list. Each source
// may itself be a ";" list. Blank tokens are dropped and a missing "O" in
// front of "365 " is restored. Both the CSV column and the message bullets
// are rendered from this list.
func GroupTokens(sources ...string) []string {
	tokens := make([]string, 0, len(sources))
	for _, src := range sources {
		for _, tok := range strings.Split(src, GroupSeparator) {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			if strings.HasPrefix(tok, brokenO365Prefix) {
				tok = "O" + tok
			}
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// AssembleGroups is GroupTokens joined with ";".
func AssembleGroups(sources ...string) string {
	return strings.Join(GroupTokens(sources...), GroupSeparator)
}
