package vc

import (
	"fmt"
	"strings"
)

// summaryIntro opens every summary block.
const summaryIntro = "The information from the URL is the following: \n"

// Summary renders the record as the user-facing text block. Fields whose
// value is the NoInfo placeholder become a pointer back to the source
// site instead of a data line. Line order is fixed: vc_name, contacts,
// industries, investment_rounds.
func (r Record) Summary(url string) string {
	var b strings.Builder
	b.WriteString(summaryIntro)

	writeLine(&b, "Vc_name", r.VCName)
	for _, field := range []struct {
		name   string
		values StringList
	}{
		{"Contacts", r.Contacts},
		{"Industries", r.Industries},
		{"Investment_rounds", r.InvestmentRounds},
	} {
		if field.values.IsNoInfo() {
			fmt.Fprintf(&b,
				"- There is not much information available about %s. You can check it manually by visiting the website: %s\n",
				field.name, url)
			continue
		}
		writeLine(&b, field.name, strings.Join(field.values, ", "))
	}
	return b.String()
}

func writeLine(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "- %s: %s\n", name, value)
}
