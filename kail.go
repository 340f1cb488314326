package snazy

import (
	"regexp"
	"strings"
)

var kailRe = regexp.MustCompile(`^(?P<namespace>[^/]*)/(?P<pod>[^\[]*)\[(?P<container>[^\]]*)\]: (?P<line>.*)$`)

// ExtractKail strips a "namespace/pod[container]: " envelope from line. On a
// match it returns the remainder and the prefix rendered from template, where
// {namespace}, {pod} and {container} are substituted and a literal `\n`
// becomes a line break. Without a match line comes back as is.
func ExtractKail(line, template string) (rest, prefix string, ok bool) {
	m := kailRe.FindStringSubmatch(line)
	if m == nil {
		return line, "", false
	}
	if template == "" {
		template = DefaultKailPrefixFormat
	}
	r := strings.NewReplacer(
		"{namespace}", m[kailRe.SubexpIndex("namespace")],
		"{pod}", m[kailRe.SubexpIndex("pod")],
		"{container}", m[kailRe.SubexpIndex("container")],
		`\n`, "\n",
	)
	return m[kailRe.SubexpIndex("line")], r.Replace(template), true
}
