package report

import "strings"

const outputSuffix = "_Maturity_Assessment.pptx"

// OutputName derives the deterministic report filename from a respondent's
// identity. "@" becomes "_at_" before dots are flattened, keeping e-mail
// identities readable as filenames.
func OutputName(identity string) string {
	name := strings.ReplaceAll(identity, "@", "_at_")
	name = strings.ReplaceAll(name, ".", "_")
	return name + outputSuffix
}
