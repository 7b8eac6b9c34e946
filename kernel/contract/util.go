package contract

import (
	"regexp"
)

// code names are 4 to 16 chars of [0-9a-zA-Z_.], led by a letter or '_' and not ending with '.'
var codeNameRegex = regexp.MustCompile(`^[a-zA-Z_][0-9a-zA-Z_.]{2,14}[0-9a-zA-Z_]$`)

// ValidContractName checks the name a kernel contract is stored under.
func ValidContractName(name string) error {
	if !codeNameRegex.MatchString(name) {
		return ErrParameter.More("invalid code name %q", name)
	}
	return nil
}
