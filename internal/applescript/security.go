package applescript

import "regexp"

// Patterns that are never legitimate in the scripts this server runs. The
// scan happens before the interpreter is spawned.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)rm\s+-rf`),
	regexp.MustCompile(`(?i)sudo`),
	regexp.MustCompile(`(?i)rm\s+/`),
	regexp.MustCompile(`(?i)mkfs`),
	regexp.MustCompile(`(?i)dd\s+if=`),
	regexp.MustCompile(`(?i)>\s+/dev/sd`),
	regexp.MustCompile(`(?i)do shell script.*sudo`),
	regexp.MustCompile(`(?i)with administrator privileges`),
	regexp.MustCompile(`(?i)system attribute`),
	regexp.MustCompile(`(?i)delete file`),
}

func checkSecurity(code string) error {
	for _, p := range dangerousPatterns {
		if p.MatchString(code) {
			return &SecurityError{Pattern: p.String()}
		}
	}
	return nil
}
