package restapi

import (
	"regexp"
	"strings"

	"github.com/iotaledger/hive.go/ierrors"
)

// RouteMatcher matches request paths against configured route patterns. A pattern starting with "^" is a raw regular
// expression, otherwise "*" matches any suffix and the rest of the pattern is literal.
type RouteMatcher struct {
	regexes []*regexp.Regexp
}

// NewRouteMatcher compiles the patterns of all given route lists into a single matcher.
func NewRouteMatcher(routeLists ...[]string) (*RouteMatcher, error) {
	matcher := &RouteMatcher{}
	for _, routes := range routeLists {
		for _, route := range routes {
			regex, err := compileRoute(route)
			if err != nil {
				return nil, err
			}
			matcher.regexes = append(matcher.regexes, regex)
		}
	}

	return matcher, nil
}

// Matches checks the lowercased path against the patterns.
func (m *RouteMatcher) Matches(path string) bool {
	loweredPath := strings.ToLower(path)
	for _, regex := range m.regexes {
		if regex.MatchString(loweredPath) {
			return true
		}
	}

	return false
}

func compileRoute(route string) (*regexp.Regexp, error) {
	expression := route
	if !strings.HasPrefix(route, "^") {
		expression = strings.ReplaceAll(regexp.QuoteMeta(route), `\*`, "(.*?)") + "$"
	}

	regex, err := regexp.Compile(expression)
	if err != nil {
		return nil, ierrors.Wrapf(err, "invalid route in config: %s", route)
	}

	return regex, nil
}
