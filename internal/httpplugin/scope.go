package httpplugin

import (
	"net/url"
	"strings"
)

// scope は許可ホストの一覧。
// "*" は全ホスト、"*.example.com" は example.com のサブドメインのみに一致する。
type scope struct {
	any      bool
	exact    map[string]struct{}
	suffixes []string
}

func newScope(patterns []string) *scope {
	s := &scope{exact: map[string]struct{}{}}
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		switch {
		case p == "":
		case p == "*":
			s.any = true
		case strings.HasPrefix(p, "*."):
			s.suffixes = append(s.suffixes, p[1:]) // ".example.com"
		default:
			s.exact[p] = struct{}{}
		}
	}
	return s
}

func (s *scope) allows(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	if s.any {
		return true
	}
	if _, ok := s.exact[host]; ok {
		return true
	}
	for _, suf := range s.suffixes {
		if strings.HasSuffix(host, suf) {
			return true
		}
	}
	return false
}
