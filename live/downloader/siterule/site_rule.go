package siterule

import (
	"github.com/fzxiao233/Live_Record/config"
	"github.com/fzxiao233/Live_Record/live/interfaces"
	re "github.com/umisama/go-regexpcache"
)

// GetSiteRuleForUrl returns the last rule whose pattern matches url, falling back
// to the "default" rule. ok is false when nothing applies.
func GetSiteRuleForUrl(rules []config.SiteRuleEntry, url string) (rule config.SiteRuleEntry, ok bool) {
	var defaultRule config.SiteRuleEntry
	for _, r := range rules {
		if r.Pattern == "default" {
			defaultRule = r
			continue
		}
		matched, err := re.MatchString(r.Pattern, url)
		if err == nil && matched {
			rule = r
		}
	}
	if rule.Pattern == "" {
		rule = defaultRule
	}
	return rule, rule.Pattern != ""
}

// ApplySiteRule overrides the format policy in opts with the matching rule.
func ApplySiteRule(rules []config.SiteRuleEntry, url string, opts *interfaces.DownloadOptions) bool {
	rule, ok := GetSiteRuleForUrl(rules, url)
	if !ok {
		return false
	}
	if rule.Format != "" {
		opts.Format = rule.Format
	}
	if rule.LiveFromStart != nil {
		opts.LiveFromStart = *rule.LiveFromStart
	}
	return true
}
