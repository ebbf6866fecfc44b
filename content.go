package sdk

import (
	"strings"

	"github.com/elnormous/contenttype"
)

// isJSONMediaType accepts application/json, any +json subtype and a missing
// header.
func isJSONMediaType(header string) bool {
	if strings.TrimSpace(header) == "" {
		return true
	}
	mt, err := contenttype.ParseMediaType(header)
	if err != nil {
		return false
	}
	if !strings.EqualFold(mt.Type, "application") {
		return false
	}
	sub := strings.ToLower(mt.Subtype)
	return sub == "json" || strings.HasSuffix(sub, "+json")
}
