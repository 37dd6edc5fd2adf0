package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// StrFromPtr dereferences p, returning "" for nil.
func StrFromPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// StrPtrOrNil returns nil for a blank string so optional fields stay absent.
func StrPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
